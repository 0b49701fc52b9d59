package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/brightcare/booking-engine/internal/api/router"
	"github.com/brightcare/booking-engine/internal/appointments"
	"github.com/brightcare/booking-engine/internal/booking"
	appconfig "github.com/brightcare/booking-engine/internal/config"
	"github.com/brightcare/booking-engine/internal/doctors"
	"github.com/brightcare/booking-engine/internal/notify"
	"github.com/brightcare/booking-engine/internal/observability/metrics"
	"github.com/brightcare/booking-engine/internal/schedule"
	"github.com/brightcare/booking-engine/pkg/logging"
)

func main() {
	// .env is optional, real deployments use environment variables
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-engine API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Schedules read through Redis when configured, straight from Postgres
	// otherwise.
	var scheduleRepo schedule.Repository = schedule.NewPostgresRepository(pool)
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("redis unreachable, serving schedules uncached", "error", err)
		} else {
			scheduleRepo = schedule.NewCachedRepository(scheduleRepo, redisClient, cfg.ScheduleCacheTTL, logger)
			defer redisClient.Close()
		}
	}

	doctorRepo := doctors.NewPostgresRepository(pool)
	apptRepo := appointments.NewPostgresRepository(pool)

	var webhook notify.WebhookSender
	if s := notify.NewHTTPWebhookSender(cfg.BookingWebhookURL, &http.Client{Timeout: cfg.WebhookTimeout}, logger); s != nil {
		webhook = s
	}
	var email notify.EmailSender
	if s := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); s != nil {
		email = s
	}
	notifier := notify.NewService(webhook, email, bookingMetrics, cfg.WebhookTimeout, logger)

	submitService := appointments.NewService(apptRepo, notifier, bookingMetrics, logger)
	availability := booking.NewAvailabilityService(scheduleRepo, doctorRepo, apptRepo, cfg.BookingWindowDays, bookingMetrics, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		DoctorsHandler:      doctors.NewHandler(doctorRepo, bookingMetrics, logger),
		AvailabilityHandler: booking.NewHandler(availability, logger),
		AppointmentsHandler: appointments.NewHandler(submitService, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		SubmitRatePerSec:    2,
		SubmitBurst:         5,
		SlotFetchTimeout:    cfg.SlotFetchTimeout,
		SubmitTimeout:       cfg.SubmitTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let queued booking notifications drain before the process exits.
	notifier.Wait()

	logger.Info("server stopped")
}
