package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brightcare/booking-engine/internal/appointments"
	"github.com/brightcare/booking-engine/internal/booking"
	"github.com/brightcare/booking-engine/internal/doctors"
	httpmiddleware "github.com/brightcare/booking-engine/internal/http/middleware"
	"github.com/brightcare/booking-engine/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	DoctorsHandler      *doctors.Handler
	AvailabilityHandler *booking.Handler
	AppointmentsHandler *appointments.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// SubmitRatePerSec limits POST /api/appointments per client IP.
	// Zero disables the limiter.
	SubmitRatePerSec float64
	SubmitBurst      int

	// Per-request deadlines; zero means no deadline.
	SlotFetchTimeout time.Duration
	SubmitTimeout    time.Duration
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/doctors", cfg.DoctorsHandler.ListDoctors)
		api.Route("/doctors/{doctorID}", func(doc chi.Router) {
			if cfg.SlotFetchTimeout > 0 {
				doc.Use(middleware.Timeout(cfg.SlotFetchTimeout))
			}
			doc.Get("/schedule", cfg.AvailabilityHandler.GetSchedule)
			doc.Get("/dates", cfg.AvailabilityHandler.GetDates)
			doc.Get("/slots", cfg.AvailabilityHandler.GetSlots)
		})

		api.Group(func(submit chi.Router) {
			if cfg.SubmitTimeout > 0 {
				submit.Use(middleware.Timeout(cfg.SubmitTimeout))
			}
			if cfg.SubmitRatePerSec > 0 {
				submit.Use(httpmiddleware.RateLimit(cfg.SubmitRatePerSec, cfg.SubmitBurst))
			}
			submit.Post("/appointments", cfg.AppointmentsHandler.Create)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
