package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/brightcare/booking-engine/pkg/logging"
)

// CachedRepository is a read-through redis cache in front of a Repository.
// Schedule rows change rarely (clinic administration), so a short TTL keeps
// the booking flow off the database on every date strip render.
type CachedRepository struct {
	inner  Repository
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
	tracer trace.Tracer
}

// NewCachedRepository wraps inner with a redis cache.
func NewCachedRepository(inner Repository, redisClient *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedRepository{
		inner:  inner,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
		tracer: otel.Tracer("brightcare.internal.schedule"),
	}
}

func (c *CachedRepository) rowsKey(doctorID string) string {
	return fmt.Sprintf("schedule:rows:%s", doctorID)
}

// RowsForDoctor serves rows from cache when present, falling back to the
// inner repository. Cache failures degrade to the inner repository; they
// never fail the read.
func (c *CachedRepository) RowsForDoctor(ctx context.Context, doctorID string) ([]DoctorSchedule, error) {
	ctx, span := c.tracer.Start(ctx, "schedule.rows_for_doctor")
	defer span.End()

	key := c.rowsKey(doctorID)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var rows []DoctorSchedule
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
		c.logger.Warn("schedule cache entry corrupt, refetching", "key", key)
	} else if err != redis.Nil {
		c.logger.Warn("schedule cache read failed", "key", key, "error", err)
	}

	rows, err := c.inner.RowsForDoctor(ctx, doctorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if payload, err := json.Marshal(rows); err == nil {
		if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("schedule cache write failed", "key", key, "error", err)
		}
	}
	return rows, nil
}

// SpecialDates always hits the inner repository. Overrides are date-ranged
// and edited close to the dates they affect; caching them risks serving a
// stale holiday.
func (c *CachedRepository) SpecialDates(ctx context.Context, doctorID string, from, to time.Time) ([]SpecialDate, error) {
	return c.inner.SpecialDates(ctx, doctorID, from, to)
}

// Invalidate drops the cached rows for a doctor.
func (c *CachedRepository) Invalidate(ctx context.Context, doctorID string) error {
	if err := c.redis.Del(ctx, c.rowsKey(doctorID)).Err(); err != nil {
		return fmt.Errorf("schedule: cache invalidate: %w", err)
	}
	return nil
}
