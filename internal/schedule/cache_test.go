package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/brightcare/booking-engine/pkg/logging"
)

type countingRepo struct {
	*InMemoryRepository
	rowCalls atomic.Int64
}

func (c *countingRepo) RowsForDoctor(ctx context.Context, doctorID string) ([]DoctorSchedule, error) {
	c.rowCalls.Add(1)
	return c.InMemoryRepository.RowsForDoctor(ctx, doctorID)
}

func newCacheFixture(t *testing.T) (*CachedRepository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingRepo{InMemoryRepository: NewInMemoryRepository()}
	inner.PutRow(DoctorSchedule{
		DoctorID:        "dr-anita-rao",
		DayOfWeek:       2,
		StartTime:       "09:00",
		EndTime:         "12:00",
		IsActive:        true,
		SlotDurationMin: 30,
	})

	cached := NewCachedRepository(inner, client, time.Minute, logging.Default())
	return cached, inner, mr
}

func TestCachedRowsReadThrough(t *testing.T) {
	cached, inner, _ := newCacheFixture(t)
	ctx := context.Background()

	first, err := cached.RowsForDoctor(ctx, "dr-anita-rao")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cached.RowsForDoctor(ctx, "dr-anita-rao")
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, int64(1), inner.rowCalls.Load(), "second read must come from cache")
}

func TestCachedRowsInvalidate(t *testing.T) {
	cached, inner, _ := newCacheFixture(t)
	ctx := context.Background()

	_, err := cached.RowsForDoctor(ctx, "dr-anita-rao")
	require.NoError(t, err)

	require.NoError(t, cached.Invalidate(ctx, "dr-anita-rao"))

	_, err = cached.RowsForDoctor(ctx, "dr-anita-rao")
	require.NoError(t, err)
	require.Equal(t, int64(2), inner.rowCalls.Load())
}

func TestCacheFailureFallsBackToInner(t *testing.T) {
	cached, inner, mr := newCacheFixture(t)
	ctx := context.Background()

	mr.Close()

	rows, err := cached.RowsForDoctor(ctx, "dr-anita-rao")
	require.NoError(t, err, "a dead cache must not fail reads")
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), inner.rowCalls.Load())
}
