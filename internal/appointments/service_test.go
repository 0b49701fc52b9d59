package appointments

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brightcare/booking-engine/pkg/logging"
)

type recordingNotifier struct {
	dispatches atomic.Int64
	last       atomic.Pointer[Appointment]
}

func (n *recordingNotifier) DispatchBookingCreated(appt *Appointment) {
	n.dispatches.Add(1)
	n.last.Store(appt)
}

type erroringRepo struct {
	err error
}

func (r erroringRepo) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	return nil, r.err
}

func (erroringRepo) BookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	return nil, nil
}

func TestSubmitSuccessDispatchesExactlyOnce(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier, nil, logging.Default())

	created, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, StatusConfirmed, created.Status)

	require.Equal(t, int64(1), notifier.dispatches.Load())
	require.Equal(t, created, notifier.last.Load())
}

func TestSubmitValidationFailureSkipsRepoAndNotifier(t *testing.T) {
	notifier := &recordingNotifier{}
	// A repo that would explode if reached.
	svc := NewService(erroringRepo{err: errors.New("must not be called")}, notifier, nil, logging.Default())

	req := validRequest()
	req.Time = "9:5"

	_, err := svc.Submit(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "time", verr.Field)
	require.Zero(t, notifier.dispatches.Load(), "validation failures must not notify")
}

func TestSubmitConflictSurfacesSlotTaken(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier, nil, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.PatientName = "Rahul Verma"
	second.Email = "rahul@example.com"
	_, err = svc.Submit(context.Background(), second)
	require.ErrorIs(t, err, ErrSlotTaken)

	require.Equal(t, int64(1), notifier.dispatches.Load(), "the losing submission must not notify")
}

func TestSubmitPersistenceFailureIsTyped(t *testing.T) {
	svc := NewService(erroringRepo{err: errors.New("disk on fire")}, nil, nil, logging.Default())

	_, err := svc.Submit(context.Background(), validRequest())

	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "persistence_failure", serr.Code)
}

func TestSubmitNormalizesRoundTrip(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil, nil, logging.Default())

	req := validRequest()
	req.Phone = "919876543210"

	created, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, "+919876543210", created.Phone)
	require.Equal(t, "Priya Sharma", created.PatientName)
	h, m, s := created.Date.Clock()
	require.Zero(t, h+m+s, "date must be midnight local")
}
