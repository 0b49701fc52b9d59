package appointments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brightcare/booking-engine/pkg/logging"
)

func newTestHandler() (*Handler, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil, nil, logging.Default())
	return NewHandler(svc, logging.Default()), repo
}

func postAppointment(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	h.Create(rec, req)
	return rec
}

const validBody = `{
	"doctor_id": "dr-anita-rao",
	"date": "2026-09-01",
	"time": "09:30",
	"patient_name": "Priya Sharma",
	"email": "priya@example.com",
	"phone": "98765 43210"
}`

func TestCreateReturns201(t *testing.T) {
	h, _ := newTestHandler()

	rec := postAppointment(t, h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var appt Appointment
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&appt))
	require.NotEmpty(t, appt.ID)
	require.Equal(t, "9876543210", appt.Phone)
}

func TestCreateValidationFailureHasField(t *testing.T) {
	h, _ := newTestHandler()

	rec := postAppointment(t, h, strings.Replace(validBody, "09:30", "9:5", 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "validation_failed", resp.Code)
	require.Equal(t, "time", resp.Field)
}

func TestCreateConflictReturns409(t *testing.T) {
	h, _ := newTestHandler()

	require.Equal(t, http.StatusCreated, postAppointment(t, h, validBody).Code)

	rec := postAppointment(t, h, strings.Replace(validBody, "priya@example.com", "rahul@example.com", 1))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "slot_taken", resp.Code)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	h, _ := newTestHandler()

	rec := postAppointment(t, h, "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRejectsBadDateShape(t *testing.T) {
	h, _ := newTestHandler()

	rec := postAppointment(t, h, strings.Replace(validBody, "2026-09-01", "01/09/2026", 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "date", resp.Field)
}
