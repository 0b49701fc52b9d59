package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightcare/booking-engine/internal/doctors"
	"github.com/brightcare/booking-engine/internal/schedule"
	"github.com/brightcare/booking-engine/internal/slots"
	"github.com/brightcare/booking-engine/pkg/logging"
)

// Handler exposes the availability resolver over HTTP
type Handler struct {
	availability *AvailabilityService
	logger       *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(availability *AvailabilityService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{availability: availability, logger: logger}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScheduleResponse is the response for a doctor's weekly schedule.
type ScheduleResponse struct {
	DoctorID     string                    `json:"doctor_id"`
	Rows         []schedule.DoctorSchedule `json:"rows"`
	SpecialDates []schedule.SpecialDate    `json:"special_dates"`
}

// SlotsResponse is the response for a doctor's slots on one date. A 200 with
// an empty slot list means fully booked or not working; load failures are a
// 503 instead so the client never confuses the two.
type SlotsResponse struct {
	DoctorID string           `json:"doctor_id"`
	Date     string           `json:"date"`
	Slots    []slots.TimeSlot `json:"slots"`
	Count    int              `json:"count"`
}

// DatesResponse is the response for the selectable date strip.
type DatesResponse struct {
	DoctorID string   `json:"doctor_id"`
	Dates    []string `json:"dates"`
}

// GetSchedule handles GET /doctors/{doctorID}/schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	if doctors.ParseID(doctorID) == doctors.IDKindInvalid {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_doctor_id", Message: "doctor id must be a UUID or slug"})
		return
	}

	rows, specials, err := h.availability.Schedule(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("schedule fetch failed", "doctor_id", doctorID, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: "schedule_unavailable", Message: "schedule could not be loaded"})
		return
	}

	if rows == nil {
		rows = []schedule.DoctorSchedule{}
	}
	if specials == nil {
		specials = []schedule.SpecialDate{}
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{DoctorID: doctorID, Rows: rows, SpecialDates: specials})
}

// GetDates handles GET /doctors/{doctorID}/dates.
func (h *Handler) GetDates(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	if doctors.ParseID(doctorID) == doctors.IDKindInvalid {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_doctor_id", Message: "doctor id must be a UUID or slug"})
		return
	}

	dates, err := h.availability.SelectableDates(r.Context(), doctorID)
	switch {
	case errors.Is(err, doctors.ErrDoctorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "doctor_not_found", Message: "no such doctor"})
		return
	case err != nil:
		h.logger.Error("selectable dates fetch failed", "doctor_id", doctorID, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: "schedule_unavailable", Message: "schedule could not be loaded"})
		return
	}

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, DatesResponse{DoctorID: doctorID, Dates: out})
}

// GetSlots handles GET /doctors/{doctorID}/slots?date=YYYY-MM-DD.
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")
	if doctors.ParseID(doctorID) == doctors.IDKindInvalid {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_doctor_id", Message: "doctor id must be a UUID or slug"})
		return
	}

	raw := r.URL.Query().Get("date")
	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_date", Message: "date must be YYYY-MM-DD"})
		return
	}

	list, err := h.availability.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		h.logger.Error("slot fetch failed", "doctor_id", doctorID, "date", raw, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: "schedule_unavailable", Message: "slots could not be loaded"})
		return
	}

	if list == nil {
		list = []slots.TimeSlot{}
	}
	writeJSON(w, http.StatusOK, SlotsResponse{
		DoctorID: doctorID,
		Date:     date.Format("2006-01-02"),
		Slots:    list,
		Count:    len(list),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
