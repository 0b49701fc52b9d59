package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brightcare/booking-engine/pkg/logging"
)

// Handler handles HTTP requests for appointment creation
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type createRequest struct {
	DoctorID    string `json:"doctor_id"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	Time        string `json:"time"`
	PatientName string `json:"patient_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Create handles POST /appointments. Error taxonomy maps onto status codes:
// 400 validation (with field), 409 slot conflict, 422 other persistence
// rejections.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Error("failed to decode appointment request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: "invalid request body"})
		return
	}

	req := &SubmitRequest{
		DoctorID:    body.DoctorID,
		Time:        body.Time,
		PatientName: body.PatientName,
		Email:       body.Email,
		Phone:       body.Phone,
		Notes:       body.Notes,
	}
	if body.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", body.Date, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "validation_failed", Field: "date", Message: "date must be YYYY-MM-DD"})
			return
		}
		req.Date = d
	}

	created, err := h.service.Submit(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		var serr *SubmissionError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "validation_failed", Field: verr.Field, Message: verr.Message})
		case errors.Is(err, ErrSlotTaken):
			writeJSON(w, http.StatusConflict, errorResponse{Code: "slot_taken", Message: "that time was just booked, pick another slot"})
		case errors.As(err, &serr):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: serr.Code, Message: serr.Message})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal", Message: "something went wrong"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
