package doctors

import (
	"encoding/json"
	"net/http"

	"github.com/brightcare/booking-engine/internal/observability/metrics"
	"github.com/brightcare/booking-engine/pkg/logging"
)

// Handler handles HTTP requests for the doctor directory
type Handler struct {
	repo    Repository
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a new doctors handler. m may be nil.
func NewHandler(repo Repository, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, metrics: m, logger: logger}
}

// ListDoctorsResponse is the response for listing doctors
type ListDoctorsResponse struct {
	Doctors  []*Doctor `json:"doctors"`
	Count    int       `json:"count"`
	Degraded bool      `json:"degraded"`
}

// ListDoctors handles GET /doctors. On repository failure it serves the
// fixed fallback list with degraded=true rather than failing the flow.
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	degraded := false
	if err != nil {
		h.logger.Error("doctor directory unavailable, serving fallback list", "error", err)
		h.metrics.ObserveDegradedDoctorList()
		list = FallbackList()
		degraded = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListDoctorsResponse{
		Doctors:  list,
		Count:    len(list),
		Degraded: degraded,
	})
}
