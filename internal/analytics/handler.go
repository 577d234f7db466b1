package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
	"github.com/placementhub/placementhub/internal/pkg/httputil"
)

// Handler handles HTTP requests for the analytics module.
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers analytics routes. The caller gates them to
// placement staff.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/analytics/placements", h.PlacementStats)
}

// PlacementStats handles GET /analytics/placements request.
func (h *Handler) PlacementStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlacementStats(r.Context())
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("failed to compute placement stats", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.Success(w, http.StatusOK, stats)
}
