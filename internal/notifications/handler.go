package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
	"github.com/placementhub/placementhub/internal/pkg/httputil"
)

// Handler handles HTTP requests for the notifications module.
type Handler struct {
	service *Service
}

// NewHandler creates a new notifications handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers routes for authenticated users.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/unread-count", h.UnreadCount)
		r.Post("/read-all", h.MarkAllRead)
		r.Post("/{id}/read", h.MarkRead)
	})
}

// List handles GET /notifications request.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	list, err := h.service.List(r.Context(), actor.ID, unreadOnly, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, list)
}

// UnreadCount handles GET /notifications/unread-count request.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), actor.ID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]int{"count": count})
}

// MarkRead handles POST /notifications/{id}/read request.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.MarkRead(r.Context(), actor.ID, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all request.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetIdentity(r.Context())
	if actor == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.MarkAllRead(r.Context(), actor.ID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	default:
		ctxlog.FromContext(r.Context()).Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
