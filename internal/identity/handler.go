// Package identity exposes the login/logout lifecycle over HTTP. Each
// request constructs a session store over the caller's cookie slot, so the
// store remains the single writer of persisted session state.
package identity

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/pkg/httputil"
	"github.com/placementhub/placementhub/internal/pkg/metrics"
	"github.com/placementhub/placementhub/internal/session"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	directory  session.CredentialSource
	codec      session.Codec
	validator  *validator.Validate
	cookie     CookieSettings
	loginDelay time.Duration
}

// NewHandler creates a new identity handler. loginDelay is the simulated
// credential round-trip applied by the session store on every attempt.
func NewHandler(directory session.CredentialSource, codec session.Codec, cookie CookieSettings, loginDelay time.Duration) *Handler {
	return &Handler{
		directory:  directory,
		codec:      codec,
		validator:  validator.New(),
		cookie:     cookie,
		loginDelay: loginDelay,
	}
}

// RegisterRoutes registers identity routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}

// LoginRequest represents login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student placement company"`
}

// LoginResponse represents login response.
type LoginResponse struct {
	User *domain.Identity `json:"user"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	store := h.storeFor(w, r)
	if err := store.Initialize(r.Context()); err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	err := store.Login(r.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		metrics.RecordLoginAttempt(req.Role, "failure")
		httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
			{Error: session.ErrInvalidCredentials, Status: http.StatusUnauthorized},
			{Error: session.ErrLoginInFlight, Status: http.StatusConflict},
		})
		return
	}

	metrics.RecordLoginAttempt(req.Role, "success")
	httputil.Success(w, http.StatusOK, LoginResponse{User: store.Current()})
}

// Logout handles POST /auth/logout. Logging out an unauthenticated caller is
// a no-op; the response is 204 either way.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	store := h.storeFor(w, r)
	if err := store.Initialize(r.Context()); err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}
	if err := store.Logout(r.Context()); err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r.Context())
	if identity == nil {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	httputil.Success(w, http.StatusOK, identity)
}

func (h *Handler) storeFor(w http.ResponseWriter, r *http.Request) *session.Store {
	return session.NewStore(
		NewCookieSlot(w, r, h.cookie),
		h.directory,
		session.WithCodec(h.codec),
		session.WithLatency(h.loginDelay),
	)
}
