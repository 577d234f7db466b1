package httputil

import (
	"context"
	"net/http"

	"github.com/placementhub/placementhub/internal/authz"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
	"github.com/placementhub/placementhub/internal/pkg/metrics"
	"github.com/placementhub/placementhub/internal/session"
)

// CORSMiddleware creates CORS middleware that handles preflight requests
// and adds appropriate CORS headers to responses.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Check if origin is allowed
			if originsSet[origin] || originsSet["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			// Handle preflight OPTIONS request
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// IdentityKey stores the rehydrated identity in the request context.
const IdentityKey contextKey = "identity"

// SessionMiddleware rehydrates the identity from the session cookie on every
// request and stores it in the context. A missing cookie is the normal
// unauthenticated state; a record that fails to decode is treated the same
// way, silently.
func SessionMiddleware(codec session.Codec, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := codec.Decode([]byte(cookie.Value))
			if err != nil {
				ctxlog.FromContext(r.Context()).Debug("discarding malformed session cookie", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated identity from context, or nil.
func GetIdentity(ctx context.Context) *domain.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}

// RequireRegion gates a navigational region for browser traffic. The
// authorization decision is computed fresh on every request; a denial becomes
// an HTTP redirect, never an error page.
func RequireRegion(region string, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())

			decision := authz.Authorize(identity, roles...)
			if !decision.Allow {
				reason := "role_mismatch"
				if identity == nil {
					reason = "unauthenticated"
				}
				metrics.RecordRegionRedirect(region, reason)
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity gates API routes: unauthenticated requests get a JSON 401
// instead of a redirect.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r.Context()) == nil {
			Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates API routes to the given roles with a JSON 403.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			Error(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}
