package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/placementhub/placementhub/internal/pkg/ctxlog"
)

// ErrorMapping pairs a sentinel error with the HTTP status it should
// produce. Message overrides err.Error() when set.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// HandleError writes the response for a service error. The first mapping
// whose sentinel matches decides the status and message; an unmatched error
// is logged and reported as a plain 500 so internals never leak to clients.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping) {
	for _, m := range mappings {
		if !errors.Is(err, m.Error) {
			continue
		}
		msg := m.Message
		if msg == "" {
			msg = err.Error()
		}
		Error(w, m.Status, msg)
		return
	}

	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
