package identity

import (
	"context"
	"net/http"
	"time"
)

// CookieSettings contains settings for the session cookie.
type CookieSettings struct {
	Name   string
	Domain string
	Secure bool
	// MaxAge of zero produces a browser-session cookie.
	MaxAge time.Duration
}

// CookieSlot adapts one request/response pair to the session slot interface:
// the browser's cookie jar is the client's durable local storage, one key per
// client. Reads come from the request, writes become Set-Cookie headers on
// the response.
//
// The slot stores the codec output verbatim, so the codec must produce
// cookie-safe bytes; the signed token codec does.
type CookieSlot struct {
	w        http.ResponseWriter
	r        *http.Request
	settings CookieSettings
}

// NewCookieSlot creates a slot bound to the given request and response.
func NewCookieSlot(w http.ResponseWriter, r *http.Request, settings CookieSettings) *CookieSlot {
	return &CookieSlot{w: w, r: r, settings: settings}
}

// Load returns the session cookie value. A missing cookie is an empty slot.
func (s *CookieSlot) Load(_ context.Context) ([]byte, bool, error) {
	cookie, err := s.r.Cookie(s.settings.Name)
	if err != nil || cookie.Value == "" {
		return nil, false, nil
	}
	return []byte(cookie.Value), true, nil
}

// Store overwrites the session cookie.
func (s *CookieSlot) Store(_ context.Context, value []byte) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.settings.Name,
		Value:    string(value),
		Path:     "/",
		Domain:   s.settings.Domain,
		MaxAge:   int(s.settings.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (s *CookieSlot) Clear(_ context.Context) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.settings.Name,
		Value:    "",
		Path:     "/",
		Domain:   s.settings.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.settings.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
