package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/placementhub/placementhub/internal/domain"
)

// Store holds at most one authenticated identity and is the only writer of
// the durable slot. It is created unauthenticated with the loading flag set;
// Initialize clears the flag after the one-time rehydration, and Login raises
// it again for the duration of an attempt.
type Store struct {
	slot   Slot
	codec  Codec
	source CredentialSource
	delay  time.Duration

	mu            sync.Mutex
	identity      *domain.Identity
	loading       bool
	lastErr       string
	initialized   bool
	loginInFlight bool
}

// Option configures a Store.
type Option func(*Store)

// WithCodec overrides the default JSON codec.
func WithCodec(codec Codec) Option {
	return func(s *Store) { s.codec = codec }
}

// WithLatency sets the simulated credential round-trip delay applied before
// each lookup. The default is zero; the mock directory stands in for a real
// authentication service, and the delay makes the loading state observable.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// NewStore creates a store over the given slot and credential source.
func NewStore(slot Slot, source CredentialSource, opts ...Option) *Store {
	s := &Store{
		slot:    slot,
		codec:   JSONCodec{},
		source:  source,
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize rehydrates the identity from the slot. It runs once; repeated
// calls are no-ops. An empty slot is the normal unauthenticated state and a
// malformed record is treated the same way, silently.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.loading = false

	value, ok, err := s.slot.Load(ctx)
	if err != nil {
		// Fail open to the logged-out state rather than blocking startup.
		slog.Warn("session slot unreadable, starting unauthenticated", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	identity, err := s.codec.Decode(value)
	if err != nil {
		slog.Debug("discarding malformed session record", "error", err)
		return nil
	}

	s.identity = identity
	return nil
}

// Login authenticates the email+role pair against the credential source and
// persists the resulting identity. The password is carried for interface
// compatibility with a real authentication service and is not checked by the
// fixture directory.
//
// On failure the previous identity is kept: a failed re-login must not tear
// down an existing session. A second call while one attempt is in flight is
// rejected with ErrLoginInFlight.
func (s *Store) Login(ctx context.Context, email, _ string, role domain.Role) error {
	s.mu.Lock()
	if s.loginInFlight {
		s.mu.Unlock()
		return ErrLoginInFlight
	}
	s.loginInFlight = true
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loginInFlight = false
		s.loading = false
		s.mu.Unlock()
	}()

	if email == "" || !role.IsValid() {
		s.setError(ErrInvalidCredentials.Error())
		return ErrInvalidCredentials
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	identity, err := s.source.Lookup(ctx, email, role)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			s.setError(ErrInvalidCredentials.Error())
			return ErrInvalidCredentials
		}
		s.setError("login failed")
		return fmt.Errorf("lookup credentials: %w", err)
	}

	value, err := s.codec.Encode(identity)
	if err != nil {
		s.setError("login failed")
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.slot.Store(ctx, value); err != nil {
		s.setError("login failed")
		return fmt.Errorf("persist session record: %w", err)
	}

	s.mu.Lock()
	s.identity = identity
	s.lastErr = ""
	s.mu.Unlock()

	return nil
}

// Logout clears the identity and empties the slot. Logging out while already
// logged out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

// Current returns the authenticated identity, or nil.
func (s *Store) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// IsAuthenticated reports whether an identity is set.
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// Loading reports whether the initial rehydration or a login attempt is in
// progress. Consumers must not make authorization decisions while it is set.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last login error message, empty when the last attempt
// succeeded or none was made.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
