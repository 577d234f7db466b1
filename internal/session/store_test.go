package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/placementhub/placementhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSource is a credential source that waits until released, to hold a
// login attempt in flight.
type blockingSource struct {
	release  chan struct{}
	identity *domain.Identity
}

func (s *blockingSource) Lookup(ctx context.Context, _ string, _ domain.Role) (*domain.Identity, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if s.identity == nil {
		return nil, ErrNoMatch
	}
	return s.identity, nil
}

// failingSource returns an infrastructure error on every lookup.
type failingSource struct{}

func (failingSource) Lookup(context.Context, string, domain.Role) (*domain.Identity, error) {
	return nil, errors.New("directory unavailable")
}

func newTestStore(t *testing.T) (*Store, *MemorySlot) {
	t.Helper()
	slot := NewMemorySlot()
	store := NewStore(slot, DefaultFixtureDirectory())
	require.NoError(t, store.Initialize(context.Background()))
	return store, slot
}

func TestLogin_AllFixtureRecords(t *testing.T) {
	directory := DefaultFixtureDirectory()

	for _, role := range domain.Roles() {
		t.Run(string(role), func(t *testing.T) {
			store := NewStore(NewMemorySlot(), directory)
			require.NoError(t, store.Initialize(context.Background()))

			expected, err := directory.Lookup(context.Background(), string(role)+"@example.com", role)
			require.NoError(t, err)

			err = store.Login(context.Background(), expected.Email, "any-password", role)

			require.NoError(t, err)
			require.True(t, store.IsAuthenticated())
			assert.Equal(t, expected, store.Current())
			assert.Empty(t, store.Err())
			assert.False(t, store.Loading())
		})
	}
}

func TestLogin_PasswordIsNotChecked(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Login(context.Background(), "student@example.com", "", domain.RoleStudent)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, store.Current().Role)
}

func TestLogin_RoleMismatchFails(t *testing.T) {
	store, slot := newTestStore(t)

	// Email exists, but under a different role.
	err := store.Login(context.Background(), "student@example.com", "password", domain.RoleCompany)

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, ErrInvalidCredentials.Error(), store.Err())

	_, ok, loadErr := slot.Load(context.Background())
	require.NoError(t, loadErr)
	assert.False(t, ok, "failed login must not persist anything")
}

func TestLogin_UnknownEmailFails(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Login(context.Background(), "nobody@example.com", "password", domain.RoleStudent)

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, store.Current())
}

func TestLogin_FailurePreservesExistingSession(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Login(context.Background(), "student@example.com", "password", domain.RoleStudent))
	before := store.Current()

	// A failed re-login under a different identity keeps the old session.
	err := store.Login(context.Background(), "nobody@example.com", "password", domain.RoleCompany)

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, before, store.Current())
	assert.Equal(t, ErrInvalidCredentials.Error(), store.Err())
}

func TestLogin_SuccessClearsPriorError(t *testing.T) {
	store, _ := newTestStore(t)
	require.Error(t, store.Login(context.Background(), "nobody@example.com", "x", domain.RoleStudent))
	require.NotEmpty(t, store.Err())

	require.NoError(t, store.Login(context.Background(), "student@example.com", "x", domain.RoleStudent))

	assert.Empty(t, store.Err())
}

func TestLogin_OverwritesPriorSlotValue(t *testing.T) {
	store, slot := newTestStore(t)
	require.NoError(t, store.Login(context.Background(), "student@example.com", "x", domain.RoleStudent))
	require.NoError(t, store.Login(context.Background(), "company@example.com", "x", domain.RoleCompany))

	value, ok, err := slot.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	identity, err := JSONCodec{}.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCompany, identity.Role)
}

func TestLogin_SecondAttemptWhileInFlightIsRejected(t *testing.T) {
	source := &blockingSource{
		release:  make(chan struct{}),
		identity: &domain.Identity{ID: "u1", Email: "u@example.com", Role: domain.RoleStudent},
	}
	store := NewStore(NewMemorySlot(), source)
	require.NoError(t, store.Initialize(context.Background()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.Login(context.Background(), "u@example.com", "x", domain.RoleStudent)
	}()

	// Wait for the first attempt to reach the source.
	require.Eventually(t, store.Loading, time.Second, time.Millisecond)

	err := store.Login(context.Background(), "u@example.com", "x", domain.RoleStudent)
	assert.ErrorIs(t, err, ErrLoginInFlight)

	close(source.release)
	wg.Wait()
	assert.True(t, store.IsAuthenticated())
}

func TestLogin_SourceFailureDoesNotPanicOrAuthenticate(t *testing.T) {
	store := NewStore(NewMemorySlot(), failingSource{})
	require.NoError(t, store.Initialize(context.Background()))

	err := store.Login(context.Background(), "student@example.com", "x", domain.RoleStudent)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, store.IsAuthenticated())
	assert.NotEmpty(t, store.Err())
}

func TestLogin_SimulatedLatencyShowsLoading(t *testing.T) {
	store := NewStore(NewMemorySlot(), DefaultFixtureDirectory(), WithLatency(50*time.Millisecond))
	require.NoError(t, store.Initialize(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- store.Login(context.Background(), "student@example.com", "x", domain.RoleStudent)
	}()

	require.Eventually(t, store.Loading, time.Second, time.Millisecond)
	require.NoError(t, <-done)
	assert.False(t, store.Loading())
}

func TestLogout_ClearsIdentityAndSlot(t *testing.T) {
	store, slot := newTestStore(t)
	require.NoError(t, store.Login(context.Background(), "student@example.com", "x", domain.RoleStudent))

	require.NoError(t, store.Logout(context.Background()))

	assert.False(t, store.IsAuthenticated())
	_, ok, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_WhenLoggedOutIsNoOp(t *testing.T) {
	store, slot := newTestStore(t)

	require.NoError(t, store.Logout(context.Background()))
	require.NoError(t, store.Logout(context.Background()))

	assert.False(t, store.IsAuthenticated())
	_, ok, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitialize_RestoresPersistedIdentity(t *testing.T) {
	slot := NewMemorySlot()
	first := NewStore(slot, DefaultFixtureDirectory())
	require.NoError(t, first.Initialize(context.Background()))
	require.NoError(t, first.Login(context.Background(), "placement@example.com", "x", domain.RolePlacement))
	want := first.Current()

	// Simulate a process restart: a fresh store over the same slot.
	second := NewStore(slot, DefaultFixtureDirectory())
	assert.True(t, second.Loading())
	require.NoError(t, second.Initialize(context.Background()))

	assert.False(t, second.Loading())
	assert.Equal(t, want, second.Current())
}

func TestInitialize_EmptySlotIsUnauthenticated(t *testing.T) {
	store := NewStore(NewMemorySlot(), DefaultFixtureDirectory())

	require.NoError(t, store.Initialize(context.Background()))

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Err())
	assert.False(t, store.Loading())
}

func TestInitialize_MalformedRecordIsDiscarded(t *testing.T) {
	slot := NewMemorySlot()
	require.NoError(t, slot.Store(context.Background(), []byte("{not json")))

	store := NewStore(slot, DefaultFixtureDirectory())
	require.NoError(t, store.Initialize(context.Background()))

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Err(), "malformed session is recovered silently")
}

func TestInitialize_RunsOnce(t *testing.T) {
	slot := NewMemorySlot()
	store := NewStore(slot, DefaultFixtureDirectory())
	require.NoError(t, store.Initialize(context.Background()))
	require.NoError(t, store.Login(context.Background(), "student@example.com", "x", domain.RoleStudent))

	// A repeated call must not re-read the slot or reset state.
	require.NoError(t, slot.Clear(context.Background()))
	require.NoError(t, store.Initialize(context.Background()))

	assert.True(t, store.IsAuthenticated())
}

func TestFileSlot_RoundTrip(t *testing.T) {
	path := t.TempDir() + "/session.json"
	slot := NewFileSlot(path)

	first := NewStore(slot, DefaultFixtureDirectory())
	require.NoError(t, first.Initialize(context.Background()))
	require.NoError(t, first.Login(context.Background(), "company@example.com", "x", domain.RoleCompany))

	second := NewStore(slot, DefaultFixtureDirectory())
	require.NoError(t, second.Initialize(context.Background()))

	require.True(t, second.IsAuthenticated())
	assert.Equal(t, "company1", second.Current().ID)

	require.NoError(t, second.Logout(context.Background()))
	_, ok, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
