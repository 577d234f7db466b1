package session

import (
	"strings"
	"testing"

	"github.com/placementhub/placementhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec_RejectsUnknownRole(t *testing.T) {
	_, err := JSONCodec{}.Decode([]byte(`{"id":"u1","email":"u@example.com","name":"U","role":"admin"}`))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestJSONCodec_RejectsMissingID(t *testing.T) {
	_, err := JSONCodec{}.Decode([]byte(`{"email":"u@example.com","role":"student"}`))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	identity := &domain.Identity{
		ID:           "student1",
		Email:        "student@example.com",
		Name:         "Alex Student",
		Role:         domain.RoleStudent,
		ProfileImage: "https://example.com/alex.jpg",
	}

	value, err := codec.Encode(identity)
	require.NoError(t, err)

	got, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestTokenCodec_RejectsTamperedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	value, err := codec.Encode(&domain.Identity{ID: "u1", Role: domain.RoleStudent})
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(string(value), ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	parts[1] = string(payload)

	_, err = codec.Decode([]byte(strings.Join(parts, ".")))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestTokenCodec_RejectsWrongSecret(t *testing.T) {
	value, err := NewTokenCodec("secret-a").Encode(&domain.Identity{ID: "u1", Role: domain.RoleStudent})
	require.NoError(t, err)

	_, err = NewTokenCodec("secret-b").Decode(value)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestTokenCodec_RejectsUnsignedToken(t *testing.T) {
	// alg=none style tokens must not be accepted.
	_, err := NewTokenCodec("test-secret").Decode([]byte("eyJhbGciOiJub25lIn0.eyJzdWIiOiJ1MSJ9."))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
