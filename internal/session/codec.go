package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/placementhub/placementhub/internal/domain"
)

// ErrMalformedRecord indicates the slot value could not be decoded into an
// identity. The store recovers silently by treating the session as absent.
var ErrMalformedRecord = errors.New("malformed session record")

// Codec converts an identity to and from the serialized slot value.
type Codec interface {
	Encode(identity *domain.Identity) ([]byte, error)
	Decode(value []byte) (*domain.Identity, error)
}

// JSONCodec stores the identity as a plain JSON object with the fields
// id, email, name, role and optional profileImage.
type JSONCodec struct{}

// Encode marshals the identity to JSON.
func (JSONCodec) Encode(identity *domain.Identity) ([]byte, error) {
	return json.Marshal(identity)
}

// Decode unmarshals the identity and rejects records without a usable
// id or role.
func (JSONCodec) Decode(value []byte) (*domain.Identity, error) {
	var identity domain.Identity
	if err := json.Unmarshal(value, &identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if identity.ID == "" || !identity.Role.IsValid() {
		return nil, ErrMalformedRecord
	}
	return &identity, nil
}

// TokenCodec stores the identity as an HMAC-signed token so the record can
// travel through a client-held cookie without being forgeable. The claims
// carry the same fields as the JSON codec; there is no expiry.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec signing with the given secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Encode signs the identity claims into a compact token.
func (c *TokenCodec) Encode(identity *domain.Identity) ([]byte, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"name":  identity.Name,
		"role":  string(identity.Role),
	}
	if identity.ProfileImage != "" {
		claims["profileImage"] = identity.ProfileImage
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return []byte(signed), nil
}

// Decode verifies the signature and rebuilds the identity. Any parse or
// signature failure is reported as a malformed record.
func (c *TokenCodec) Decode(value []byte) (*domain.Identity, error) {
	token, err := jwt.Parse(string(value), func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedRecord
	}

	identity := &domain.Identity{
		ID:    stringClaim(claims, "sub"),
		Email: stringClaim(claims, "email"),
		Name:  stringClaim(claims, "name"),
		Role:  domain.Role(stringClaim(claims, "role")),
	}
	identity.ProfileImage = stringClaim(claims, "profileImage")

	if identity.ID == "" || !identity.Role.IsValid() {
		return nil, ErrMalformedRecord
	}
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
