package security

import (
	"golang.org/x/crypto/bcrypt"
)

// Encoder hashes secrets for storage and verifies raw values against stored
// hashes. Passwords and challenge answers both pass through it.
type Encoder interface {
	// Encode returns the one-way hash of the raw secret.
	Encode(raw string) (string, error)

	// Matches reports whether the raw secret corresponds to the stored hash.
	Matches(raw, encoded string) bool
}

// BcryptEncoder implements Encoder using bcrypt.
type BcryptEncoder struct {
	cost int
}

// NewBcryptEncoder creates an encoder with the given bcrypt cost. A cost
// outside bcrypt's valid range falls back to the library default.
func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{cost: cost}
}

// Encode hashes the raw secret with bcrypt.
func (e *BcryptEncoder) Encode(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), e.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches verifies the raw secret against the bcrypt hash.
func (e *BcryptEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
