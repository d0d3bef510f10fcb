package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// tokenAlphabet holds the characters used for generated passwords and reset
// tokens.
const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces random secrets from a fixed alphabet using crypto/rand.
type Generator struct{}

// NewGenerator creates a new secret generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a random string of length n drawn from the token alphabet.
func (g *Generator) Generate(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("generate secret: length must be positive, got %d", n)
	}

	max := big.NewInt(int64(len(tokenAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate secret: %w", err)
		}
		out[i] = tokenAlphabet[idx.Int64()]
	}

	return string(out), nil
}
