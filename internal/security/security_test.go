package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptEncoder_RoundTrip(t *testing.T) {
	enc := NewBcryptEncoder(4)

	hash, err := enc.Encode("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, enc.Matches("s3cret", hash))
	assert.False(t, enc.Matches("wrong", hash))
}

func TestBcryptEncoder_InvalidCostFallsBack(t *testing.T) {
	enc := NewBcryptEncoder(99)

	hash, err := enc.Encode("s3cret")
	require.NoError(t, err)
	assert.True(t, enc.Matches("s3cret", hash))
}

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator()

	secret, err := gen.Generate(16)
	require.NoError(t, err)
	assert.Len(t, secret, 16)

	for _, r := range secret {
		assert.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected character %q", r)
	}
}

func TestGenerator_GenerateUnique(t *testing.T) {
	gen := NewGenerator()

	a, err := gen.Generate(22)
	require.NoError(t, err)
	b, err := gen.Generate(22)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerator_GenerateInvalidLength(t *testing.T) {
	gen := NewGenerator()

	_, err := gen.Generate(0)
	assert.Error(t, err)
}
