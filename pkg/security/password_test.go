package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, hasher.Compare(hash, "secret-password"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}

func TestHash_TooShort(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("abc")
	assert.ErrorIs(t, err, ErrTooShort)
}
