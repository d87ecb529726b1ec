package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4) // low cost for tests

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash, err := h.Hash(salt, "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, h.Compare(hash, salt, "correct horse battery staple"))
	assert.Error(t, h.Compare(hash, salt, "wrong password"))
	assert.Error(t, h.Compare(hash, "other-salt", "correct horse battery staple"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	h := NewBcryptHasher(4)
	s1, err := h.GenerateSalt()
	require.NoError(t, err)
	s2, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}

func TestBcryptHasher_LongPassword(t *testing.T) {
	// bcrypt truncates input at 72 bytes; the sha256 pre-hash must keep long
	// passwords distinguishable.
	h := NewBcryptHasher(4)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	hash, err := h.Hash(salt, string(long))
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, salt, string(long)))
	assert.Error(t, h.Compare(hash, salt, string(long)+"b"))
}
