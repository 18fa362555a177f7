package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; the format is identical.
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(testParams)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, hash, "s3cret-pass")

	ok, err := h.Verify("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltsEveryHash(t *testing.T) {
	h := NewHasher(testParams)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_VerifyUsesStoredParams(t *testing.T) {
	hash, err := NewHasher(testParams).Hash("pw")
	require.NoError(t, err)

	stronger := NewHasher(Params{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	ok, err := stronger.Verify("pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_VerifyRejectsMalformedHashes(t *testing.T) {
	h := NewHasher(testParams)

	testCases := []struct {
		name     string
		hash     string
		expected error
	}{
		{"empty", "", ErrInvalidHash},
		{"bcrypt", "$2a$10$abcdefghijklmnopqrstuv", ErrInvalidHash},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", ErrIncompatibleVersion},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5", ErrInvalidHash},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5", ErrInvalidHash},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := h.Verify("pw", tc.hash)
			assert.False(t, ok)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
