package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	h := NewPasswordHasher()

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, h.Verify(hash, "correct horse battery staple"))
	assert.False(t, h.Verify(hash, "wrong password"))
}

func TestPasswordHasherEmptyPassword(t *testing.T) {
	h := NewPasswordHasher()

	_, err := h.Hash("")
	require.Error(t, err)
}

func TestPasswordHasherMalformedHash(t *testing.T) {
	h := NewPasswordHasher()

	assert.False(t, h.Verify("not-a-bcrypt-hash", "anything"))
	assert.False(t, h.Verify("", "anything"))
}

func TestPasswordHasherHashesDiffer(t *testing.T) {
	h := NewPasswordHasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	// bcrypt salts internally, so equal inputs produce distinct hashes.
	assert.NotEqual(t, first, second)
}
