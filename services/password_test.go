package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("sup3r-secret!")
	require.NoError(t, err)
	assert.Contains(t, hash, "$")

	ok, err := VerifyPassword(hash, "sup3r-secret!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong-password1!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsWeakPassword(t *testing.T) {
	_, err := HashPassword("weak")
	require.Error(t, err)
	// The message states the actual rule: one number, one special character.
	assert.EqualError(t, err, "password must be at least 6 characters and contain at least one number and one special character")

	// One of each is enough.
	_, err = HashPassword("abcd1!")
	assert.NoError(t, err)
}

func TestHashNoteSecretAcceptsAnySecret(t *testing.T) {
	// Note secrets carry no strength rule.
	hash, err := HashNoteSecret("hi")
	require.NoError(t, err)
	assert.True(t, ComparePasswords(hash, "hi"))
	assert.False(t, ComparePasswords(hash, "bye"))
}

func TestHashNoteSecretSaltsDiffer(t *testing.T) {
	first, err := HashNoteSecret("same-secret")
	require.NoError(t, err)
	second, err := HashNoteSecret("same-secret")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestComparePasswordsBadFormat(t *testing.T) {
	assert.False(t, ComparePasswords("not-a-valid-hash", "anything"))
}
