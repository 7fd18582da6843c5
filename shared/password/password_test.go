package password_test

import (
	"proctor/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, password.Verify("correct horse battery staple", hash))
	assert.ErrorIs(t, password.Verify("wrong password", hash), password.ErrInvalidPassword)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")
	assert.Error(t, err)
}

func TestVerify_EmptyInputs(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "some-hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("some-password", ""), password.ErrInvalidPassword)
}

func TestIsHashed(t *testing.T) {
	hash, err := password.Hash("secret")
	require.NoError(t, err)

	assert.True(t, password.IsHashed(hash))
	assert.False(t, password.IsHashed("secret"))
	assert.False(t, password.IsHashed(""))
}
