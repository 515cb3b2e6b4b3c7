package security

import (
	"strings"
	"testing"

	"github.com/borealis-store/borealis-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    64,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", testPasswordConfig())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$"))
	assert.NotContains(t, hash, "hunter22")

	ok, err := VerifyPassword("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("hunter23", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	first, err := HashPassword("same", testPasswordConfig())
	require.NoError(t, err)
	second, err := HashPassword("same", testPasswordConfig())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", testPasswordConfig())
	assert.Error(t, err)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	_, err := VerifyPassword("pw", "$2a$10$bcrypt-ish")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestGenerateResetToken(t *testing.T) {
	token, digest, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 40)
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, HashResetToken(token))
	assert.Equal(t, digest, HashResetToken(" "+token+" "))

	other, _, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
