package jwt_test

import (
	"proctor/config"
	"proctor/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(expireHours int) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "proctor-test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireHours = expireHours

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	svc := jwt.New(testConfig(24))

	token, err := svc.Generate(7, "client1", "client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "client1", claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
}

func TestValidate_Expired(t *testing.T) {
	svc := jwt.New(testConfig(-1))

	token, err := svc.Generate(7, "client1", "client")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := jwt.New(testConfig(24))

	token, err := issuer.Generate(7, "client1", "client")
	require.NoError(t, err)

	other := testConfig(24)
	other.JWT.Secret = "another-secret"

	_, err = jwt.New(other).Validate(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	svc := jwt.New(testConfig(24))

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}
