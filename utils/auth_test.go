package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")
	TokenTTL = time.Hour

	token, err := GenerateJWT("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestParseJWT_Expired(t *testing.T) {
	JwtKey = []byte("test-secret")
	TokenTTL = -time.Hour

	token, err := GenerateJWT("a@x.com")
	require.NoError(t, err)

	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWT_WrongKey(t *testing.T) {
	JwtKey = []byte("test-secret")
	TokenTTL = time.Hour

	token, err := GenerateJWT("a@x.com")
	require.NoError(t, err)

	JwtKey = []byte("another-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	JwtKey = []byte("test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
