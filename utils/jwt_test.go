package utils

import (
	"testing"
	"time"

	"travelorbit/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"

	token, err := GenerateSessionToken("sess-123", time.Hour)
	require.NoError(t, err)

	sub, err := ExtractSessionIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", sub)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateSessionToken("sess-456", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractSessionIDFromToken(token)
	assert.Error(t, err)
}
