package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("admin", time.Hour)
	require.NoError(t, err)

	subject, err := VerifyAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestAdminTokenExpired(t *testing.T) {
	token, err := GenerateAdminToken("admin", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyAdminToken(token)
	assert.Error(t, err)
}

func TestAdminTokenGarbage(t *testing.T) {
	_, err := VerifyAdminToken("not-a-token")
	assert.Error(t, err)
}
