package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-at-least-32-bytes!!"
	testIssuer = "weedhaven-storefront"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService(testSecret, time.Hour, testIssuer)
	sessionID := uuid.New()

	token, expiresAt, err := svc.Generate(sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestJWTTokenService_Validate_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService(testSecret, time.Hour, testIssuer)
	other := NewJWTTokenService("a-completely-different-signing-key", time.Hour, testIssuer)

	token, _, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	svc := NewJWTTokenService(testSecret, -time.Minute, testIssuer)

	token, _, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Validate_Garbage(t *testing.T) {
	svc := NewJWTTokenService(testSecret, time.Hour, testIssuer)

	_, err := svc.Validate("not-a-jwt")
	assert.Error(t, err)
}
