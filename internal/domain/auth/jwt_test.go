package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventasapi/internal/core/apperror"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 12*time.Hour)

	token, err := svc.Generate(&User{
		ID:       42,
		Username: "vendedor",
		Role:     "usuario",
		Branch:   "Centro",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "vendedor", user.Username)
	assert.Equal(t, "usuario", user.Role)
	assert.Equal(t, "Centro", user.Branch)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", 12*time.Hour)
	issued := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return issued }
	token, err := svc.Generate(&User{ID: 1, Username: "u"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(13 * time.Hour) }
	_, err = svc.Validate(token)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).Generate(&User{ID: 1, Username: "u"})
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestJWTService_Garbage(t *testing.T) {
	_, err := NewJWTService("test-secret", time.Hour).Validate("not-a-token")
	assert.Error(t, err)
}
