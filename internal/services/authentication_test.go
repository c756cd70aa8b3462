package services

import (
	"testing"
	"time"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationRoundTrip(t *testing.T) {
	authentication, err := NewAuthentication("test-secret")
	require.NoError(t, err)

	hotelID := "hotel-1"
	user := &models.UserFromAuth{
		ID:      "user-1",
		Role:    models.RoleHotelAdmin,
		HotelID: &hotelID,
		Email:   "admin@example.com",
	}

	token, err := authentication.CreateToken(user, time.Hour)
	require.NoError(t, err)

	parsed, err := authentication.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user, parsed)
}

func TestAuthenticationRejectsBadInput(t *testing.T) {
	_, err := NewAuthentication("")
	assert.Error(t, err)

	authentication, err := NewAuthentication("test-secret")
	require.NoError(t, err)

	_, err = authentication.Validate("not-a-token")
	assert.Error(t, err)

	other, err := NewAuthentication("other-secret")
	require.NoError(t, err)
	token, err := other.CreateToken(&models.UserFromAuth{ID: "user-1", Role: models.RoleGuest}, time.Hour)
	require.NoError(t, err)

	_, err = authentication.Validate(token)
	assert.Error(t, err)
}

func TestAuthenticationRejectsExpiredToken(t *testing.T) {
	authentication, err := NewAuthentication("test-secret")
	require.NoError(t, err)

	token, err := authentication.CreateToken(&models.UserFromAuth{ID: "user-1", Role: models.RoleGuest}, -time.Minute)
	require.NoError(t, err)

	_, err = authentication.Validate(token)
	assert.Error(t, err)
}
