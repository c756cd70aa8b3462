package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Ferreira", GuestDisplayInfo{FirstName: "Ana", LastName: "Ferreira"}.DisplayName())
	assert.Equal(t, "Ana", GuestDisplayInfo{FirstName: "Ana"}.DisplayName())
	assert.Equal(t, "Okafor", GuestDisplayInfo{LastName: "Okafor"}.DisplayName())
	assert.Equal(t, "tom", GuestDisplayInfo{Email: "tom@example.com"}.DisplayName())
	assert.Equal(t, "@example.com", GuestDisplayInfo{Email: "@example.com"}.DisplayName())
	assert.Equal(t, "Guest", GuestDisplayInfo{}.DisplayName())
}
