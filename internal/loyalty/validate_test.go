package loyalty

import (
	"testing"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTiers(t *testing.T) {
	require.NoError(t, ValidateTiers(testTiers()))

	testcases := []struct {
		name  string
		tiers []models.TierConfig
	}{
		{"empty", nil},
		{"first not zero", []models.TierConfig{{Name: "A", MinPoints: 10}}},
		{"not ascending", []models.TierConfig{
			{Name: "A", MinPoints: 0}, {Name: "B", MinPoints: 200}, {Name: "C", MinPoints: 100},
		}},
		{"duplicate name", []models.TierConfig{
			{Name: "A", MinPoints: 0}, {Name: "A", MinPoints: 100},
		}},
		{"unnamed tier", []models.TierConfig{{Name: "", MinPoints: 0}}},
		{"discount out of range", []models.TierConfig{
			{Name: "A", MinPoints: 0, DiscountPercentage: 120},
		}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateTiers(tc.tiers))
		})
	}
}

func TestValidateProgram(t *testing.T) {
	program := &models.LoyaltyProgram{
		HotelID:          "h-1",
		Tiers:            testTiers(),
		PointsRules:      models.PointsRules{PointsPerDollar: 1},
		RedemptionRules:  models.RedemptionRules{PointsToMoneyRatio: 100},
		ExpirationMonths: 12,
	}
	require.NoError(t, ValidateProgram(program))

	bad := *program
	bad.ExpirationMonths = -1
	assert.Error(t, ValidateProgram(&bad))

	bad = *program
	bad.PointsRules.PointsPerDollar = 0
	assert.Error(t, ValidateProgram(&bad))

	bad = *program
	bad.PointsRules = models.PointsRules{PointsPerDollar: 1, ServiceMultipliers: map[string]float64{"dining": -2}}
	assert.Error(t, ValidateProgram(&bad))

	bad = *program
	bad.RedemptionRules.PointsToMoneyRatio = 0
	assert.Error(t, ValidateProgram(&bad))

	bad = *program
	bad.HotelID = ""
	assert.Error(t, ValidateProgram(&bad))
}
