package loyalty

import (
	"testing"
	"time"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarnAmount(t *testing.T) {
	rules := models.PointsRules{
		PointsPerDollar: 1,
		ServiceMultipliers: map[string]float64{
			"dining": 2,
			"spa":    1.5,
		},
	}

	testcases := []struct {
		name     string
		amount   float64
		category string
		want     int
	}{
		{"base rate", 200, "transportation", 200},
		{"multiplier applies", 100, "dining", 200},
		{"fractional result floors", 33.5, "spa", 50}, // 33.5*1.5 = 50.25
		{"sub-point spend floors to zero", 0.4, "transportation", 0},
		{"zero amount", 0, "dining", 0},
		{"negative amount", -10, "dining", 0},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EarnAmount(tc.amount, rules, tc.category))
		})
	}
}

func TestEarnAmountHalfPointRate(t *testing.T) {
	rules := models.PointsRules{PointsPerDollar: 0.5}
	assert.Equal(t, 12, EarnAmount(25, rules, "laundry"))
}

func TestLotExpiry(t *testing.T) {
	issued := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	got := LotExpiry(issued, 12)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, LotExpiry(issued, 0), "0 months means points never expire")
}
