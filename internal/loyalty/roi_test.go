package loyalty

import (
	"testing"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeROI(t *testing.T) {
	report := ComputeROI(10000, 1500, 500)

	assert.Equal(t, 10000.0, report.TotalRevenue)
	assert.Equal(t, 2000.0, report.TotalCosts)
	assert.Equal(t, 8000.0, report.ROI)
	assert.InDelta(t, 400.0, report.ROIPercentage, 0.001)
}

func TestComputeROIZeroCosts(t *testing.T) {
	report := ComputeROI(10000, 0, 0)

	assert.Equal(t, 10000.0, report.ROI)
	assert.Zero(t, report.ROIPercentage, "no division by zero when the program has no costs yet")
}

func TestComputeROINegative(t *testing.T) {
	report := ComputeROI(100, 300, 100)

	assert.Equal(t, -300.0, report.ROI)
	assert.InDelta(t, -75.0, report.ROIPercentage, 0.001)
}

func TestEstimatedDiscountCost(t *testing.T) {
	tiers := testTiers() // SILVER 5%, GOLD 10%

	members := []models.LoyaltyMember{
		{CurrentTier: "SILVER", LifetimeSpending: 1000},
		{CurrentTier: "GOLD", LifetimeSpending: 2000},
		{CurrentTier: "BRONZE", LifetimeSpending: 500},
		{CurrentTier: "UNKNOWN", LifetimeSpending: 9999},
	}

	// 1000*0.05 + 2000*0.10 + 500*0 = 250; unknown tiers contribute nothing
	assert.InDelta(t, 250.0, EstimatedDiscountCost(members, tiers), 0.001)
}
