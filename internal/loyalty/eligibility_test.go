package loyalty

import (
	"testing"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
)

func member(tier string, available int) *models.LoyaltyMember {
	return &models.LoyaltyMember{CurrentTier: tier, AvailablePoints: available, IsActive: true}
}

func reward(cost int, requiredTier string) *models.LoyaltyReward {
	return &models.LoyaltyReward{PointsCost: cost, RequiredTier: requiredTier, IsActive: true}
}

func TestCanRedeem(t *testing.T) {
	tiers := testTiers()

	v := CanRedeem(member("SILVER", 600), reward(500, "SILVER"), tiers)
	assert.True(t, v.Available)
	assert.Empty(t, v.Reason)
}

func TestCanRedeemInsufficientPoints(t *testing.T) {
	tiers := testTiers()

	v := CanRedeem(member("GOLD", 400), reward(500, ""), tiers)
	assert.False(t, v.Available)
	assert.Equal(t, ReasonInsufficientPoints, v.Reason)
	assert.Equal(t, 100, v.PointsNeeded)
}

func TestCanRedeemTierCheckedBeforeBalance(t *testing.T) {
	tiers := testTiers()

	// both checks would fail; the verdict must not leak the shortfall to a
	// member who could not redeem at any balance
	v := CanRedeem(member("BRONZE", 100), reward(500, "GOLD"), tiers)
	assert.False(t, v.Available)
	assert.Equal(t, ReasonTierRequirement, v.Reason)
	assert.Zero(t, v.PointsNeeded)
}

func TestCanRedeemBalanceCheckedBeforeUsageLimit(t *testing.T) {
	tiers := testTiers()

	limit := 1
	r := reward(500, "")
	r.UsageLimit = &limit
	r.TimesRedeemed = 1

	// short on points and the limit is exhausted; the shortfall wins so the
	// member is told the reason they can act on
	v := CanRedeem(member("GOLD", 400), r, tiers)
	assert.False(t, v.Available)
	assert.Equal(t, ReasonInsufficientPoints, v.Reason)
	assert.Equal(t, 100, v.PointsNeeded)
}

func TestCanRedeemInactiveReward(t *testing.T) {
	tiers := testTiers()

	r := reward(100, "")
	r.IsActive = false
	v := CanRedeem(member("GOLD", 1000), r, tiers)
	assert.False(t, v.Available)
	assert.Equal(t, ReasonRewardUnavailable, v.Reason)
}

func TestCanRedeemUsageLimit(t *testing.T) {
	tiers := testTiers()

	limit := 10
	r := reward(100, "")
	r.UsageLimit = &limit
	r.TimesRedeemed = 10

	v := CanRedeem(member("GOLD", 1000), r, tiers)
	assert.False(t, v.Available)
	assert.Equal(t, ReasonUsageLimitReached, v.Reason)

	// nil limit is unlimited
	r.UsageLimit = nil
	r.TimesRedeemed = 100000
	assert.True(t, CanRedeem(member("GOLD", 1000), r, tiers).Available)
}

func TestCanRedeemNoTierRequirement(t *testing.T) {
	tiers := testTiers()

	// empty and lowest-tier requirements gate nobody
	assert.True(t, CanRedeem(member("BRONZE", 1000), reward(100, ""), tiers).Available)
	assert.True(t, CanRedeem(member("BRONZE", 1000), reward(100, "BRONZE"), tiers).Available)
}
