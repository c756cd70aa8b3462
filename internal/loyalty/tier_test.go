package loyalty

import (
	"testing"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTiers() []models.TierConfig {
	return []models.TierConfig{
		{Name: "BRONZE", MinPoints: 0, DiscountPercentage: 0},
		{Name: "SILVER", MinPoints: 150, DiscountPercentage: 5, Benefits: []string{"late checkout"}},
		{Name: "GOLD", MinPoints: 500, DiscountPercentage: 10, Benefits: []string{"late checkout", "room upgrade"}},
	}
}

func TestResolveTier(t *testing.T) {
	tiers := testTiers()

	testcases := []struct {
		points int
		want   string
	}{
		{0, "BRONZE"},
		{149, "BRONZE"},
		{150, "SILVER"},
		{200, "SILVER"},
		{499, "SILVER"},
		{500, "GOLD"},
		{100000, "GOLD"},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.want, ResolveTier(tc.points, tiers).Name, "points=%d", tc.points)
	}
}

func TestResolveTierMonotonic(t *testing.T) {
	tiers := testTiers()

	prevRank := -1
	for points := 0; points <= 1000; points += 7 {
		rank := TierRank(ResolveTier(points, tiers).Name, tiers)
		require.GreaterOrEqual(t, rank, prevRank, "rank regressed at %d points", points)
		prevRank = rank
	}
}

func TestResolveTierThresholdRaised(t *testing.T) {
	tiers := testTiers()
	member := 300

	require.Equal(t, "SILVER", ResolveTier(member, tiers).Name)

	// admin raises the SILVER threshold past the member's balance
	tiers[1].MinPoints = 600
	tiers[2].MinPoints = 900
	require.Equal(t, "BRONZE", ResolveTier(member, tiers).Name)
}

func TestProgress(t *testing.T) {
	tiers := testTiers()

	p := Progress(200, tiers)
	require.NotNil(t, p.NextTierName)
	assert.Equal(t, "GOLD", *p.NextTierName)
	assert.Equal(t, 300, p.PointsToNextTier)

	p = Progress(0, tiers)
	require.NotNil(t, p.NextTierName)
	assert.Equal(t, "SILVER", *p.NextTierName)
	assert.Equal(t, 150, p.PointsToNextTier)

	// top tier: nothing left to reach
	p = Progress(600, tiers)
	assert.Nil(t, p.NextTierName)
	assert.Equal(t, 0, p.PointsToNextTier)
}

func TestTierRank(t *testing.T) {
	tiers := testTiers()

	assert.Equal(t, 0, TierRank("BRONZE", tiers))
	assert.Equal(t, 2, TierRank("GOLD", tiers))
	assert.Equal(t, -1, TierRank("PLATINUM", tiers))
}

func TestBenefits(t *testing.T) {
	tiers := testTiers()

	assert.Equal(t, []string{"late checkout"}, Benefits("SILVER", tiers))
	assert.Nil(t, Benefits("PLATINUM", tiers))
}
