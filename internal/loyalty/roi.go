package loyalty

import "concierge/internal/models"

// ComputeROI folds program revenue and costs into the hotel-level report.
// roi_percentage is zero when there are no costs yet.
func ComputeROI(totalRevenue, rewardValueRedeemed, estimatedDiscountCost float64) models.ROIReport {
	costs := rewardValueRedeemed + estimatedDiscountCost
	roi := totalRevenue - costs

	pct := 0.0
	if costs > 0 {
		pct = roi / costs * 100
	}

	return models.ROIReport{
		TotalRevenue:          totalRevenue,
		RewardValueRedeemed:   rewardValueRedeemed,
		EstimatedDiscountCost: estimatedDiscountCost,
		TotalCosts:            costs,
		ROI:                   roi,
		ROIPercentage:         pct,
	}
}

// EstimatedDiscountCost estimates what tier discounts have cost the hotel:
// each member's lifetime spending times the configured discount percentage
// of their current tier. It is an estimate, not a ledger figure.
func EstimatedDiscountCost(members []models.LoyaltyMember, tiers []models.TierConfig) float64 {
	total := 0.0
	for _, member := range members {
		if rank := TierRank(member.CurrentTier, tiers); rank >= 0 {
			total += member.LifetimeSpending * tiers[rank].DiscountPercentage / 100
		}
	}
	return total
}
