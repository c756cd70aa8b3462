package loyalty

import "concierge/internal/models"

// Redemption verdict reasons surfaced to the guest UI. The tier check runs
// before the balance check so an ineligible-tier guest is never told a
// points shortfall they cannot act on.
const (
	ReasonRewardUnavailable  = "reward unavailable"
	ReasonTierRequirement    = "tier requirement not met"
	ReasonInsufficientPoints = "insufficient points"
	ReasonUsageLimitReached  = "usage limit reached"
)

type Verdict struct {
	Available    bool   `json:"available"`
	Reason       string `json:"reason,omitempty"`
	PointsNeeded int    `json:"points_needed,omitempty"`
}

// CanRedeem checks a member against a reward under the hotel's current tier
// ladder. The first failing check's reason wins.
func CanRedeem(member *models.LoyaltyMember, reward *models.LoyaltyReward, tiers []models.TierConfig) Verdict {
	if !reward.IsActive {
		return Verdict{Reason: ReasonRewardUnavailable}
	}

	requiredRank := TierRank(reward.RequiredTier, tiers)
	if requiredRank > 0 && TierRank(member.CurrentTier, tiers) < requiredRank {
		return Verdict{Reason: ReasonTierRequirement}
	}

	if member.AvailablePoints < reward.PointsCost {
		return Verdict{
			Reason:       ReasonInsufficientPoints,
			PointsNeeded: reward.PointsCost - member.AvailablePoints,
		}
	}

	if reward.UsageLimit != nil && reward.TimesRedeemed >= *reward.UsageLimit {
		return Verdict{Reason: ReasonUsageLimitReached}
	}

	return Verdict{Available: true}
}
