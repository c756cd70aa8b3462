// Package loyalty holds the pure rules of the points and tier engine: tier
// resolution, earn math, FIFO lot accounting, redemption eligibility and
// program ROI. Nothing in here touches storage; services apply the results
// under their locking discipline.
package loyalty

import "concierge/internal/models"

// ResolveTier picks the tier with the greatest MinPoints not exceeding
// points. Configurations are validated on save (first tier at 0, ascending),
// so a miss cannot happen for a well-formed program; an empty list yields the
// zero TierConfig.
func ResolveTier(points int, tiers []models.TierConfig) models.TierConfig {
	var current models.TierConfig
	for i, tier := range tiers {
		if tier.MinPoints <= points && (i == 0 || tier.MinPoints >= current.MinPoints) {
			current = tier
		}
	}
	return current
}

// TierRank is the tier's index in the configured ladder, -1 when the name is
// not configured (e.g. a reward with no tier requirement).
func TierRank(name string, tiers []models.TierConfig) int {
	for i, tier := range tiers {
		if tier.Name == name {
			return i
		}
	}
	return -1
}

// Progress reports the distance to the next tier, or {0, nil} at the top.
func Progress(points int, tiers []models.TierConfig) models.TierProgress {
	for _, tier := range tiers {
		if tier.MinPoints > points {
			name := tier.Name
			return models.TierProgress{
				PointsToNextTier: tier.MinPoints - points,
				NextTierName:     &name,
			}
		}
	}
	return models.TierProgress{}
}

// Benefits returns the configured benefits for a tier name, nil when the
// name is not configured.
func Benefits(name string, tiers []models.TierConfig) []string {
	if i := TierRank(name, tiers); i >= 0 {
		return tiers[i].Benefits
	}
	return nil
}
