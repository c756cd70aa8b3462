package loyalty

import (
	"math"
	"time"

	"concierge/internal/models"
)

// EarnAmount converts a paid booking amount into points:
// floor(amount × points_per_dollar × category multiplier). Categories without
// a configured multiplier earn at the base rate.
func EarnAmount(amount float64, rules models.PointsRules, category string) int {
	if amount <= 0 || rules.PointsPerDollar <= 0 {
		return 0
	}

	multiplier := rules.ServiceMultipliers[category]
	if multiplier <= 0 {
		multiplier = 1
	}

	return int(math.Floor(amount * rules.PointsPerDollar * multiplier))
}

// LotExpiry computes when a lot issued at issuedAt expires under the
// program's expiration window; nil means the lot never expires.
func LotExpiry(issuedAt time.Time, expirationMonths int) *time.Time {
	if expirationMonths <= 0 {
		return nil
	}
	t := issuedAt.AddDate(0, expirationMonths, 0)
	return &t
}
