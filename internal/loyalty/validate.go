package loyalty

import (
	"errors"
	"fmt"

	"concierge/internal/models"
)

// ValidateTiers rejects ladders the resolver cannot serve: the list must be
// non-empty, start at 0 points and strictly ascend, with unique names.
func ValidateTiers(tiers []models.TierConfig) error {
	if len(tiers) == 0 {
		return errors.New("at least one tier is required")
	}
	if tiers[0].MinPoints != 0 {
		return errors.New("first tier must start at 0 points")
	}

	seen := map[string]bool{}
	for i, tier := range tiers {
		if tier.Name == "" {
			return fmt.Errorf("tier %d has no name", i)
		}
		if seen[tier.Name] {
			return fmt.Errorf("duplicate tier name %q", tier.Name)
		}
		seen[tier.Name] = true

		if tier.MinPoints < 0 {
			return fmt.Errorf("tier %q has negative min_points", tier.Name)
		}
		if i > 0 && tier.MinPoints <= tiers[i-1].MinPoints {
			return fmt.Errorf("tier %q does not ascend from %q", tier.Name, tiers[i-1].Name)
		}
		if tier.DiscountPercentage < 0 || tier.DiscountPercentage > 100 {
			return fmt.Errorf("tier %q discount percentage out of range", tier.Name)
		}
	}

	return nil
}

func ValidatePointsRules(rules models.PointsRules) error {
	if rules.PointsPerDollar <= 0 {
		return errors.New("points_per_dollar must be positive")
	}
	for category, m := range rules.ServiceMultipliers {
		if m <= 0 {
			return fmt.Errorf("multiplier for %q must be positive", category)
		}
	}
	return nil
}

func ValidateRedemptionRules(rules models.RedemptionRules) error {
	if rules.PointsToMoneyRatio <= 0 {
		return errors.New("points_to_money_ratio must be positive")
	}
	if rules.MinimumRedemption < 0 {
		return errors.New("minimum_redemption cannot be negative")
	}
	return nil
}

// ValidateProgram checks a program draft before it is persisted.
func ValidateProgram(program *models.LoyaltyProgram) error {
	if program.HotelID == "" {
		return errors.New("hotel id is required")
	}
	if program.ExpirationMonths < 0 {
		return errors.New("expiration_months cannot be negative")
	}
	if err := ValidateTiers(program.Tiers); err != nil {
		return err
	}
	if err := ValidatePointsRules(program.PointsRules); err != nil {
		return err
	}
	return ValidateRedemptionRules(program.RedemptionRules)
}
