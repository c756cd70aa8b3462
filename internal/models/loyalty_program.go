package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LoyaltyProgram holds one hotel's tier ladder and earning/redemption rules.
// There is at most one row per hotel; it is created on the first
// configuration save and soft-deactivated, never deleted.
//
// TotalPointsIssued / TotalPointsRedeemed are running counters maintained
// exclusively through atomic SQL increments inside the datastore
// transactions; no code path reads, modifies and writes them back.
type LoyaltyProgram struct {
	bun.BaseModel       `bun:"table:loyalty_program"`
	ID                  string          `bun:"id,pk" json:"id"`
	HotelID             string          `bun:"hotel_id" json:"hotel_id"`
	Name                string          `bun:"name" json:"name"`
	Tiers               []TierConfig    `bun:"tiers,type:jsonb" json:"tiers"`
	PointsRules         PointsRules     `bun:"points_rules,type:jsonb" json:"points_rules"`
	RedemptionRules     RedemptionRules `bun:"redemption_rules,type:jsonb" json:"redemption_rules"`
	ExpirationMonths    int             `bun:"expiration_months" json:"expiration_months"` // 0 = points never expire
	IsActive            bool            `bun:"is_active" json:"is_active"`
	TotalPointsIssued   int64           `bun:"total_points_issued" json:"total_points_issued"`
	TotalPointsRedeemed int64           `bun:"total_points_redeemed" json:"total_points_redeemed"`
	CreatedAt           time.Time       `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time       `bun:"updated_at" json:"updated_at"`
}

// TierConfig entries are stored sorted ascending by MinPoints with the first
// tier at 0; datastore writes go through loyalty.ValidateTiers first.
type TierConfig struct {
	Name               string   `json:"name"`
	MinPoints          int      `json:"min_points"`
	Benefits           []string `json:"benefits"`
	DiscountPercentage float64  `json:"discount_percentage"`
}

type PointsRules struct {
	PointsPerDollar    float64            `json:"points_per_dollar"`
	ServiceMultipliers map[string]float64 `json:"service_multipliers"`
}

type RedemptionRules struct {
	PointsToMoneyRatio float64 `json:"points_to_money_ratio"`
	MinimumRedemption  int     `json:"minimum_redemption"`
}
