package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LoyaltyReward is a redemption catalog item. UsageLimit nil means
// unlimited. Deleting a reward is a soft IsActive flip so redemption history
// keeps resolving.
type LoyaltyReward struct {
	bun.BaseModel      `bun:"table:loyalty_reward"`
	ID                 string    `bun:"id,pk" json:"id"`
	HotelID            string    `bun:"hotel_id" json:"hotel_id"`
	Name               string    `bun:"name" json:"name"`
	Description        string    `bun:"description" json:"description"`
	PointsCost         int       `bun:"points_cost" json:"points_cost"`
	Value              float64   `bun:"value" json:"value"`
	RequiredTier       string    `bun:"required_tier" json:"required_tier"`
	ValidityDays       int       `bun:"validity_days" json:"validity_days"`
	UsageLimit         *int      `bun:"usage_limit" json:"usage_limit"`
	TimesRedeemed      int       `bun:"times_redeemed" json:"times_redeemed"`
	TotalValueRedeemed float64   `bun:"total_value_redeemed" json:"total_value_redeemed"`
	IsActive           bool      `bun:"is_active" json:"is_active"`
	CreatedAt          time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time `bun:"updated_at" json:"updated_at"`
}
