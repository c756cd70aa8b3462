package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LoyaltyMember is one guest's membership at one hotel.
//
// Balance semantics:
//   - TotalPoints is the tier basis: lifetime earned minus expired.
//   - AvailablePoints is the spendable balance: earned − redeemed − expired.
//
// After every mutation 0 ≤ AvailablePoints ≤ TotalPoints must hold; the
// datastore applies decrements with guarded conditional updates so the
// invariant survives concurrent writers.
type LoyaltyMember struct {
	bun.BaseModel          `bun:"table:loyalty_member"`
	ID                     string    `bun:"id,pk" json:"id"`
	HotelID                string    `bun:"hotel_id" json:"hotel_id"`
	GuestID                string    `bun:"guest_id" json:"guest_id"`
	TotalPoints            int       `bun:"total_points" json:"total_points"`
	AvailablePoints        int       `bun:"available_points" json:"available_points"`
	LifetimePointsEarned   int       `bun:"lifetime_points_earned" json:"lifetime_points_earned"`
	LifetimePointsRedeemed int       `bun:"lifetime_points_redeemed" json:"lifetime_points_redeemed"`
	CurrentTier            string    `bun:"current_tier" json:"current_tier"`
	LifetimeSpending       float64   `bun:"lifetime_spending" json:"lifetime_spending"`
	TotalNightsStayed      int       `bun:"total_nights_stayed" json:"total_nights_stayed"`
	JoinDate               time.Time `bun:"join_date" json:"join_date"`
	LastActivity           time.Time `bun:"last_activity" json:"last_activity"`
	IsActive               bool      `bun:"is_active" json:"is_active"`
	CreatedAt              time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt              time.Time `bun:"updated_at" json:"updated_at"`

	Progress *TierProgress     `bun:"-" json:"tier_progress,omitempty"`
	Guest    *GuestDisplayInfo `bun:"-" json:"guest,omitempty"`
}

type TierProgress struct {
	PointsToNextTier int     `json:"points_to_next_tier"`
	NextTierName     *string `json:"next_tier_name"`
}
