package models

import (
	"time"

	"github.com/uptrace/bun"
)

type RedemptionEntry struct {
	bun.BaseModel `bun:"table:redemption_entry"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	MemberID      string    `bun:"member_id" json:"member_id"`
	RewardID      string    `bun:"reward_id" json:"reward_id"`
	RewardName    string    `bun:"reward_name" json:"reward_name"`
	PointsCost    int       `bun:"points_cost" json:"points_cost"`
	ValueRedeemed float64   `bun:"value_redeemed" json:"value_redeemed"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
