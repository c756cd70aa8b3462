package models

import "time"

// Events pushed to the notification queue for external collaborators (email
// sender, report renderer). Delivery is fire-and-forget: the operation that
// produced the event has already committed.

const (
	EventTierChange     = "loyalty.tier_change"
	EventRewardRedeemed = "loyalty.reward_redeemed"
	EventPointsAdjusted = "loyalty.points_adjusted"
)

type TierChangeEvent struct {
	MemberID string    `json:"member_id" msgpack:"member_id"`
	HotelID  string    `json:"hotel_id" msgpack:"hotel_id"`
	GuestID  string    `json:"guest_id" msgpack:"guest_id"`
	OldTier  string    `json:"old_tier" msgpack:"old_tier"`
	NewTier  string    `json:"new_tier" msgpack:"new_tier"`
	Benefits []string  `json:"benefits" msgpack:"benefits"`
	Reason   string    `json:"reason" msgpack:"reason"`
	At       time.Time `json:"at" msgpack:"at"`
}

type RewardRedeemedEvent struct {
	MemberID      string    `json:"member_id" msgpack:"member_id"`
	HotelID       string    `json:"hotel_id" msgpack:"hotel_id"`
	GuestID       string    `json:"guest_id" msgpack:"guest_id"`
	RewardID      string    `json:"reward_id" msgpack:"reward_id"`
	RewardName    string    `json:"reward_name" msgpack:"reward_name"`
	PointsCost    int       `json:"points_cost" msgpack:"points_cost"`
	ValueRedeemed float64   `json:"value_redeemed" msgpack:"value_redeemed"`
	At            time.Time `json:"at" msgpack:"at"`
}

// PointsAdjustedEvent carries the full adjustment payload so the external
// report renderer never has to call back into this service.
type PointsAdjustedEvent struct {
	Member     *LoyaltyMember   `json:"member" msgpack:"member"`
	Hotel      *Hotel           `json:"hotel" msgpack:"hotel"`
	Guest      GuestDisplayInfo `json:"guest" msgpack:"guest"`
	Delta      int              `json:"delta" msgpack:"delta"`
	Reason     string           `json:"reason" msgpack:"reason"`
	Note       string           `json:"note" msgpack:"note"`
	AdjustedBy string           `json:"adjusted_by" msgpack:"adjusted_by"`
	At         time.Time        `json:"at" msgpack:"at"`
}

// SweepReport summarizes one expiration sweep. Per-member failures are
// collected here, never thrown: one bad member must not abort the batch.
type SweepReport struct {
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	MembersScanned  int       `json:"members_scanned"`
	MembersExpired  int       `json:"members_expired"`
	PointsExpired   int       `json:"points_expired"`
	FailedMemberIDs []string  `json:"failed_member_ids"`
}
