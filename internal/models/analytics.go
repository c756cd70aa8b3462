package models

// ROIReport is the hotel-level program economics summary.
//
// EstimatedDiscountCost is an estimate, not a ledger-backed figure: it is the
// sum over members of lifetime_spending × the configured discount percentage
// of their current tier. Downstream consumers should treat it accordingly;
// the field name carries that caveat into every payload.
type ROIReport struct {
	TotalRevenue          float64 `json:"total_revenue"`
	RewardValueRedeemed   float64 `json:"reward_value_redeemed"`
	EstimatedDiscountCost float64 `json:"estimated_discount_cost"`
	TotalCosts            float64 `json:"total_costs"`
	ROI                   float64 `json:"roi"`
	ROIPercentage         float64 `json:"roi_percentage"`
}

type ProgramAnalytics struct {
	ROI              ROIReport      `json:"roi"`
	MemberCount      int            `json:"member_count"`
	TierDistribution map[string]int `json:"tier_distribution"`
	TopMembers       []TopMember    `json:"top_members"`
}

// TopMember is a leaderboard row kept in redis per hotel.
type TopMember struct {
	MemberID    string `json:"member_id" msgpack:"member_id"`
	GuestName   string `json:"guest_name" msgpack:"guest_name"`
	Tier        string `json:"tier" msgpack:"tier"`
	TotalPoints int    `json:"total_points" msgpack:"total_points"`
	Rank        int    `json:"rank" msgpack:"rank"`
}
