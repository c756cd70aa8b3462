package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	EntryEarned   = "EARNED"
	EntryAdjusted = "ADJUSTED"
	EntryRedeemed = "REDEEMED"
	EntryExpired  = "EXPIRED"
)

// PointsEntry is one row of the append-only points ledger. EARNED rows are
// lots: Remaining tracks how much of the lot is still unspent, consumed
// oldest-first by redemptions and deductions so expiration only retires
// points that were never spent. Rows of other types never change after
// insert.
type PointsEntry struct {
	bun.BaseModel `bun:"table:points_entry"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	MemberID      string     `bun:"member_id" json:"member_id"`
	Type          string     `bun:"type" json:"type"`
	Amount        int        `bun:"amount" json:"amount"`
	Remaining     int        `bun:"remaining" json:"remaining"`
	Category      string     `bun:"category" json:"category,omitempty"`
	BookingRef    string     `bun:"booking_ref" json:"booking_ref,omitempty"`
	Reason        string     `bun:"reason" json:"reason,omitempty"`
	Note          string     `bun:"note" json:"note,omitempty"`
	ExpiresAt     *time.Time `bun:"expires_at" json:"expires_at"`
	Expired       bool       `bun:"expired" json:"expired"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}
