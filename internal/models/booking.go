package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Booking is the completed-booking event consumed from the fulfillment
// workflow. It is persisted for audit before the loyalty engine sees it; the
// booking lifecycle itself lives outside this service.
type Booking struct {
	bun.BaseModel `bun:"table:booking"`
	ID            string    `bun:"id,pk" json:"id"`
	HotelID       string    `bun:"hotel_id" json:"hotel_id"`
	GuestID       string    `bun:"guest_id" json:"guest_id"`
	Category      string    `bun:"category" json:"category"`
	Amount        float64   `bun:"amount" json:"amount"`
	Nights        int       `bun:"nights" json:"nights"`
	Reference     string    `bun:"reference" json:"reference"`
	CompletedAt   time.Time `bun:"completed_at" json:"completed_at"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
