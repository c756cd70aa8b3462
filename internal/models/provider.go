package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Service categories a hotel can offer through its portal. Booking and
// points-earning events carry one of these; unknown categories are accepted
// and earn at the base rate.
const (
	CategoryDining         = "dining"
	CategoryTransportation = "transportation"
	CategoryHousekeeping   = "housekeeping"
	CategorySpa            = "spa"
	CategoryLaundry        = "laundry"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryDining, CategoryTransportation, CategoryHousekeeping, CategorySpa, CategoryLaundry:
		return true
	}
	return false
}

type Provider struct {
	bun.BaseModel `bun:"table:provider"`
	ID            string    `bun:"id,pk" json:"id"`
	HotelID       string    `bun:"hotel_id" json:"hotel_id"`
	Name          string    `bun:"name" json:"name"`
	Category      string    `bun:"category" json:"category"`
	ContactEmail  string    `bun:"contact_email" json:"contact_email"`
	Phone         string    `bun:"phone" json:"phone"`
	IsActive      bool      `bun:"is_active" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}
