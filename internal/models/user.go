package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleGuest      = "guest"
	RoleHotelAdmin = "hotel_admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	bun.BaseModel `bun:"table:app_user"`
	ID            string    `bun:"id,pk" json:"id"`
	FirstName     string    `bun:"first_name" json:"first_name"`
	LastName      string    `bun:"last_name" json:"last_name"`
	Email         string    `bun:"email" json:"email"`
	Role          string    `bun:"role" json:"role"`
	HotelID       *string   `bun:"hotel_id" json:"hotel_id"` // set for hotel admins
	IsActive      bool      `bun:"is_active" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

func (u *User) Display() GuestDisplayInfo {
	return GuestDisplayInfo{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// GuestDisplayInfo is the only shape guest identity crosses package
// boundaries in: no duck-typed population, one formatting rule.
type GuestDisplayInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// DisplayName joins the non-empty name parts and falls back to the email
// local part, then to "Guest".
func (g GuestDisplayInfo) DisplayName() string {
	parts := []string{}
	if g.FirstName != "" {
		parts = append(parts, g.FirstName)
	}
	if g.LastName != "" {
		parts = append(parts, g.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	if g.Email != "" {
		local, _, found := strings.Cut(g.Email, "@")
		if found && local != "" {
			return local
		}
		return g.Email
	}

	return "Guest"
}

// UserFromAuth only use in middleware
type UserFromAuth struct {
	ID      string  `json:"id"`
	Role    string  `json:"role"`
	HotelID *string `json:"hotel_id"`
	Email   string  `json:"email"`
}
