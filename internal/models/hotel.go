package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Hotel struct {
	bun.BaseModel `bun:"table:hotel"`
	ID            string    `bun:"id,pk" json:"id"`
	Name          string    `bun:"name" json:"name"`
	Slug          string    `bun:"slug" json:"slug"`
	City          string    `bun:"city" json:"city"`
	Timezone      string    `bun:"timezone" json:"timezone"`
	IsActive      bool      `bun:"is_active" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}
