package models

import (
	"github.com/uptrace/bun"
)

// Config is a key/value row for operational settings read at runtime: cron
// schedules, sweep batch size, leaderboard limits.
type Config struct {
	bun.BaseModel `bun:"table:config"`
	Key           string `bun:"key,pk" json:"key"`
	Value         string `bun:"value" json:"value"`
}
