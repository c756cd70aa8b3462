package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrMemberLock = errors.New("loyalty member locked")
var ErrProgramLock = errors.New("loyalty program locked")
var ErrMemberNotFound = errors.New("loyalty member not found")
var ErrGuestNotFound = errors.New("guest not found")
var ErrMemberInactive = errors.New("loyalty member inactive")
var ErrProgramNotFound = errors.New("loyalty program not configured")
var ErrProgramInactive = errors.New("loyalty program inactive")
var ErrHotelNotFound = errors.New("hotel not found")
var ErrRewardNotFound = errors.New("reward not found")
var ErrInsufficientPoints = errors.New("insufficient points")
var ErrIneligibleTier = errors.New("tier requirement not met")
var ErrRewardUnavailable = errors.New("reward unavailable")
var ErrBalanceContention = errors.New("balance update contention")
var ErrInvalidAmount = errors.New("amount must be positive")

const (
	CONFIG_SERVER_MODE              = "SERVER_MODE"
	CONFIG_LEADERBOARD_LIMIT        = "LEADERBOARD_LIMIT"
	CONFIG_CRONJOB_TIME_EXPIRATION  = "CRONJOB_TIME_EXPIRATION"
	CONFIG_CRONJOB_TIME_LEADERBOARD = "CRONJOB_TIME_LEADERBOARD"
	CONFIG_TOP_MEMBERS_LIMIT        = "TOP_MEMBERS_LIMIT"
	CONFIG_WEBHOOK_URL              = "EVENT_WEBHOOK_URL"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	LEADERBOARD_DEFAULT_LIMIT = 20
	TOP_MEMBERS_DEFAULT_LIMIT = 10

	DEFAULT_PAGE_LIMIT = 20
	MAX_PAGE_LIMIT     = 100

	BALANCE_RETRY_ATTEMPTS = 3

	REDEEM_RATE_LIMIT_PER_MINUTE = 30
	INTAKE_RATE_LIMIT_PER_MINUTE = 120

	ADJUST_REASON_THRESHOLD_CHANGE = "Tier threshold changed by admin"

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

func LockKeyLoyaltyMember(memberID string) string {
	return fmt.Sprintf("lock:loyalty-member:%s", memberID)
}

func LockKeyLoyaltyProgram(programID string) string {
	return fmt.Sprintf("lock:loyalty-program:%s", programID)
}

func LockKeySweep(hotelID string) string {
	return fmt.Sprintf("lock:loyalty-sweep:%s", hotelID)
}

// db
func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyHotel(hotelID string) string {
	return fmt.Sprintf("hotel:%s", hotelID)
}

func DBKeyHotelProviders(hotelID string) string {
	return fmt.Sprintf("hotel:%s:providers", hotelID)
}

func DBKeyHotelRewards(hotelID string) string {
	return fmt.Sprintf("hotel:%s:rewards", hotelID)
}

func DBKeyMemberSummary(memberID string) string {
	return fmt.Sprintf("loyalty-member:summary:%s", memberID)
}

func DBKeyTierDistribution(hotelID string) string {
	return fmt.Sprintf("hotel:%s:tier-distribution", hotelID)
}

func LimitKeyRedeem(memberID string) string {
	return fmt.Sprintf("limit:redeem:%s", memberID)
}

func LimitKeyIntake(hotelID string) string {
	return fmt.Sprintf("limit:intake:%s", hotelID)
}
