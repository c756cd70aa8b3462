package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/datastore/redis_store"
	"concierge/internal/interfaces"
	"concierge/internal/loyalty"
	"concierge/internal/models"
	"concierge/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceLoyalty struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
	limiter            interfaces.Limiter

	serviceProgram  *ServiceProgram
	serviceNotifier *ServiceNotifier
}

func NewServiceLoyalty(container *do.Injector) (*ServiceLoyalty, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceProgram, err := do.Invoke[*ServiceProgram](container)
	if err != nil {
		return nil, err
	}

	serviceNotifier, err := do.Invoke[*ServiceNotifier](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLoyalty{container, db, rs, postgresDB, readonlyPostgresDB, cache, readonlyCache, limiter, serviceProgram, serviceNotifier}, nil
}

func (service *ServiceLoyalty) GetMember(ctx context.Context, memberID string) (*models.LoyaltyMember, error) {
	member, err := datastore.FindMemberByID(ctx, service.readonlyPostgresDB, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrMemberNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return member, nil
}

// FindOrEnrollMember looks up the guest's membership at the hotel, creating
// one at the bottom tier on first contact.
func (service *ServiceLoyalty) FindOrEnrollMember(ctx context.Context, hotelID string, guestID string) (*models.LoyaltyMember, error) {
	member, err := datastore.FindMemberByHotelAndGuest(ctx, service.readonlyPostgresDB, hotelID, guestID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if _, err := datastore.FindUserByID(ctx, service.readonlyPostgresDB, guestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(ErrGuestNotFound, errorx.NotExist)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	program, err := service.serviceProgram.GetActiveProgram(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	member = &models.LoyaltyMember{
		ID:           uuid.NewString(),
		HotelID:      hotelID,
		GuestID:      guestID,
		CurrentTier:  program.Tiers[0].Name,
		JoinDate:     now,
		LastActivity: now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	member, err = datastore.InsertMember(ctx, service.postgresDB, member)
	if err != nil {
		// concurrent enrollment, the unique index decides
		existing, findErr := datastore.FindMemberByHotelAndGuest(ctx, service.readonlyPostgresDB, hotelID, guestID)
		if findErr == nil {
			return existing, nil
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return member, nil
}

// SetMemberActive pauses or resumes a membership. An inactive member keeps
// the balance but earning and redemption are rejected.
func (service *ServiceLoyalty) SetMemberActive(ctx context.Context, memberID string, active bool) (*models.LoyaltyMember, error) {
	member, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.IsActive == active {
		return member, nil
	}

	if err := datastore.SetMemberActive(ctx, service.postgresDB, member.ID, active); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyMemberSummary(member.ID))
	member.IsActive = active
	return member, nil
}

// FindMemberByEmail resolves a guest by email and returns their membership
// at the hotel. Admin member search.
func (service *ServiceLoyalty) FindMemberByEmail(ctx context.Context, hotelID string, email string) (*models.LoyaltyMember, error) {
	user, err := datastore.FindUserByEmail(ctx, service.readonlyPostgresDB, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrGuestNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	member, err := datastore.FindMemberByHotelAndGuest(ctx, service.readonlyPostgresDB, hotelID, user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrMemberNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return member, nil
}

// MemberSummary returns the member with tier progress attached.
func (service *ServiceLoyalty) MemberSummary(ctx context.Context, memberID string) (*models.LoyaltyMember, error) {
	member, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	program, err := service.serviceProgram.GetProgram(ctx, member.HotelID)
	if err != nil {
		return nil, err
	}

	progress := loyalty.Progress(member.TotalPoints, program.Tiers)
	member.Progress = &progress
	return member, nil
}

func (service *ServiceLoyalty) ListMembers(ctx context.Context, hotelID string, tier string, limit int, offset int) ([]models.LoyaltyMember, int, error) {
	if limit <= 0 || limit > MAX_PAGE_LIMIT {
		limit = DEFAULT_PAGE_LIMIT
	}

	members, total, err := datastore.ListMembersByHotel(ctx, service.readonlyPostgresDB, hotelID, tier, limit, offset)
	if err != nil {
		return nil, 0, errorx.Wrap(err, errorx.Service)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.GuestID)
	}
	guests, err := datastore.GuestInfoByIDs(ctx, service.readonlyPostgresDB, ids)
	if err == nil {
		for i := range members {
			members[i].Guest = guests[members[i].GuestID]
		}
	}

	return members, total, nil
}

func (service *ServiceLoyalty) History(ctx context.Context, memberID string, entryType string, limit int, offset int) ([]models.PointsEntry, int, error) {
	if entryType != "" {
		entryType = strings.ToUpper(entryType)
	}
	if limit <= 0 || limit > MAX_PAGE_LIMIT {
		limit = DEFAULT_PAGE_LIMIT
	}

	entries, total, err := datastore.ListEntriesByMember(ctx, service.readonlyPostgresDB, memberID, entryType, limit, offset)
	if err != nil {
		return nil, 0, errorx.Wrap(err, errorx.Service)
	}
	return entries, total, nil
}

// EarnPoints converts a completed booking into points under the hotel's
// current rules and moves the member's tier up when the new total crosses a
// threshold.
func (service *ServiceLoyalty) EarnPoints(ctx context.Context, hotelID string, guestID string, amount float64, category string, nights int, bookingRef string) (*models.LoyaltyMember, *models.PointsEntry, error) {
	if amount <= 0 {
		return nil, nil, errorx.Wrap(ErrInvalidAmount, errorx.Validation)
	}

	program, err := service.serviceProgram.GetActiveProgram(ctx, hotelID)
	if err != nil {
		return nil, nil, err
	}

	member, err := service.FindOrEnrollMember(ctx, hotelID, guestID)
	if err != nil {
		return nil, nil, err
	}
	if !member.IsActive {
		return nil, nil, errorx.Wrap(ErrMemberInactive, errorx.Invalid)
	}

	mutex := service.rs.NewMutex(LockKeyLoyaltyMember(member.ID))
	if err := mutex.Lock(); err != nil {
		return nil, nil, errorx.Wrap(ErrMemberLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	member, err = service.GetMember(ctx, member.ID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	points := loyalty.EarnAmount(amount, program.PointsRules, category)

	if points == 0 {
		// sub-point spend, credit the stay without a ledger row
		if err := datastore.RecordStay(ctx, service.postgresDB, member.ID, amount, nights, now); err != nil {
			return nil, nil, errorx.Wrap(err, errorx.Service)
		}

		_ = service.cache.Delete(ctx, DBKeyMemberSummary(member.ID))

		member, err = service.GetMember(ctx, member.ID)
		if err != nil {
			return nil, nil, err
		}
		progress := loyalty.Progress(member.TotalPoints, program.Tiers)
		member.Progress = &progress
		return member, nil, nil
	}

	newTier := loyalty.ResolveTier(member.TotalPoints+points, program.Tiers)

	entry := &models.PointsEntry{
		MemberID:   member.ID,
		Type:       models.EntryEarned,
		Amount:     points,
		Remaining:  points,
		Category:   category,
		BookingRef: bookingRef,
		ExpiresAt:  loyalty.LotExpiry(now, program.ExpirationMonths),
		CreatedAt:  now,
	}

	err = datastore.ApplyEarn(ctx, service.postgresDB, program.ID, member.ID, entry, amount, nights, newTier.Name)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	// keep the hotel leaderboard fresh between cron rebuilds
	//nolint:errcheck
	redis_store.SetLeaderboardScore(ctx, service.redisDB, member.HotelID, member.ID, member.TotalPoints+points)

	if newTier.Name != member.CurrentTier {
		service.serviceNotifier.Publish(ctx, models.EventTierChange, &models.TierChangeEvent{
			MemberID: member.ID,
			HotelID:  member.HotelID,
			GuestID:  member.GuestID,
			OldTier:  member.CurrentTier,
			NewTier:  newTier.Name,
			Benefits: newTier.Benefits,
			Reason:   "Earned points",
			At:       now,
		})
	}

	_ = service.cache.Delete(ctx, DBKeyMemberSummary(member.ID))

	member, err = service.GetMember(ctx, member.ID)
	if err != nil {
		return nil, nil, err
	}
	progress := loyalty.Progress(member.TotalPoints, program.Tiers)
	member.Progress = &progress

	return member, entry, nil
}

// AdjustPoints applies a signed manual correction. Credits become lots that
// expire like earned points; debits consume open lots oldest-first and can
// never push the balance negative.
func (service *ServiceLoyalty) AdjustPoints(ctx context.Context, memberID string, delta int, reason string, note string, adjustedBy string) (*models.LoyaltyMember, error) {
	if delta == 0 {
		return nil, errorx.Wrap(errors.New("delta must be non-zero"), errorx.Validation)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, errorx.Wrap(errors.New("reason is required"), errorx.Validation)
	}

	member, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	program, err := service.serviceProgram.GetProgram(ctx, member.HotelID)
	if err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyLoyaltyMember(member.ID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrMemberLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	var oldTier, newTierName string
	var newTier models.TierConfig

	attempt := func() error {
		member, err = service.GetMember(ctx, memberID)
		if err != nil {
			return err
		}
		oldTier = member.CurrentTier

		now := time.Now()
		entry := &models.PointsEntry{
			MemberID:  member.ID,
			Type:      models.EntryAdjusted,
			Amount:    delta,
			Reason:    reason,
			Note:      note,
			CreatedAt: now,
		}

		if delta > 0 {
			entry.Remaining = delta
			entry.ExpiresAt = loyalty.LotExpiry(now, program.ExpirationMonths)
			newTier = loyalty.ResolveTier(member.TotalPoints+delta, program.Tiers)
			newTierName = newTier.Name
			return datastore.ApplyAdjustCredit(ctx, service.postgresDB, program.ID, member.ID, entry, newTier.Name)
		}

		debit := -delta
		if member.AvailablePoints < debit {
			return shortfallError(debit - member.AvailablePoints)
		}

		lots, err := datastore.OpenLots(ctx, service.postgresDB, member.ID)
		if err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
		consumptions, err := loyalty.ConsumeLots(lots, debit)
		if err != nil {
			return lotShortfallError(err)
		}

		newTier = loyalty.ResolveTier(member.TotalPoints-debit, program.Tiers)
		newTierName = newTier.Name
		return datastore.ApplyAdjustDebit(ctx, service.postgresDB, member.ID, debit, entry, consumptions, newTier.Name)
	}

	if err := service.withBalanceRetry(attempt); err != nil {
		return nil, err
	}

	_ = service.cache.Delete(ctx, DBKeyMemberSummary(member.ID))

	updated, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	service.publishAdjustment(ctx, updated, delta, reason, note, adjustedBy)
	if newTierName != oldTier {
		service.serviceNotifier.Publish(ctx, models.EventTierChange, &models.TierChangeEvent{
			MemberID: updated.ID,
			HotelID:  updated.HotelID,
			GuestID:  updated.GuestID,
			OldTier:  oldTier,
			NewTier:  newTierName,
			Benefits: newTier.Benefits,
			Reason:   reason,
			At:       time.Now(),
		})
	}

	progress := loyalty.Progress(updated.TotalPoints, program.Tiers)
	updated.Progress = &progress
	return updated, nil
}

func (service *ServiceLoyalty) publishAdjustment(ctx context.Context, member *models.LoyaltyMember, delta int, reason string, note string, adjustedBy string) {
	hotel, err := datastore.FindHotelByID(ctx, service.readonlyPostgresDB, member.HotelID)
	if err != nil {
		hotel = &models.Hotel{ID: member.HotelID}
	}

	guest := models.GuestDisplayInfo{}
	guests, err := datastore.GuestInfoByIDs(ctx, service.readonlyPostgresDB, []string{member.GuestID})
	if err == nil && guests[member.GuestID] != nil {
		guest = *guests[member.GuestID]
	}

	service.serviceNotifier.Publish(ctx, models.EventPointsAdjusted, &models.PointsAdjustedEvent{
		Member:     member,
		Hotel:      hotel,
		Guest:      guest,
		Delta:      delta,
		Reason:     reason,
		Note:       note,
		AdjustedBy: adjustedBy,
		At:         time.Now(),
	})
}

// RedeemReward spends points on a catalog reward. Eligibility is checked
// before and enforced again inside the transaction, so two concurrent
// redemptions cannot both spend the same lot or take a reward's last slot.
func (service *ServiceLoyalty) RedeemReward(ctx context.Context, memberID string, rewardID string) (*models.RedemptionEntry, *models.LoyaltyMember, error) {
	if err := service.limiter.Allow(ctx, LimitKeyRedeem(memberID), redis_rate.PerMinute(REDEEM_RATE_LIMIT_PER_MINUTE)); err != nil {
		return nil, nil, err
	}

	member, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	if !member.IsActive {
		return nil, nil, errorx.Wrap(ErrMemberInactive, errorx.Invalid)
	}

	program, err := service.serviceProgram.GetActiveProgram(ctx, member.HotelID)
	if err != nil {
		return nil, nil, err
	}

	reward, err := datastore.FindRewardByID(ctx, service.readonlyPostgresDB, rewardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, errorx.Wrap(ErrRewardNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}
	if reward.HotelID != member.HotelID {
		return nil, nil, errorx.Wrap(ErrRewardNotFound, errorx.NotExist)
	}
	if reward.PointsCost < program.RedemptionRules.MinimumRedemption {
		return nil, nil, errorx.Wrap(ErrRewardUnavailable, errorx.Invalid)
	}

	mutex := service.rs.NewMutex(LockKeyLoyaltyMember(member.ID))
	if err := mutex.Lock(); err != nil {
		return nil, nil, errorx.Wrap(ErrMemberLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	var redemption *models.RedemptionEntry

	attempt := func() error {
		member, err = service.GetMember(ctx, memberID)
		if err != nil {
			return err
		}

		verdict := loyalty.CanRedeem(member, reward, program.Tiers)
		if !verdict.Available {
			switch verdict.Reason {
			case loyalty.ReasonTierRequirement:
				return errorx.Wrap(ErrIneligibleTier, errorx.Invalid)
			case loyalty.ReasonInsufficientPoints:
				return shortfallError(verdict.PointsNeeded)
			default:
				return errorx.Wrap(ErrRewardUnavailable, errorx.Invalid)
			}
		}

		lots, err := datastore.OpenLots(ctx, service.postgresDB, member.ID)
		if err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
		consumptions, err := loyalty.ConsumeLots(lots, reward.PointsCost)
		if err != nil {
			return lotShortfallError(err)
		}

		now := time.Now()
		entry := &models.PointsEntry{
			MemberID:  member.ID,
			Type:      models.EntryRedeemed,
			Amount:    -reward.PointsCost,
			Reason:    reward.Name,
			CreatedAt: now,
		}
		redemption = &models.RedemptionEntry{
			MemberID:      member.ID,
			RewardID:      reward.ID,
			RewardName:    reward.Name,
			PointsCost:    reward.PointsCost,
			ValueRedeemed: reward.Value,
			CreatedAt:     now,
		}

		err = datastore.ApplyRedemption(ctx, service.postgresDB, program.ID, member.ID, reward, entry, redemption, consumptions)
		if errors.Is(err, datastore.ErrRewardExhausted) {
			return errorx.Wrap(ErrRewardUnavailable, errorx.Invalid)
		}
		return err
	}

	if err := service.withBalanceRetry(attempt); err != nil {
		return nil, nil, err
	}

	_ = service.cache.Delete(ctx, DBKeyMemberSummary(member.ID))
	_ = service.cache.Delete(ctx, DBKeyHotelRewards(member.HotelID))

	updated, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}

	service.serviceNotifier.Publish(ctx, models.EventRewardRedeemed, &models.RewardRedeemedEvent{
		MemberID:      updated.ID,
		HotelID:       updated.HotelID,
		GuestID:       updated.GuestID,
		RewardID:      reward.ID,
		RewardName:    reward.Name,
		PointsCost:    reward.PointsCost,
		ValueRedeemed: reward.Value,
		At:            redemption.CreatedAt,
	})

	progress := loyalty.Progress(updated.TotalPoints, program.Tiers)
	updated.Progress = &progress
	return redemption, updated, nil
}

// ExpireMemberPoints retires the member's due lots and returns how many
// points were expired. The member's tier is left alone; the next earn or
// adjustment recomputes it from the reduced total.
func (service *ServiceLoyalty) ExpireMemberPoints(ctx context.Context, memberID string, now time.Time) (int, error) {
	mutex := service.rs.NewMutex(LockKeyLoyaltyMember(memberID))
	if err := mutex.Lock(); err != nil {
		return 0, errorx.Wrap(ErrMemberLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	var total int

	attempt := func() error {
		lots, err := datastore.OpenLots(ctx, service.postgresDB, memberID)
		if err != nil {
			return errorx.Wrap(err, errorx.Service)
		}

		expirable := loyalty.ExpirableLots(lots, now)
		total = loyalty.ExpiredRemainder(expirable)
		if total == 0 {
			return nil
		}

		entry := &models.PointsEntry{
			MemberID:  memberID,
			Type:      models.EntryExpired,
			Amount:    -total,
			Reason:    "Points expired",
			CreatedAt: now,
		}

		return datastore.ApplyExpiration(ctx, service.postgresDB, memberID, expirable, total, entry)
	}

	if err := service.withBalanceRetry(attempt); err != nil {
		return 0, err
	}

	if total > 0 {
		_ = service.cache.Delete(ctx, DBKeyMemberSummary(memberID))
	}
	return total, nil
}

// EligibleRewards pairs every active reward of the member's hotel with the
// member's eligibility verdict.
func (service *ServiceLoyalty) EligibleRewards(ctx context.Context, memberID string) ([]RewardEligibility, error) {
	member, err := service.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	program, err := service.serviceProgram.GetProgram(ctx, member.HotelID)
	if err != nil {
		return nil, err
	}

	rewards, err := datastore.ListRewardsByHotel(ctx, service.readonlyPostgresDB, member.HotelID, true)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	results := make([]RewardEligibility, 0, len(rewards))
	for i := range rewards {
		verdict := loyalty.CanRedeem(member, &rewards[i], program.Tiers)
		results = append(results, RewardEligibility{
			Reward:       rewards[i],
			Available:    verdict.Available,
			Reason:       verdict.Reason,
			PointsNeeded: verdict.PointsNeeded,
		})
	}

	return results, nil
}

type RewardEligibility struct {
	Reward       models.LoyaltyReward `json:"reward"`
	Available    bool                 `json:"available"`
	Reason       string               `json:"reason,omitempty"`
	PointsNeeded int                  `json:"points_needed,omitempty"`
}

// Redemptions lists the member's redemption history, newest first.
func (service *ServiceLoyalty) Redemptions(ctx context.Context, memberID string, limit int, offset int) ([]models.RedemptionEntry, int, error) {
	if limit <= 0 || limit > MAX_PAGE_LIMIT {
		limit = DEFAULT_PAGE_LIMIT
	}

	entries, total, err := datastore.ListRedemptionsByMember(ctx, service.readonlyPostgresDB, memberID, limit, offset)
	if err != nil {
		return nil, 0, errorx.Wrap(err, errorx.Service)
	}
	return entries, total, nil
}

func (service *ServiceLoyalty) LeaderboardRank(ctx context.Context, member *models.LoyaltyMember) (int64, error) {
	return redis_store.GetLeaderboardRank(ctx, service.redisDB, member.HotelID, member.ID)
}

// withBalanceRetry reruns fn while the guarded updates report contention.
// shortfallError tells the caller exactly how many more points the
// redemption or deduction needed.
func shortfallError(needed int) error {
	return errorx.Wrap(fmt.Errorf("%w: %d more points needed", ErrInsufficientPoints, needed), errorx.Invalid)
}

// lotShortfallError maps a lot-consumption failure, keeping the shortfall
// the engine computed.
func lotShortfallError(err error) error {
	var short *loyalty.InsufficientPointsError
	if errors.As(err, &short) {
		return shortfallError(short.Needed)
	}
	return errorx.Wrap(ErrInsufficientPoints, errorx.Invalid)
}

func (service *ServiceLoyalty) withBalanceRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < BALANCE_RETRY_ATTEMPTS; attempt++ {
		err = fn()
		if !errors.Is(err, datastore.ErrStaleBalance) {
			return err
		}
	}
	return errorx.Wrap(ErrBalanceContention, errorx.Service)
}
