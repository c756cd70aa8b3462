package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/loyalty"
	"concierge/internal/models"
	"concierge/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceProgram struct {
	container          *do.Injector
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cacheRedis         redis.UniversalClient
	cache              caching.Cache

	serviceHotel    *ServiceHotel
	serviceNotifier *ServiceNotifier
}

func NewServiceProgram(container *do.Injector) (*ServiceProgram, error) {
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

	cacheRedis, err := do.InvokeNamed[redis.UniversalClient](container, "redis-cache")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceHotel, err := do.Invoke[*ServiceHotel](container)
	if err != nil {
		return nil, err
	}

	serviceNotifier, err := do.Invoke[*ServiceNotifier](container)
	if err != nil {
		return nil, err
	}

	return &ServiceProgram{container, rs, postgresDB, readonlyPostgresDB, cacheRedis, cache, serviceHotel, serviceNotifier}, nil
}

// GetProgram reads the hotel's program straight from postgres. Earning,
// redemption and tier evaluation all depend on the current rules, so this
// path is deliberately uncached.
func (service *ServiceProgram) GetProgram(ctx context.Context, hotelID string) (*models.LoyaltyProgram, error) {
	program, err := datastore.FindProgramByHotelID(ctx, service.readonlyPostgresDB, hotelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrProgramNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return program, nil
}

func (service *ServiceProgram) GetActiveProgram(ctx context.Context, hotelID string) (*models.LoyaltyProgram, error) {
	program, err := service.GetProgram(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !program.IsActive {
		return nil, errorx.Wrap(ErrProgramInactive, errorx.Invalid)
	}
	return program, nil
}

func (service *ServiceProgram) CreateProgram(ctx context.Context, hotelID string, draft *models.LoyaltyProgram) (*models.LoyaltyProgram, error) {
	if _, err := service.serviceHotel.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	existing, err := datastore.FindProgramByHotelID(ctx, service.readonlyPostgresDB, hotelID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if existing != nil {
		return nil, errorx.Wrap(errors.New("program already configured"), errorx.Invalid)
	}

	draft.HotelID = hotelID
	if err := loyalty.ValidateProgram(draft); err != nil {
		return nil, errorx.Wrap(err, errorx.Validation)
	}

	now := time.Now()
	draft.ID = uuid.NewString()
	draft.IsActive = true
	draft.TotalPointsIssued = 0
	draft.TotalPointsRedeemed = 0
	draft.CreatedAt = now
	draft.UpdatedAt = now

	program, err := datastore.InsertProgram(ctx, service.postgresDB, draft)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return program, nil
}

// UpdateProgram saves new rules and immediately reclassifies every member of
// the hotel against the new tier ladder. It returns the updated program and
// how many members changed tier.
func (service *ServiceProgram) UpdateProgram(ctx context.Context, hotelID string, draft *models.LoyaltyProgram) (*models.LoyaltyProgram, int, error) {
	program, err := service.GetProgram(ctx, hotelID)
	if err != nil {
		return nil, 0, err
	}

	mutex := service.rs.NewMutex(LockKeyLoyaltyProgram(program.ID))
	if err := mutex.Lock(); err != nil {
		return nil, 0, errorx.Wrap(ErrProgramLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	draft.ID = program.ID
	draft.HotelID = hotelID
	if err := loyalty.ValidateProgram(draft); err != nil {
		return nil, 0, errorx.Wrap(err, errorx.Validation)
	}

	program.Name = draft.Name
	program.Tiers = draft.Tiers
	program.PointsRules = draft.PointsRules
	program.RedemptionRules = draft.RedemptionRules
	program.ExpirationMonths = draft.ExpirationMonths
	program.IsActive = draft.IsActive

	program, err = datastore.UpdateProgramRules(ctx, service.postgresDB, program)
	if err != nil {
		return nil, 0, errorx.Wrap(err, errorx.Service)
	}

	reclassified, err := service.reclassifyMembers(ctx, program)
	if err != nil {
		return nil, 0, err
	}

	// drop hotel-scoped caches so rewards/tier-distribution reads pick up
	// the new rules
	if err := caching.DeleteKeys(ctx, service.cacheRedis, fmt.Sprintf("hotel:%s:*", hotelID)); err != nil {
		log.Println("program: cache sweep failed:", "hotel:", hotelID, "err:", err)
	}

	return program, reclassified, nil
}

// reclassifyMembers recomputes every member's tier from their current
// TotalPoints. Thresholds moving up can demote members.
func (service *ServiceProgram) reclassifyMembers(ctx context.Context, program *models.LoyaltyProgram) (int, error) {
	members, err := datastore.ListAllMembersByHotel(ctx, service.postgresDB, program.HotelID)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	changed := 0
	now := time.Now()
	for i := range members {
		member := &members[i]
		tier := loyalty.ResolveTier(member.TotalPoints, program.Tiers)
		if tier.Name == member.CurrentTier {
			continue
		}

		if err := datastore.UpdateMemberTier(ctx, service.postgresDB, member.ID, tier.Name); err != nil {
			return changed, errorx.Wrap(err, errorx.Service)
		}
		changed++
		_ = service.cache.Delete(ctx, DBKeyMemberSummary(member.ID))

		service.serviceNotifier.Publish(ctx, models.EventTierChange, &models.TierChangeEvent{
			MemberID: member.ID,
			HotelID:  member.HotelID,
			GuestID:  member.GuestID,
			OldTier:  member.CurrentTier,
			NewTier:  tier.Name,
			Benefits: tier.Benefits,
			Reason:   ADJUST_REASON_THRESHOLD_CHANGE,
			At:       now,
		})
	}

	return changed, nil
}
