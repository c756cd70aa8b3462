package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/loyalty"
	"concierge/internal/models"
	"concierge/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceReward struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceProgram *ServiceProgram
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
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

	serviceProgram, err := do.Invoke[*ServiceProgram](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, postgresDB, readonlyPostgresDB, cache, readonlyCache, serviceProgram}, nil
}

func (service *ServiceReward) GetReward(ctx context.Context, rewardID string) (*models.LoyaltyReward, error) {
	reward, err := datastore.FindRewardByID(ctx, service.readonlyPostgresDB, rewardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrRewardNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return reward, nil
}

func (service *ServiceReward) ListRewards(ctx context.Context, hotelID string, activeOnly bool) ([]models.LoyaltyReward, error) {
	callback := func() ([]models.LoyaltyReward, error) {
		return datastore.ListRewardsByHotel(ctx, service.readonlyPostgresDB, hotelID, activeOnly)
	}

	if !activeOnly {
		rewards, err := callback()
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		return rewards, nil
	}

	rewards, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyHotelRewards(hotelID), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return rewards, nil
}

func (service *ServiceReward) validate(reward *models.LoyaltyReward, tiers []models.TierConfig) error {
	if strings.TrimSpace(reward.Name) == "" {
		return errors.New("name is required")
	}
	if reward.PointsCost <= 0 {
		return errors.New("points cost must be positive")
	}
	if reward.Value < 0 {
		return errors.New("value cannot be negative")
	}
	if reward.ValidityDays < 0 {
		return errors.New("validity days cannot be negative")
	}
	if reward.UsageLimit != nil && *reward.UsageLimit <= 0 {
		return errors.New("usage limit must be positive when set")
	}
	if reward.RequiredTier != "" && loyalty.TierRank(reward.RequiredTier, tiers) < 0 {
		return errors.New("required tier is not part of the program")
	}
	return nil
}

func (service *ServiceReward) CreateReward(ctx context.Context, hotelID string, draft *models.LoyaltyReward) (*models.LoyaltyReward, error) {
	program, err := service.serviceProgram.GetProgram(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if err := service.validate(draft, program.Tiers); err != nil {
		return nil, errorx.Wrap(err, errorx.Validation)
	}

	now := time.Now()
	draft.ID = uuid.NewString()
	draft.HotelID = hotelID
	draft.TimesRedeemed = 0
	draft.TotalValueRedeemed = 0
	draft.IsActive = true
	draft.CreatedAt = now
	draft.UpdatedAt = now

	reward, err := datastore.InsertReward(ctx, service.postgresDB, draft)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotelRewards(hotelID))
	return reward, nil
}

func (service *ServiceReward) UpdateReward(ctx context.Context, rewardID string, draft *models.LoyaltyReward) (*models.LoyaltyReward, error) {
	reward, err := service.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	program, err := service.serviceProgram.GetProgram(ctx, reward.HotelID)
	if err != nil {
		return nil, err
	}

	reward.Name = draft.Name
	reward.Description = draft.Description
	reward.PointsCost = draft.PointsCost
	reward.Value = draft.Value
	reward.RequiredTier = draft.RequiredTier
	reward.ValidityDays = draft.ValidityDays
	reward.UsageLimit = draft.UsageLimit
	reward.IsActive = draft.IsActive

	if err := service.validate(reward, program.Tiers); err != nil {
		return nil, errorx.Wrap(err, errorx.Validation)
	}

	reward, err = datastore.UpdateReward(ctx, service.postgresDB, reward)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotelRewards(reward.HotelID))
	return reward, nil
}

// DeactivateReward soft-deletes. Redemption history keeps pointing at the
// row.
func (service *ServiceReward) DeactivateReward(ctx context.Context, rewardID string) (*models.LoyaltyReward, error) {
	reward, err := service.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	reward.IsActive = false
	reward, err = datastore.UpdateReward(ctx, service.postgresDB, reward)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotelRewards(reward.HotelID))
	return reward, nil
}
