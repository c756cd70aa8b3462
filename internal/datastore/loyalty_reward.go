package datastore

import (
	"context"
	"errors"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

// ErrRewardExhausted reports that a reward hit its usage limit or was turned
// off between the eligibility check and the commit.
var ErrRewardExhausted = errors.New("datastore: reward no longer redeemable")

func CreateTableLoyaltyReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LoyaltyReward)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LoyaltyReward)(nil)).Index("index_loyalty_reward_hotel_id").IfNotExists().Column("hotel_id").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindRewardByID(ctx context.Context, db *bun.DB, id string) (*models.LoyaltyReward, error) {
	var reward models.LoyaltyReward
	err := db.NewSelect().Model(&reward).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func ListRewardsByHotel(ctx context.Context, db *bun.DB, hotelID string, activeOnly bool) ([]models.LoyaltyReward, error) {
	var rewards []models.LoyaltyReward
	q := db.NewSelect().Model(&rewards).Where("hotel_id = ?", hotelID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("points_cost ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func InsertReward(ctx context.Context, db *bun.DB, reward *models.LoyaltyReward) (*models.LoyaltyReward, error) {
	_, err := db.NewInsert().Model(reward).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func UpdateReward(ctx context.Context, db *bun.DB, reward *models.LoyaltyReward) (*models.LoyaltyReward, error) {
	_, err := db.NewUpdate().Model(reward).
		Set("name = ?", reward.Name).
		Set("description = ?", reward.Description).
		Set("points_cost = ?", reward.PointsCost).
		Set("value = ?", reward.Value).
		Set("required_tier = ?", reward.RequiredTier).
		Set("validity_days = ?", reward.ValidityDays).
		Set("usage_limit = ?", reward.UsageLimit).
		Set("is_active = ?", reward.IsActive).
		Set("updated_at = current_timestamp").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return reward, nil
}

// recordRewardRedemption bumps the reward's usage counters. The guard
// re-checks activity and the usage limit at commit time so two concurrent
// redemptions cannot both take the last slot.
func recordRewardRedemption(ctx context.Context, tx bun.Tx, rewardID string, value float64) error {
	res, err := tx.NewUpdate().Model((*models.LoyaltyReward)(nil)).
		Set("times_redeemed = times_redeemed + 1").
		Set("total_value_redeemed = total_value_redeemed + ?", value).
		Set("updated_at = current_timestamp").
		Where("id = ?", rewardID).
		Where("is_active = ?", true).
		Where("usage_limit IS NULL OR times_redeemed < usage_limit").
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRewardExhausted
	}
	return nil
}

func SumRewardValueRedeemed(ctx context.Context, db *bun.DB, hotelID string) (float64, error) {
	var total float64
	err := db.NewSelect().Model((*models.LoyaltyReward)(nil)).
		ColumnExpr("COALESCE(SUM(total_value_redeemed), 0)").
		Where("hotel_id = ?", hotelID).
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
