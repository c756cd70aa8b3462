package datastore

import (
	"context"

	"concierge/internal/loyalty"
	"concierge/internal/models"

	"github.com/uptrace/bun"
)

// The Apply* functions below commit one balance-changing aggregate operation
// each. Every member balance write is guarded on the value the service layer
// read, so a concurrent writer rolls the whole transaction back with
// ErrStaleBalance instead of corrupting the ledger.

func ApplyEarn(ctx context.Context, db *bun.DB, programID string, memberID string, entry *models.PointsEntry, spending float64, nights int, newTier string) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := insertPointsEntry(ctx, tx, entry); err != nil {
			return err
		}

		_, err := tx.NewUpdate().Model((*models.LoyaltyMember)(nil)).
			Set("total_points = total_points + ?", entry.Amount).
			Set("available_points = available_points + ?", entry.Amount).
			Set("lifetime_points_earned = lifetime_points_earned + ?", entry.Amount).
			Set("lifetime_spending = lifetime_spending + ?", spending).
			Set("total_nights_stayed = total_nights_stayed + ?", nights).
			Set("current_tier = ?", newTier).
			Set("last_activity = ?", entry.CreatedAt).
			Set("updated_at = current_timestamp").
			Where("id = ?", memberID).
			Exec(ctx)
		if err != nil {
			return err
		}

		return incrementProgramStats(ctx, tx, programID, entry.Amount, 0)
	})
}

func ApplyAdjustCredit(ctx context.Context, db *bun.DB, programID string, memberID string, entry *models.PointsEntry, newTier string) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := insertPointsEntry(ctx, tx, entry); err != nil {
			return err
		}

		_, err := tx.NewUpdate().Model((*models.LoyaltyMember)(nil)).
			Set("total_points = total_points + ?", entry.Amount).
			Set("available_points = available_points + ?", entry.Amount).
			Set("lifetime_points_earned = lifetime_points_earned + ?", entry.Amount).
			Set("current_tier = ?", newTier).
			Set("last_activity = ?", entry.CreatedAt).
			Set("updated_at = current_timestamp").
			Where("id = ?", memberID).
			Exec(ctx)
		if err != nil {
			return err
		}

		return incrementProgramStats(ctx, tx, programID, entry.Amount, 0)
	})
}

// ApplyAdjustDebit removes delta points. entry.Amount carries -delta, the
// consumptions say which lots give the points back.
func ApplyAdjustDebit(ctx context.Context, db *bun.DB, memberID string, delta int, entry *models.PointsEntry, consumptions []loyalty.LotConsumption, newTier string) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := insertPointsEntry(ctx, tx, entry); err != nil {
			return err
		}

		for _, c := range consumptions {
			if err := drainLot(ctx, tx, c.EntryID, c.Remaining+c.Consumed, c.Remaining); err != nil {
				return err
			}
		}

		res, err := tx.NewUpdate().Model((*models.LoyaltyMember)(nil)).
			Set("total_points = total_points - ?", delta).
			Set("available_points = available_points - ?", delta).
			Set("current_tier = ?", newTier).
			Set("last_activity = ?", entry.CreatedAt).
			Set("updated_at = current_timestamp").
			Where("id = ?", memberID).
			Where("available_points >= ?", delta).
			Exec(ctx)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStaleBalance
		}
		return nil
	})
}

func ApplyRedemption(
	ctx context.Context,
	db *bun.DB,
	programID string,
	memberID string,
	reward *models.LoyaltyReward,
	entry *models.PointsEntry,
	redemption *models.RedemptionEntry,
	consumptions []loyalty.LotConsumption,
) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := recordRewardRedemption(ctx, tx, reward.ID, reward.Value); err != nil {
			return err
		}

		if err := insertPointsEntry(ctx, tx, entry); err != nil {
			return err
		}
		if err := insertRedemptionEntry(ctx, tx, redemption); err != nil {
			return err
		}

		for _, c := range consumptions {
			if err := drainLot(ctx, tx, c.EntryID, c.Remaining+c.Consumed, c.Remaining); err != nil {
				return err
			}
		}

		res, err := tx.NewUpdate().Model((*models.LoyaltyMember)(nil)).
			Set("available_points = available_points - ?", reward.PointsCost).
			Set("lifetime_points_redeemed = lifetime_points_redeemed + ?", reward.PointsCost).
			Set("last_activity = ?", entry.CreatedAt).
			Set("updated_at = current_timestamp").
			Where("id = ?", memberID).
			Where("available_points >= ?", reward.PointsCost).
			Exec(ctx)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStaleBalance
		}

		return incrementProgramStats(ctx, tx, programID, 0, reward.PointsCost)
	})
}

// ApplyExpiration retires the given lots and takes their unspent remainders
// out of both balances. Lots stay in history with expired set and their
// remainder intact.
func ApplyExpiration(ctx context.Context, db *bun.DB, memberID string, lots []models.PointsEntry, total int, entry *models.PointsEntry) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, lot := range lots {
			if err := retireLot(ctx, tx, lot.ID, lot.Remaining); err != nil {
				return err
			}
		}

		if err := insertPointsEntry(ctx, tx, entry); err != nil {
			return err
		}

		res, err := tx.NewUpdate().Model((*models.LoyaltyMember)(nil)).
			Set("total_points = total_points - ?", total).
			Set("available_points = available_points - ?", total).
			Set("updated_at = current_timestamp").
			Where("id = ?", memberID).
			Where("available_points >= ?", total).
			Exec(ctx)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStaleBalance
		}
		return nil
	})
}
