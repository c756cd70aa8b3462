package datastore

import (
	"context"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableRedemptionEntry(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.RedemptionEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.RedemptionEntry)(nil)).Index("index_redemption_entry_member_id").IfNotExists().Column("member_id").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func ListRedemptionsByMember(ctx context.Context, db *bun.DB, memberID string, limit int, offset int) ([]models.RedemptionEntry, int, error) {
	var entries []models.RedemptionEntry
	total, err := db.NewSelect().Model(&entries).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func insertRedemptionEntry(ctx context.Context, tx bun.Tx, entry *models.RedemptionEntry) error {
	_, err := tx.NewInsert().Model(entry).Exec(ctx)
	return err
}
