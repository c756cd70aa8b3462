package datastore

import (
	"context"
	"time"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePointsEntry(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PointsEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PointsEntry)(nil)).Index("index_points_entry_member_id").IfNotExists().Column("member_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PointsEntry)(nil)).Index("index_points_entry_expires_at").IfNotExists().Column("expires_at").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

// OpenLots returns the member's credit entries that still carry unspent
// points, oldest first. This ordering is what makes redemption consumption
// first-in first-out.
func OpenLots(ctx context.Context, db *bun.DB, memberID string) ([]models.PointsEntry, error) {
	var lots []models.PointsEntry
	err := db.NewSelect().Model(&lots).
		Where("member_id = ?", memberID).
		Where("remaining > 0").
		Where("expired = ?", false).
		Order("created_at ASC").
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return lots, nil
}

func ListEntriesByMember(ctx context.Context, db *bun.DB, memberID string, entryType string, limit int, offset int) ([]models.PointsEntry, int, error) {
	var entries []models.PointsEntry
	q := db.NewSelect().Model(&entries).Where("member_id = ?", memberID)
	if entryType != "" {
		q = q.Where("type = ?", entryType)
	}
	total, err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// MemberIDsWithExpirableLots lists distinct members of the hotel holding at
// least one unexpired lot whose expiry is due at or before now.
func MemberIDsWithExpirableLots(ctx context.Context, db *bun.DB, hotelID string, now time.Time) ([]string, error) {
	var ids []string
	err := db.NewSelect().Model((*models.PointsEntry)(nil)).
		ColumnExpr("DISTINCT points_entry.member_id").
		Join("JOIN loyalty_member AS m ON m.id = points_entry.member_id").
		Where("m.hotel_id = ?", hotelID).
		Where("points_entry.remaining > 0").
		Where("points_entry.expired = ?", false).
		Where("points_entry.expires_at IS NOT NULL").
		Where("points_entry.expires_at <= ?", now).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func insertPointsEntry(ctx context.Context, tx bun.Tx, entry *models.PointsEntry) error {
	_, err := tx.NewInsert().Model(entry).Exec(ctx)
	return err
}

// drainLot lowers a lot's remaining balance, guarded on the value the caller
// read. A zero-row update means the lot moved underneath us.
func drainLot(ctx context.Context, tx bun.Tx, entryID int64, expected int, remaining int) error {
	res, err := tx.NewUpdate().Model((*models.PointsEntry)(nil)).
		Set("remaining = ?", remaining).
		Where("id = ?", entryID).
		Where("remaining = ?", expected).
		Where("expired = ?", false).
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
}

// retireLot marks a lot expired without zeroing its remainder, keeping the
// unspent figure readable in history.
func retireLot(ctx context.Context, tx bun.Tx, entryID int64, expected int) error {
	res, err := tx.NewUpdate().Model((*models.PointsEntry)(nil)).
		Set("expired = ?", true).
		Where("id = ?", entryID).
		Where("remaining = ?", expected).
		Where("expired = ?", false).
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
}
