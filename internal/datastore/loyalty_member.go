package datastore

import (
	"context"
	"errors"
	"time"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

// ErrStaleBalance reports that a guarded balance update matched no row,
// meaning another writer changed the member or a lot between the read and
// the write. Callers re-read and retry.
var ErrStaleBalance = errors.New("datastore: member balance changed concurrently")

func CreateTableLoyaltyMember(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LoyaltyMember)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LoyaltyMember)(nil)).Index("index_loyalty_member_hotel_guest").Unique().IfNotExists().Column("hotel_id", "guest_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LoyaltyMember)(nil)).Index("index_loyalty_member_hotel_tier").IfNotExists().Column("hotel_id", "current_tier").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindMemberByID(ctx context.Context, db *bun.DB, id string) (*models.LoyaltyMember, error) {
	var member models.LoyaltyMember
	err := db.NewSelect().Model(&member).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func FindMemberByHotelAndGuest(ctx context.Context, db *bun.DB, hotelID string, guestID string) (*models.LoyaltyMember, error) {
	var member models.LoyaltyMember
	err := db.NewSelect().Model(&member).
		Where("hotel_id = ?", hotelID).
		Where("guest_id = ?", guestID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func InsertMember(ctx context.Context, db *bun.DB, member *models.LoyaltyMember) (*models.LoyaltyMember, error) {
	_, err := db.NewInsert().Model(member).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func ListMembersByHotel(ctx context.Context, db *bun.DB, hotelID string, tier string, limit int, offset int) ([]models.LoyaltyMember, int, error) {
	var members []models.LoyaltyMember
	q := db.NewSelect().Model(&members).Where("hotel_id = ?", hotelID)
	if tier != "" {
		q = q.Where("current_tier = ?", tier)
	}
	total, err := q.Order("total_points DESC").Limit(limit).Offset(offset).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func ListAllMembersByHotel(ctx context.Context, db *bun.DB, hotelID string) ([]models.LoyaltyMember, error) {
	var members []models.LoyaltyMember
	err := db.NewSelect().Model(&members).Where("hotel_id = ?", hotelID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func CountMembersByTier(ctx context.Context, db *bun.DB, hotelID string) (map[string]int, error) {
	var rows []struct {
		CurrentTier string `bun:"current_tier"`
		Count       int    `bun:"count"`
	}
	err := db.NewSelect().Model((*models.LoyaltyMember)(nil)).
		ColumnExpr("current_tier, count(*) AS count").
		Where("hotel_id = ?", hotelID).
		GroupExpr("current_tier").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int, len(rows))
	for _, row := range rows {
		distribution[row.CurrentTier] = row.Count
	}
	return distribution, nil
}

func TopMembersByPoints(ctx context.Context, db *bun.DB, hotelID string, limit int) ([]models.LoyaltyMember, error) {
	var members []models.LoyaltyMember
	err := db.NewSelect().Model(&members).
		Where("hotel_id = ?", hotelID).
		Order("total_points DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberTier is used by program reconfiguration to move members whose
// tier no longer matches the new ladder.
func UpdateMemberTier(ctx context.Context, db *bun.DB, memberID string, tier string) error {
	_, err := db.NewUpdate().Model((*models.LoyaltyMember)(nil)).
		Set("current_tier = ?", tier).
		Set("updated_at = current_timestamp").
		Where("id = ?", memberID).
		Exec(ctx)
	return err
}

// RecordStay credits spending and nights for a booking that earned no
// points, without touching the ledger.
func RecordStay(ctx context.Context, db *bun.DB, memberID string, spending float64, nights int, at time.Time) error {
	_, err := db.NewUpdate().Model((*models.LoyaltyMember)(nil)).
		Set("lifetime_spending = lifetime_spending + ?", spending).
		Set("total_nights_stayed = total_nights_stayed + ?", nights).
		Set("last_activity = ?", at).
		Set("updated_at = current_timestamp").
		Where("id = ?", memberID).
		Exec(ctx)
	return err
}

func SetMemberActive(ctx context.Context, db *bun.DB, memberID string, active bool) error {
	_, err := db.NewUpdate().Model((*models.LoyaltyMember)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = current_timestamp").
		Where("id = ?", memberID).
		Exec(ctx)
	return err
}
