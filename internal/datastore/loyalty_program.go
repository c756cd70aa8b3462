package datastore

import (
	"context"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableLoyaltyProgram(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LoyaltyProgram)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LoyaltyProgram)(nil)).Index("index_loyalty_program_hotel_id").Unique().IfNotExists().Column("hotel_id").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindProgramByHotelID(ctx context.Context, db *bun.DB, hotelID string) (*models.LoyaltyProgram, error) {
	var program models.LoyaltyProgram
	err := db.NewSelect().Model(&program).Where("hotel_id = ?", hotelID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func InsertProgram(ctx context.Context, db *bun.DB, program *models.LoyaltyProgram) (*models.LoyaltyProgram, error) {
	_, err := db.NewInsert().Model(program).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return program, nil
}

// UpdateProgramRules rewrites the configurable part of a program. The issued
// and redeemed counters are never touched here, they only move through
// IncrementProgramStats.
func UpdateProgramRules(ctx context.Context, db *bun.DB, program *models.LoyaltyProgram) (*models.LoyaltyProgram, error) {
	_, err := db.NewUpdate().Model(program).
		Set("name = ?", program.Name).
		Set("tiers = ?", program.Tiers).
		Set("points_rules = ?", program.PointsRules).
		Set("redemption_rules = ?", program.RedemptionRules).
		Set("expiration_months = ?", program.ExpirationMonths).
		Set("is_active = ?", program.IsActive).
		Set("updated_at = current_timestamp").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return program, nil
}

func incrementProgramStats(ctx context.Context, tx bun.Tx, programID string, issuedDelta int, redeemedDelta int) error {
	_, err := tx.NewUpdate().Model((*models.LoyaltyProgram)(nil)).
		Set("total_points_issued = total_points_issued + ?", issuedDelta).
		Set("total_points_redeemed = total_points_redeemed + ?", redeemedDelta).
		Set("updated_at = current_timestamp").
		Where("id = ?", programID).
		Exec(ctx)
	return err
}

func ListActivePrograms(ctx context.Context, db *bun.DB) ([]models.LoyaltyProgram, error) {
	var programs []models.LoyaltyProgram
	err := db.NewSelect().Model(&programs).Where("is_active = ?", true).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return programs, nil
}
