package datastore

import (
	"context"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableProvider(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Provider)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Provider)(nil)).Index("index_provider_hotel_id").IfNotExists().Column("hotel_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Provider)(nil)).Index("index_provider_hotel_id_category").IfNotExists().Column("hotel_id", "category").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindProviderByID(ctx context.Context, db *bun.DB, id string) (*models.Provider, error) {
	var provider models.Provider
	err := db.NewSelect().Model(&provider).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

func ListProvidersByHotel(ctx context.Context, db *bun.DB, hotelID string, activeOnly bool) ([]models.Provider, error) {
	var providers []models.Provider
	q := db.NewSelect().Model(&providers).Where("hotel_id = ?", hotelID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func InsertProvider(ctx context.Context, db *bun.DB, provider *models.Provider) (*models.Provider, error) {
	_, err := db.NewInsert().Model(provider).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func UpdateProvider(ctx context.Context, db *bun.DB, provider *models.Provider) (*models.Provider, error) {
	_, err := db.NewUpdate().Model(provider).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func DeactivateProvider(ctx context.Context, db *bun.DB, id string) error {
	_, err := db.NewUpdate().Model((*models.Provider)(nil)).
		Set("is_active = ?", false).
		Where("id = ?", id).Exec(ctx)
	return err
}
