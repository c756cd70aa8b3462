package datastore

import (
	"context"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableHotel(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Hotel)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Hotel)(nil)).Index("index_hotel_slug").Unique().IfNotExists().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindHotelByID(ctx context.Context, db *bun.DB, id string) (*models.Hotel, error) {
	var hotel models.Hotel
	err := db.NewSelect().Model(&hotel).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func FindHotelBySlug(ctx context.Context, db *bun.DB, slug string) (*models.Hotel, error) {
	var hotel models.Hotel
	err := db.NewSelect().Model(&hotel).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func ListHotels(ctx context.Context, db *bun.DB, limit int, offset int) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := db.NewSelect().Model(&hotels).Order("created_at ASC").Limit(limit).Offset(offset).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func InsertHotel(ctx context.Context, db *bun.DB, hotel *models.Hotel) (*models.Hotel, error) {
	_, err := db.NewInsert().Model(hotel).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func UpdateHotel(ctx context.Context, db *bun.DB, hotel *models.Hotel) (*models.Hotel, error) {
	_, err := db.NewUpdate().Model(hotel).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func DeactivateHotel(ctx context.Context, db *bun.DB, id string) error {
	_, err := db.NewUpdate().Model((*models.Hotel)(nil)).
		Set("is_active = ?", false).
		Where("id = ?", id).Exec(ctx)
	return err
}
