package datastore

import (
	"context"

	"concierge/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableBooking(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Booking)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Booking)(nil)).Index("index_booking_hotel_guest").IfNotExists().Column("hotel_id", "guest_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Booking)(nil)).Index("index_booking_reference").Unique().IfNotExists().Column("reference").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

// InsertBooking records the completed-booking event. The unique reference
// index makes replays of the same event a no-op at the storage layer.
func InsertBooking(ctx context.Context, db *bun.DB, booking *models.Booking) (bool, error) {
	res, err := db.NewInsert().Model(booking).On("CONFLICT (reference) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func SumBookingRevenue(ctx context.Context, db *bun.DB, hotelID string) (float64, error) {
	var total float64
	err := db.NewSelect().Model((*models.Booking)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("hotel_id = ?", hotelID).
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func ListBookingsByGuest(ctx context.Context, db *bun.DB, hotelID string, guestID string, limit int, offset int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.NewSelect().Model(&bookings).
		Where("hotel_id = ?", hotelID).
		Where("guest_id = ?", guestID).
		Order("completed_at DESC").
		Limit(limit).Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
