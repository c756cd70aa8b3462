package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/interfaces"
	"concierge/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceBooking struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	limiter            interfaces.Limiter

	serviceHotel   *ServiceHotel
	serviceLoyalty *ServiceLoyalty
}

func NewServiceBooking(container *do.Injector) (*ServiceBooking, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceHotel, err := do.Invoke[*ServiceHotel](container)
	if err != nil {
		return nil, err
	}

	serviceLoyalty, err := do.Invoke[*ServiceLoyalty](container)
	if err != nil {
		return nil, err
	}

	return &ServiceBooking{container, postgresDB, readonlyPostgresDB, limiter, serviceHotel, serviceLoyalty}, nil
}

// CompleteBooking records a finished stay or service and feeds it into the
// points engine. Replaying the same booking reference is a no-op so upstream
// systems can retry safely.
func (service *ServiceBooking) CompleteBooking(ctx context.Context, hotelID string, guestID string, amount float64, category string, nights int, reference string) (*models.LoyaltyMember, *models.PointsEntry, error) {
	if err := service.limiter.Allow(ctx, LimitKeyIntake(hotelID), redis_rate.PerMinute(INTAKE_RATE_LIMIT_PER_MINUTE)); err != nil {
		return nil, nil, err
	}

	if amount <= 0 {
		return nil, nil, errorx.Wrap(ErrInvalidAmount, errorx.Validation)
	}
	if nights < 0 {
		return nil, nil, errorx.Wrap(errors.New("nights cannot be negative"), errorx.Validation)
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		reference = uuid.NewString()
	}

	hotel, err := service.serviceHotel.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, nil, err
	}
	if !hotel.IsActive {
		return nil, nil, errorx.Wrap(errors.New("hotel is deactivated"), errorx.Invalid)
	}

	booking := &models.Booking{
		ID:          uuid.NewString(),
		HotelID:     hotelID,
		GuestID:     guestID,
		Category:    category,
		Amount:      amount,
		Nights:      nights,
		Reference:   reference,
		CompletedAt: time.Now(),
	}

	inserted, err := datastore.InsertBooking(ctx, service.postgresDB, booking)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}
	if !inserted {
		// already processed, return the member as-is
		member, err := service.serviceLoyalty.FindOrEnrollMember(ctx, hotelID, guestID)
		if err != nil {
			return nil, nil, err
		}
		return member, nil, nil
	}

	return service.serviceLoyalty.EarnPoints(ctx, hotelID, guestID, amount, category, nights, reference)
}

func (service *ServiceBooking) ListGuestBookings(ctx context.Context, hotelID string, guestID string, limit int, offset int) ([]models.Booking, error) {
	if limit <= 0 || limit > MAX_PAGE_LIMIT {
		limit = DEFAULT_PAGE_LIMIT
	}

	bookings, err := datastore.ListBookingsByGuest(ctx, service.readonlyPostgresDB, hotelID, guestID, limit, offset)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return bookings, nil
}
