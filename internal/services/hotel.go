package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/models"
	"concierge/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceHotel struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceHotel(container *do.Injector) (*ServiceHotel, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceHotel{container, db, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceHotel) GetHotel(ctx context.Context, hotelID string) (*models.Hotel, error) {
	callback := func() (*models.Hotel, error) {
		return datastore.FindHotelByID(ctx, service.readonlyPostgresDB, hotelID)
	}

	hotel, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyHotel(hotelID), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrHotelNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return hotel, nil
}

func (service *ServiceHotel) ListHotels(ctx context.Context, limit int, offset int) ([]models.Hotel, error) {
	if limit <= 0 || limit > MAX_PAGE_LIMIT {
		limit = DEFAULT_PAGE_LIMIT
	}

	hotels, err := datastore.ListHotels(ctx, service.readonlyPostgresDB, limit, offset)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return hotels, nil
}

func (service *ServiceHotel) CreateHotel(ctx context.Context, name string, slug string, city string, timezone string) (*models.Hotel, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" || slug == "" {
		return nil, errorx.Wrap(errors.New("name and slug are required"), errorx.Validation)
	}

	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, errorx.Wrap(errors.New("unknown timezone"), errorx.Validation)
		}
	}

	if _, err := datastore.FindHotelBySlug(ctx, service.readonlyPostgresDB, slug); err == nil {
		return nil, errorx.Wrap(errors.New("slug already taken"), errorx.Invalid)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	hotel := &models.Hotel{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		City:      city,
		Timezone:  timezone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	hotel, err := datastore.InsertHotel(ctx, service.postgresDB, hotel)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return hotel, nil
}

func (service *ServiceHotel) UpdateHotel(ctx context.Context, hotelID string, name string, city string, timezone string, isActive *bool) (*models.Hotel, error) {
	hotel, err := service.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		hotel.Name = name
	}
	if city != "" {
		hotel.City = city
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, errorx.Wrap(errors.New("unknown timezone"), errorx.Validation)
		}
		hotel.Timezone = timezone
	}
	if isActive != nil {
		hotel.IsActive = *isActive
	}
	hotel.UpdatedAt = time.Now()

	hotel, err = datastore.UpdateHotel(ctx, service.postgresDB, hotel)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotel(hotelID))
	return hotel, nil
}

// DeactivateHotel soft-deletes. Members and history stay readable, earning
// stops because intake rejects inactive hotels.
func (service *ServiceHotel) DeactivateHotel(ctx context.Context, hotelID string) (*models.Hotel, error) {
	hotel, err := service.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if err := datastore.DeactivateHotel(ctx, service.postgresDB, hotel.ID); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotel(hotelID))
	hotel.IsActive = false
	return hotel, nil
}
