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
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceProvider struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceHotel *ServiceHotel
}

func NewServiceProvider(container *do.Injector) (*ServiceProvider, error) {
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

	serviceHotel, err := do.Invoke[*ServiceHotel](container)
	if err != nil {
		return nil, err
	}

	return &ServiceProvider{container, postgresDB, readonlyPostgresDB, cache, readonlyCache, serviceHotel}, nil
}

func (service *ServiceProvider) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	provider, err := datastore.FindProviderByID(ctx, service.readonlyPostgresDB, providerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("provider not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return provider, nil
}

func (service *ServiceProvider) ListProviders(ctx context.Context, hotelID string, activeOnly bool) ([]models.Provider, error) {
	callback := func() ([]models.Provider, error) {
		return datastore.ListProvidersByHotel(ctx, service.readonlyPostgresDB, hotelID, activeOnly)
	}

	if !activeOnly {
		providers, err := callback()
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		return providers, nil
	}

	providers, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyHotelProviders(hotelID), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return providers, nil
}

func (service *ServiceProvider) CreateProvider(ctx context.Context, hotelID string, name string, category string, contactEmail string, phone string) (*models.Provider, error) {
	if _, err := service.serviceHotel.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorx.Wrap(errors.New("name is required"), errorx.Validation)
	}
	if !models.ValidCategory(category) {
		return nil, errorx.Wrap(errors.New("unknown service category"), errorx.Validation)
	}

	now := time.Now()
	provider := &models.Provider{
		ID:           uuid.NewString(),
		HotelID:      hotelID,
		Name:         name,
		Category:     category,
		ContactEmail: contactEmail,
		Phone:        phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	provider, err := datastore.InsertProvider(ctx, service.postgresDB, provider)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotelProviders(hotelID))
	return provider, nil
}

func (service *ServiceProvider) UpdateProvider(ctx context.Context, providerID string, name string, contactEmail string, phone string, isActive *bool) (*models.Provider, error) {
	provider, err := service.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		provider.Name = name
	}
	if contactEmail != "" {
		provider.ContactEmail = contactEmail
	}
	if phone != "" {
		provider.Phone = phone
	}
	if isActive != nil {
		provider.IsActive = *isActive
	}
	provider.UpdatedAt = time.Now()

	provider, err = datastore.UpdateProvider(ctx, service.postgresDB, provider)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotelProviders(provider.HotelID))
	return provider, nil
}

// DeactivateProvider soft-deletes; existing bookings keep their category.
func (service *ServiceProvider) DeactivateProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	provider, err := service.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if err := datastore.DeactivateProvider(ctx, service.postgresDB, provider.ID); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyHotelProviders(provider.HotelID))
	provider.IsActive = false
	return provider, nil
}
