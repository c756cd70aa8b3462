package handler

import (
	"errors"

	"concierge/internal/models"
	"concierge/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupProvider struct {
	container *do.Injector
}

type providerRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	IsActive     *bool  `json:"is_active"`
}

func (gr *groupProvider) List(c echo.Context) error {
	ctx := c.Request().Context()

	serviceProvider, err := do.Invoke[*services.ServiceProvider](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	providers, err := serviceProvider.ListProviders(ctx, c.Param("hotel"), c.QueryParam("active") != "false")
	return httpx.RestAbort(c, providers, err)
}

func (gr *groupProvider) Create(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req providerRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceProvider, err := do.Invoke[*services.ServiceProvider](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	provider, err := serviceProvider.CreateProvider(ctx, hotelID, req.Name, req.Category, req.ContactEmail, req.Phone)
	return httpx.RestAbort(c, provider, err)
}

func (gr *groupProvider) Update(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceProvider, err := do.Invoke[*services.ServiceProvider](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	provider, err := serviceProvider.GetProvider(ctx, c.Param("provider"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if user.Role != models.RoleSuperadmin {
		if user.HotelID == nil || *user.HotelID != provider.HotelID {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("provider belongs to another hotel"), errorx.Authn))
		}
	}

	var req providerRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	updated, err := serviceProvider.UpdateProvider(ctx, provider.ID, req.Name, req.ContactEmail, req.Phone, req.IsActive)
	return httpx.RestAbort(c, updated, err)
}

func (gr *groupProvider) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceProvider, err := do.Invoke[*services.ServiceProvider](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	provider, err := serviceProvider.GetProvider(ctx, c.Param("provider"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if user.Role != models.RoleSuperadmin {
		if user.HotelID == nil || *user.HotelID != provider.HotelID {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("provider belongs to another hotel"), errorx.Authn))
		}
	}

	updated, err := serviceProvider.DeactivateProvider(ctx, provider.ID)
	return httpx.RestAbort(c, updated, err)
}
