package handler

import (
	"errors"

	"concierge/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupHotel struct {
	container *do.Injector
}

type hotelRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
	IsActive *bool  `json:"is_active"`
}

func (gr *groupHotel) List(c echo.Context) error {
	ctx := c.Request().Context()

	serviceHotel, err := do.Invoke[*services.ServiceHotel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, offset := paging(c)
	hotels, err := serviceHotel.ListHotels(ctx, limit, offset)
	return httpx.RestAbort(c, hotels, err)
}

func (gr *groupHotel) Show(c echo.Context) error {
	ctx := c.Request().Context()

	serviceHotel, err := do.Invoke[*services.ServiceHotel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hotel, err := serviceHotel.GetHotel(ctx, c.Param("hotel"))
	return httpx.RestAbort(c, hotel, err)
}

func (gr *groupHotel) Create(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := ResolveSuperadmin(ctx); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req hotelRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceHotel, err := do.Invoke[*services.ServiceHotel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hotel, err := serviceHotel.CreateHotel(ctx, req.Name, req.Slug, req.City, req.Timezone)
	return httpx.RestAbort(c, hotel, err)
}

func (gr *groupHotel) Update(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := ResolveSuperadmin(ctx); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req hotelRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceHotel, err := do.Invoke[*services.ServiceHotel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hotel, err := serviceHotel.UpdateHotel(ctx, c.Param("hotel"), req.Name, req.City, req.Timezone, req.IsActive)
	return httpx.RestAbort(c, hotel, err)
}

func (gr *groupHotel) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := ResolveSuperadmin(ctx); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceHotel, err := do.Invoke[*services.ServiceHotel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	hotel, err := serviceHotel.DeactivateHotel(ctx, c.Param("hotel"))
	return httpx.RestAbort(c, hotel, err)
}
