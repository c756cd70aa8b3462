package handler

import (
	"errors"

	"concierge/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupBooking struct {
	container *do.Injector
}

type completedBookingRequest struct {
	GuestID   string  `json:"guest_id"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Nights    int     `json:"nights"`
	Reference string  `json:"reference"`
}

func (gr *groupBooking) Complete(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req completedBookingRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}
	if req.GuestID == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("guest_id is required"), errorx.Validation))
	}

	serviceBooking, err := do.Invoke[*services.ServiceBooking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	member, entry, err := serviceBooking.CompleteBooking(ctx, hotelID, req.GuestID, req.Amount, req.Category, req.Nights, req.Reference)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"member": member,
		"entry":  entry,
	}, nil)
}

func (gr *groupBooking) MyBookings(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceBooking, err := do.Invoke[*services.ServiceBooking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, offset := paging(c)
	bookings, err := serviceBooking.ListGuestBookings(ctx, c.Param("hotel"), user.ID, limit, offset)
	return httpx.RestAbort(c, bookings, err)
}
