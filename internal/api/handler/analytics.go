package handler

import (
	"time"

	"concierge/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAnalytics struct {
	container *do.Injector
}

func (gr *groupAnalytics) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	analytics, err := serviceAnalytics.ProgramAnalytics(ctx, hotelID)
	return httpx.RestAbort(c, analytics, err)
}

func (gr *groupAnalytics) ROI(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	report, err := serviceAnalytics.ComputeROI(ctx, hotelID)
	return httpx.RestAbort(c, report, err)
}

func (gr *groupAnalytics) TriggerSweep(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceSweeper, err := do.Invoke[*services.ServiceSweeper](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	report, err := serviceSweeper.SweepHotel(ctx, hotelID, time.Now())
	return httpx.RestAbort(c, report, err)
}

func (gr *groupAnalytics) SweepReport(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceSweeper, err := do.Invoke[*services.ServiceSweeper](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	report, err := serviceSweeper.LastReport(ctx, hotelID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	lastRun, err := serviceSweeper.LastSweepAt(ctx, hotelID)
	if err != nil {
		lastRun = report.FinishedAt
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"report":   report,
		"last_run": lastRun,
	}, nil)
}
