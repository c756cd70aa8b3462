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

type groupReward struct {
	container *do.Injector
}

type rewardRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PointsCost   int     `json:"points_cost"`
	Value        float64 `json:"value"`
	RequiredTier string  `json:"required_tier"`
	ValidityDays int     `json:"validity_days"`
	UsageLimit   *int    `json:"usage_limit"`
	IsActive     *bool   `json:"is_active"`
}

func (req *rewardRequest) draft() *models.LoyaltyReward {
	reward := &models.LoyaltyReward{
		Name:         req.Name,
		Description:  req.Description,
		PointsCost:   req.PointsCost,
		Value:        req.Value,
		RequiredTier: req.RequiredTier,
		ValidityDays: req.ValidityDays,
		UsageLimit:   req.UsageLimit,
		IsActive:     true,
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}
	return reward
}

func (gr *groupReward) List(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards, err := serviceReward.ListRewards(ctx, hotelID, c.QueryParam("active") == "true")
	return httpx.RestAbort(c, rewards, err)
}

func (gr *groupReward) Create(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req rewardRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	reward, err := serviceReward.CreateReward(ctx, hotelID, req.draft())
	return httpx.RestAbort(c, reward, err)
}

// resolveHotelReward loads the reward and checks it belongs to the admin's
// hotel.
func (gr *groupReward) resolveHotelReward(c echo.Context) (*models.LoyaltyReward, error) {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return nil, err
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	reward, err := serviceReward.GetReward(ctx, c.Param("reward"))
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleSuperadmin {
		if user.HotelID == nil || *user.HotelID != reward.HotelID {
			return nil, errorx.Wrap(errors.New("reward belongs to another hotel"), errorx.Authn)
		}
	}
	return reward, nil
}

func (gr *groupReward) Update(c echo.Context) error {
	ctx := c.Request().Context()

	reward, err := gr.resolveHotelReward(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req rewardRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceReward.UpdateReward(ctx, reward.ID, req.draft())
	return httpx.RestAbort(c, updated, err)
}

func (gr *groupReward) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	reward, err := gr.resolveHotelReward(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceReward, err := do.Invoke[*services.ServiceReward](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceReward.DeactivateReward(ctx, reward.ID)
	return httpx.RestAbort(c, updated, err)
}
