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

type groupProgram struct {
	container *do.Injector
}

type programRequest struct {
	Name             string                 `json:"name"`
	Tiers            []models.TierConfig    `json:"tiers"`
	PointsRules      models.PointsRules     `json:"points_rules"`
	RedemptionRules  models.RedemptionRules `json:"redemption_rules"`
	ExpirationMonths int                    `json:"expiration_months"`
	IsActive         *bool                  `json:"is_active"`
}

func (req *programRequest) draft() *models.LoyaltyProgram {
	program := &models.LoyaltyProgram{
		Name:             req.Name,
		Tiers:            req.Tiers,
		PointsRules:      req.PointsRules,
		RedemptionRules:  req.RedemptionRules,
		ExpirationMonths: req.ExpirationMonths,
		IsActive:         true,
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}
	return program
}

func (gr *groupProgram) Show(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceProgram, err := do.Invoke[*services.ServiceProgram](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	program, err := serviceProgram.GetProgram(ctx, hotelID)
	return httpx.RestAbort(c, program, err)
}

func (gr *groupProgram) Create(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req programRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceProgram, err := do.Invoke[*services.ServiceProgram](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	program, err := serviceProgram.CreateProgram(ctx, hotelID, req.draft())
	return httpx.RestAbort(c, program, err)
}

func (gr *groupProgram) Update(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req programRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceProgram, err := do.Invoke[*services.ServiceProgram](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	program, reclassified, err := serviceProgram.UpdateProgram(ctx, hotelID, req.draft())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"program":              program,
		"members_reclassified": reclassified,
	}, nil)
}

func (gr *groupProgram) Members(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	hotelID, err := adminHotelID(c, user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if email := c.QueryParam("email"); email != "" {
		member, err := serviceLoyalty.FindMemberByEmail(ctx, hotelID, email)
		if err != nil {
			return httpx.RestAbort(c, nil, err)
		}
		return httpx.RestAbort(c, map[string]interface{}{
			"members": []models.LoyaltyMember{*member},
			"total":   1,
		}, nil)
	}

	limit, offset := paging(c)
	members, total, err := serviceLoyalty.ListMembers(ctx, hotelID, c.QueryParam("tier"), limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"members": members,
		"total":   total,
	}, nil)
}

// resolveHotelMember loads the member and checks it belongs to the admin's
// hotel.
func (gr *groupProgram) resolveHotelMember(c echo.Context) (*models.LoyaltyMember, error) {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return nil, err
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	member, err := serviceLoyalty.GetMember(ctx, c.Param("member"))
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleSuperadmin {
		if user.HotelID == nil || *user.HotelID != member.HotelID {
			return nil, errorx.Wrap(errors.New("member belongs to another hotel"), errorx.Authn)
		}
	}
	return member, nil
}

func (gr *groupProgram) Member(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveHotelMember(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	summary, err := serviceLoyalty.MemberSummary(ctx, member.ID)
	return httpx.RestAbort(c, summary, err)
}

type adjustRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

func (gr *groupProgram) Adjust(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveAdmin(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	member, err := gr.resolveHotelMember(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req adjustRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceLoyalty.AdjustPoints(ctx, member.ID, req.Delta, req.Reason, req.Note, user.ID)
	return httpx.RestAbort(c, updated, err)
}

type memberStatusRequest struct {
	Active *bool `json:"active"`
}

func (gr *groupProgram) Status(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveHotelMember(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req memberStatusRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Validation))
	}
	if req.Active == nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("active is required"), errorx.Validation))
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	updated, err := serviceLoyalty.SetMemberActive(ctx, member.ID, *req.Active)
	return httpx.RestAbort(c, updated, err)
}
