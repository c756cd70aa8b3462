package handler

import (
	"context"
	"strconv"

	"concierge/internal/models"
	"concierge/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupMember struct {
	container *do.Injector
}

func paging(c echo.Context) (limit int, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}
	return limit, page * limit
}

// resolveMembership maps the authenticated guest to their membership at the
// hotel in the path, enrolling on first contact.
func (gr *groupMember) resolveMembership(ctx context.Context, c echo.Context) (*models.LoyaltyMember, error) {
	user, err := ResolveValidUser(ctx)
	if err != nil {
		return nil, err
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return serviceLoyalty.FindOrEnrollMember(ctx, c.Param("hotel"), user.ID)
}

func (gr *groupMember) Me(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveMembership(ctx, c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	summary, err := serviceLoyalty.MemberSummary(ctx, member.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	if rank, err := serviceLoyalty.LeaderboardRank(ctx, summary); err == nil {
		return httpx.RestAbort(c, map[string]interface{}{
			"member": summary,
			"rank":   rank,
		}, nil)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"member": summary,
	}, nil)
}

func (gr *groupMember) History(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveMembership(ctx, c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, offset := paging(c)
	entries, total, err := serviceLoyalty.History(ctx, member.ID, c.QueryParam("type"), limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"entries": entries,
		"total":   total,
	}, nil)
}

func (gr *groupMember) Rewards(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveMembership(ctx, c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rewards, err := serviceLoyalty.EligibleRewards(ctx, member.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, rewards, nil)
}

func (gr *groupMember) Redeem(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveMembership(ctx, c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	redemption, updated, err := serviceLoyalty.RedeemReward(ctx, member.ID, c.Param("reward"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"redemption": redemption,
		"member":     updated,
	}, nil)
}

func (gr *groupMember) Redemptions(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := gr.resolveMembership(ctx, c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLoyalty, err := do.Invoke[*services.ServiceLoyalty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, offset := paging(c)
	entries, total, err := serviceLoyalty.Redemptions(ctx, member.ID, limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"redemptions": entries,
		"total":       total,
	}, nil)
}
