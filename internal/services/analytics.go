package services

import (
	"context"
	"log"

	"concierge/internal/datastore"
	"concierge/internal/datastore/redis_store"
	"concierge/internal/loyalty"
	"concierge/internal/models"
	"concierge/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

type ServiceAnalytics struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceProgram *ServiceProgram
	serviceConfig  *ServiceConfig
}

func NewServiceAnalytics(container *do.Injector) (*ServiceAnalytics, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
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

	serviceProgram, err := do.Invoke[*ServiceProgram](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAnalytics{container, db, readonlyPostgresDB, cache, readonlyCache, serviceProgram, serviceConfig}, nil
}

// ComputeROI builds the hotel's return-on-investment report. Revenue comes
// from recorded bookings, redeemed value from the reward counters, and the
// discount cost estimate from each member's lifetime spending at their
// tier's configured discount percentage.
func (service *ServiceAnalytics) ComputeROI(ctx context.Context, hotelID string) (*models.ROIReport, error) {
	program, err := service.serviceProgram.GetProgram(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	var revenue, redeemedValue float64
	var members []models.LoyaltyMember

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = datastore.SumBookingRevenue(gctx, service.readonlyPostgresDB, hotelID)
		return err
	})
	g.Go(func() error {
		var err error
		redeemedValue, err = datastore.SumRewardValueRedeemed(gctx, service.readonlyPostgresDB, hotelID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = datastore.ListAllMembersByHotel(gctx, service.readonlyPostgresDB, hotelID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	discountCost := loyalty.EstimatedDiscountCost(members, program.Tiers)
	report := loyalty.ComputeROI(revenue, redeemedValue, discountCost)
	return &report, nil
}

// ProgramAnalytics is the admin dashboard payload: ROI, member counts, tier
// distribution and the points leaderboard.
func (service *ServiceAnalytics) ProgramAnalytics(ctx context.Context, hotelID string) (*models.ProgramAnalytics, error) {
	roi, err := service.ComputeROI(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	callback := func() (map[string]int, error) {
		return datastore.CountMembersByTier(ctx, service.readonlyPostgresDB, hotelID)
	}
	distribution, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyTierDistribution(hotelID), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	memberCount := 0
	for _, n := range distribution {
		memberCount += n
	}

	topMembers, err := service.TopMembers(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	return &models.ProgramAnalytics{
		ROI:              *roi,
		MemberCount:      memberCount,
		TierDistribution: distribution,
		TopMembers:       topMembers,
	}, nil
}

// TopMembers reads the leaderboard the cron job maintains in redis, falling
// back to postgres when the board has not been built yet.
func (service *ServiceAnalytics) TopMembers(ctx context.Context, hotelID string) ([]models.TopMember, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_TOP_MEMBERS_LIMIT, TOP_MEMBERS_DEFAULT_LIMIT)

	ranked, err := redis_store.GetLeaderboard(ctx, service.redisDB, hotelID, limit)
	if err != nil || len(ranked) == 0 {
		return service.topMembersFromDB(ctx, hotelID, limit)
	}

	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.MemberID)
	}

	results := make([]models.TopMember, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, *r)
	}

	service.attachMemberDetails(ctx, hotelID, ids, results)
	return results, nil
}

func (service *ServiceAnalytics) topMembersFromDB(ctx context.Context, hotelID string, limit int) ([]models.TopMember, error) {
	members, err := datastore.TopMembersByPoints(ctx, service.readonlyPostgresDB, hotelID, limit)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	guestIDs := make([]string, 0, len(members))
	for _, m := range members {
		guestIDs = append(guestIDs, m.GuestID)
	}
	guests, err := datastore.GuestInfoByIDs(ctx, service.readonlyPostgresDB, guestIDs)
	if err != nil {
		log.Println("analytics: guest lookup failed:", "err:", err)
		guests = map[string]*models.GuestDisplayInfo{}
	}

	results := make([]models.TopMember, 0, len(members))
	for i, m := range members {
		name := ""
		if guest := guests[m.GuestID]; guest != nil {
			name = guest.DisplayName()
		}
		results = append(results, models.TopMember{
			MemberID:    m.ID,
			GuestName:   name,
			Tier:        m.CurrentTier,
			TotalPoints: m.TotalPoints,
			Rank:        i + 1,
		})
	}

	return results, nil
}

func (service *ServiceAnalytics) attachMemberDetails(ctx context.Context, hotelID string, memberIDs []string, results []models.TopMember) {
	members, err := datastore.ListAllMembersByHotel(ctx, service.readonlyPostgresDB, hotelID)
	if err != nil {
		log.Println("analytics: member lookup failed:", "err:", err)
		return
	}

	byID := make(map[string]*models.LoyaltyMember, len(members))
	guestIDs := make([]string, 0, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
		guestIDs = append(guestIDs, members[i].GuestID)
	}

	guests, err := datastore.GuestInfoByIDs(ctx, service.readonlyPostgresDB, guestIDs)
	if err != nil {
		guests = map[string]*models.GuestDisplayInfo{}
	}

	for i := range results {
		member := byID[results[i].MemberID]
		if member == nil {
			continue
		}
		results[i].Tier = member.CurrentTier
		if guest := guests[member.GuestID]; guest != nil {
			results[i].GuestName = guest.DisplayName()
		}
	}
}

// RebuildLeaderboards refreshes every active hotel's redis leaderboard.
func (service *ServiceAnalytics) RebuildLeaderboards(ctx context.Context) error {
	programs, err := datastore.ListActivePrograms(ctx, service.readonlyPostgresDB)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	for _, program := range programs {
		members, err := datastore.ListAllMembersByHotel(ctx, service.readonlyPostgresDB, program.HotelID)
		if err != nil {
			log.Println("leaderboard: member listing failed:", "hotel:", program.HotelID, "err:", err)
			continue
		}
		if err := redis_store.RebuildLeaderboard(ctx, service.redisDB, program.HotelID, members); err != nil {
			log.Println("leaderboard: rebuild failed:", "hotel:", program.HotelID, "err:", err)
		}
	}

	return nil
}
