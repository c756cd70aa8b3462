package services

import (
	"context"
	"errors"
	"log"
	"time"

	"concierge/internal/datastore"
	"concierge/internal/datastore/redis_store"
	"concierge/internal/models"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

var ErrSweepLock = errors.New("sweep locked")

// ServiceSweeper runs expiration sweeps. Members are processed one by one
// under their own locks; a failing member is recorded and skipped so the
// rest of the batch still completes.
type ServiceSweeper struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	rs                 *redsync.Redsync
	readonlyPostgresDB *bun.DB

	serviceProgram *ServiceProgram
	serviceLoyalty *ServiceLoyalty
}

func NewServiceSweeper(container *do.Injector) (*ServiceSweeper, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	serviceProgram, err := do.Invoke[*ServiceProgram](container)
	if err != nil {
		return nil, err
	}

	serviceLoyalty, err := do.Invoke[*ServiceLoyalty](container)
	if err != nil {
		return nil, err
	}

	return &ServiceSweeper{container, db, rs, readonlyPostgresDB, serviceProgram, serviceLoyalty}, nil
}

func (service *ServiceSweeper) SweepHotel(ctx context.Context, hotelID string, now time.Time) (*models.SweepReport, error) {
	mutex := service.rs.NewMutex(LockKeySweep(hotelID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrSweepLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	report := &models.SweepReport{StartedAt: now}

	program, err := service.serviceProgram.GetProgram(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if program.ExpirationMonths <= 0 {
		report.FinishedAt = time.Now()
		return report, nil
	}

	memberIDs, err := datastore.MemberIDsWithExpirableLots(ctx, service.readonlyPostgresDB, hotelID, now)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	report.MembersScanned = len(memberIDs)
	for _, memberID := range memberIDs {
		expired, err := service.serviceLoyalty.ExpireMemberPoints(ctx, memberID, now)
		if err != nil {
			log.Println("sweep: member failed:", "member:", memberID, "err:", err)
			report.FailedMemberIDs = append(report.FailedMemberIDs, memberID)
			continue
		}
		if expired > 0 {
			report.MembersExpired++
			report.PointsExpired += expired
		}
	}

	report.FinishedAt = time.Now()

	if err := redis_store.SetSweepReport(ctx, service.redisDB, hotelID, report); err != nil {
		log.Println("sweep: report save failed:", "hotel:", hotelID, "err:", err)
	}
	if err := redis_store.SetLastSweep(ctx, service.redisDB, hotelID, report.FinishedAt); err != nil {
		log.Println("sweep: bookkeeping failed:", "hotel:", hotelID, "err:", err)
	}

	return report, nil
}

// SweepAll runs a sweep for every active program. Hotel failures are logged
// and do not stop the run.
func (service *ServiceSweeper) SweepAll(ctx context.Context, now time.Time) map[string]*models.SweepReport {
	reports := map[string]*models.SweepReport{}

	programs, err := datastore.ListActivePrograms(ctx, service.readonlyPostgresDB)
	if err != nil {
		log.Println("sweep: program listing failed:", "err:", err)
		return reports
	}

	for _, program := range programs {
		report, err := service.SweepHotel(ctx, program.HotelID, now)
		if err != nil {
			log.Println("sweep: hotel failed:", "hotel:", program.HotelID, "err:", err)
			continue
		}
		reports[program.HotelID] = report
	}

	return reports
}

func (service *ServiceSweeper) LastReport(ctx context.Context, hotelID string) (*models.SweepReport, error) {
	report, err := redis_store.GetSweepReport(ctx, service.redisDB, hotelID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	return report, nil
}

// LastSweepAt returns when the hotel was last swept, independent of whether
// the detailed report is still around.
func (service *ServiceSweeper) LastSweepAt(ctx context.Context, hotelID string) (time.Time, error) {
	at, err := redis_store.GetLastSweep(ctx, service.redisDB, hotelID)
	if err != nil {
		return time.Time{}, errorx.Wrap(err, errorx.NotExist)
	}
	return at, nil
}
