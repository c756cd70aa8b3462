package main

import (
	"context"
	"log"
	"time"

	"concierge/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
)

const EXPIRATION_DEFAULT_SCHEDULE = "0 3 * * *"

type ExpirationJob struct {
	serviceConfig  *services.ServiceConfig
	serviceSweeper *services.ServiceSweeper
}

func NewExpirationJob(container *do.Injector) (*ExpirationJob, error) {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceSweeper, err := do.Invoke[*services.ServiceSweeper](container)
	if err != nil {
		return nil, err
	}

	return &ExpirationJob{serviceConfig, serviceSweeper}, nil
}

func (j *ExpirationJob) Start(cronRunner *cron.Cron) {
	schedule, err := j.serviceConfig.GetStringConfig(context.Background(), services.CONFIG_CRONJOB_TIME_EXPIRATION, EXPIRATION_DEFAULT_SCHEDULE)
	if err != nil {
		log.Println("expiration: schedule lookup failed:", "err:", err)
		schedule = EXPIRATION_DEFAULT_SCHEDULE
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Expiration cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

// TriggerNow runs one sweep outside the schedule.
func (j *ExpirationJob) TriggerNow() {
	j.runScheduledTask()
}

func (j *ExpirationJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start expiration sweep ...")
	reports := j.serviceSweeper.SweepAll(ctx, time.Now())
	for hotelID, report := range reports {
		log.Println("Sweep finished:", "hotel:", hotelID, "scanned:", report.MembersScanned, "expired:", report.PointsExpired)
	}
}
