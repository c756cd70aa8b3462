package main

import (
	"context"
	"log"
	"time"

	"concierge/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
)

const LEADERBOARD_DEFAULT_SCHEDULE = "*/15 * * * *"

type LeaderboardJob struct {
	serviceConfig    *services.ServiceConfig
	serviceAnalytics *services.ServiceAnalytics
}

func NewLeaderboardJob(container *do.Injector) (*LeaderboardJob, error) {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceAnalytics, err := do.Invoke[*services.ServiceAnalytics](container)
	if err != nil {
		return nil, err
	}

	return &LeaderboardJob{serviceConfig, serviceAnalytics}, nil
}

func (j *LeaderboardJob) Start(cronRunner *cron.Cron) {
	schedule, err := j.serviceConfig.GetStringConfig(context.Background(), services.CONFIG_CRONJOB_TIME_LEADERBOARD, LEADERBOARD_DEFAULT_SCHEDULE)
	if err != nil {
		log.Println("leaderboard: schedule lookup failed:", "err:", err)
		schedule = LEADERBOARD_DEFAULT_SCHEDULE
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Leaderboard cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)

	// warm the boards right away so dashboards have data before the first tick
	j.runScheduledTask()
}

func (j *LeaderboardJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start rebuilding leaderboards ...")
	if err := j.serviceAnalytics.RebuildLeaderboards(ctx); err != nil {
		log.Println("leaderboard: rebuild failed:", "err:", err)
		return
	}
	log.Println("Leaderboards rebuilt")
}
