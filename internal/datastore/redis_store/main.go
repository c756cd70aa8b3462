package redis_store

import (
	"context"
	"fmt"
	"time"

	"concierge/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const EVENT_QUEUE_MAX = 10_000

func dbKeyLeaderboard(hotelID string) string {
	return fmt.Sprintf("loyalty:leaderboard:%s", hotelID)
}

func dbKeyEventQueue() string {
	return "loyalty:events"
}

func dbKeyLastSweep(hotelID string) string {
	return fmt.Sprintf("loyalty:sweep:last:%s", hotelID)
}

func dbKeySweepReport(hotelID string) string {
	return fmt.Sprintf("loyalty:sweep:report:%s", hotelID)
}

func SetLeaderboardScore(ctx context.Context, cmd redis.Cmdable, hotelID string, memberID string, totalPoints int) error {
	return cmd.ZAdd(ctx, dbKeyLeaderboard(hotelID), redis.Z{
		Score:  float64(totalPoints),
		Member: memberID,
	}).Err()
}

// RebuildLeaderboard replaces the hotel's ranking in one shot so a partial
// cron run never leaves a half-written board behind.
func RebuildLeaderboard(ctx context.Context, cmd redis.Cmdable, hotelID string, members []models.LoyaltyMember) error {
	key := dbKeyLeaderboard(hotelID)
	staging := key + ":staging"

	if err := cmd.Del(ctx, staging).Err(); err != nil {
		return err
	}

	zs := make([]redis.Z, 0, len(members))
	for _, m := range members {
		zs = append(zs, redis.Z{Score: float64(m.TotalPoints), Member: m.ID})
	}
	if len(zs) > 0 {
		if err := cmd.ZAdd(ctx, staging, zs...).Err(); err != nil {
			return err
		}
	}

	return cmd.Rename(ctx, staging, key).Err()
}

func GetLeaderboard(ctx context.Context, cmd redis.Cmdable, hotelID string, num int) ([]*models.TopMember, error) {
	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(hotelID), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	var results []*models.TopMember
	for i, item := range items {
		id, _ := item.Member.(string)
		results = append(results, &models.TopMember{
			MemberID:    id,
			TotalPoints: int(item.Score),
			Rank:        i + 1,
		})
	}

	return results, nil
}

func GetLeaderboardRank(ctx context.Context, cmd redis.Cmdable, hotelID string, memberID string) (int64, error) {
	rank, err := cmd.ZRevRank(ctx, dbKeyLeaderboard(hotelID), memberID).Result()
	if err != nil {
		return -1, err
	}

	return rank + 1, nil
}

// PushEvent queues a loyalty event for downstream consumers. The queue is
// trimmed so an absent consumer cannot grow it without bound.
func PushEvent(ctx context.Context, cmd redis.Cmdable, eventType string, payload any) error {
	envelope := struct {
		Type       string    `msgpack:"type"`
		OccurredAt time.Time `msgpack:"occurred_at"`
		Payload    any       `msgpack:"payload"`
	}{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	b, err := msgpack.Marshal(envelope)
	if err != nil {
		return err
	}

	err = cmd.LPush(ctx, dbKeyEventQueue(), b).Err()
	if err != nil {
		return err
	}

	return cmd.LTrim(ctx, dbKeyEventQueue(), 0, EVENT_QUEUE_MAX-1).Err()
}

func SetLastSweep(ctx context.Context, cmd redis.Cmdable, hotelID string, at time.Time) error {
	return cmd.Set(ctx, dbKeyLastSweep(hotelID), at.Format(time.RFC3339), 0).Err()
}

func GetLastSweep(ctx context.Context, cmd redis.Cmdable, hotelID string) (time.Time, error) {
	result, err := cmd.Get(ctx, dbKeyLastSweep(hotelID)).Result()
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(time.RFC3339, result)
}

func SetSweepReport(ctx context.Context, cmd redis.Cmdable, hotelID string, report *models.SweepReport) error {
	b, err := msgpack.Marshal(report)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeySweepReport(hotelID), b, 0).Err()
}

func GetSweepReport(ctx context.Context, cmd redis.Cmdable, hotelID string) (*models.SweepReport, error) {
	var v *models.SweepReport
	b, err := cmd.Get(ctx, dbKeySweepReport(hotelID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}
