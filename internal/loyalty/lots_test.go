package loyalty

import (
	"testing"
	"time"

	"concierge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lot(id int64, remaining int, createdAt time.Time, expiresAt *time.Time) models.PointsEntry {
	return models.PointsEntry{
		ID:        id,
		Type:      models.EntryEarned,
		Amount:    remaining,
		Remaining: remaining,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}
}

func TestConsumeLotsFIFO(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lots := []models.PointsEntry{
		lot(1, 100, day, nil),
		lot(2, 50, day.Add(24*time.Hour), nil),
	}

	consumed, err := ConsumeLots(lots, 120)
	require.NoError(t, err)
	require.Len(t, consumed, 2)

	assert.Equal(t, int64(1), consumed[0].EntryID)
	assert.Equal(t, 100, consumed[0].Consumed)
	assert.Equal(t, 0, consumed[0].Remaining)

	assert.Equal(t, int64(2), consumed[1].EntryID)
	assert.Equal(t, 20, consumed[1].Consumed)
	assert.Equal(t, 30, consumed[1].Remaining)
}

func TestConsumeLotsExactlyOne(t *testing.T) {
	day := time.Now()
	lots := []models.PointsEntry{lot(1, 100, day, nil), lot(2, 50, day, nil)}

	consumed, err := ConsumeLots(lots, 100)
	require.NoError(t, err)
	require.Len(t, consumed, 1)
	assert.Equal(t, int64(1), consumed[0].EntryID)
}

func TestConsumeLotsInsufficient(t *testing.T) {
	lots := []models.PointsEntry{lot(1, 150, time.Now(), nil)}

	_, err := ConsumeLots(lots, 200)
	var insufficient *InsufficientPointsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 50, insufficient.Needed)
}

func TestConsumeLotsSkipsExpiredAndDrained(t *testing.T) {
	day := time.Now()
	expired := lot(1, 80, day, nil)
	expired.Expired = true
	drained := lot(2, 0, day.Add(time.Hour), nil)

	lots := []models.PointsEntry{expired, drained, lot(3, 40, day.Add(2*time.Hour), nil)}

	consumed, err := ConsumeLots(lots, 40)
	require.NoError(t, err)
	require.Len(t, consumed, 1)
	assert.Equal(t, int64(3), consumed[0].EntryID)
}

func TestConsumeLotsRejectsNonPositive(t *testing.T) {
	_, err := ConsumeLots(nil, 0)
	require.Error(t, err)
}

func TestExpirableLots(t *testing.T) {
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := day0.AddDate(0, 12, 0)
	now := day0.Add(400 * 24 * time.Hour) // day 400, past the 12-month window

	lots := []models.PointsEntry{
		lot(1, 1000, day0, &expiry),
		lot(2, 500, day0, nil), // never expires
	}

	due := ExpirableLots(lots, now)
	require.Len(t, due, 1)
	assert.Equal(t, int64(1), due[0].ID)
	assert.Equal(t, 1000, ExpiredRemainder(due))
}

func TestExpirableLotsOnlyUnspentRemainder(t *testing.T) {
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := day0.AddDate(0, 6, 0)

	partlySpent := lot(1, 1000, day0, &expiry)
	partlySpent.Remaining = 400 // 600 already redeemed

	due := ExpirableLots([]models.PointsEntry{partlySpent}, day0.AddDate(0, 7, 0))
	require.Len(t, due, 1)
	assert.Equal(t, 400, ExpiredRemainder(due))
}

func TestExpirableLotsIdempotent(t *testing.T) {
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := day0.AddDate(0, 12, 0)
	now := day0.AddDate(0, 13, 0)

	l := lot(1, 1000, day0, &expiry)
	due := ExpirableLots([]models.PointsEntry{l}, now)
	require.Len(t, due, 1)

	// after the sweep flags the lot, a second pass finds nothing
	l.Expired = true
	assert.Empty(t, ExpirableLots([]models.PointsEntry{l}, now))
}

func TestExpirableLotsNotYetDue(t *testing.T) {
	day0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := day0.AddDate(0, 12, 0)

	due := ExpirableLots([]models.PointsEntry{lot(1, 100, day0, &expiry)}, day0.AddDate(0, 11, 0))
	assert.Empty(t, due)
}
