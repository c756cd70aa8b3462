package loyalty

import (
	"fmt"
	"time"

	"concierge/internal/models"
)

// InsufficientPointsError reports exactly how many points the member is
// short; redemption and deduction failures surface it to the guest UI.
type InsufficientPointsError struct {
	Needed int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: %d more needed", e.Needed)
}

// LotConsumption records how much of one ledger lot a decrement consumed.
type LotConsumption struct {
	EntryID   int64
	Consumed  int
	Remaining int
}

// ConsumeLots walks open lots oldest-first and consumes points from their
// unspent remainders. Lots must be ordered ascending by creation time and
// already-expired lots must be excluded by the caller. A naive
// "total minus expired lots" balance breaks once redemptions have eaten into
// lots unevenly; tracking per-lot remainders and always spending the oldest
// lot first is what keeps expiration from retiring points that were already
// spent.
func ConsumeLots(lots []models.PointsEntry, points int) ([]LotConsumption, error) {
	if points <= 0 {
		return nil, fmt.Errorf("consume amount must be positive, got %d", points)
	}

	left := points
	var consumed []LotConsumption
	for _, lot := range lots {
		if left == 0 {
			break
		}
		if lot.Expired || lot.Remaining <= 0 {
			continue
		}

		take := lot.Remaining
		if take > left {
			take = left
		}
		consumed = append(consumed, LotConsumption{
			EntryID:   lot.ID,
			Consumed:  take,
			Remaining: lot.Remaining - take,
		})
		left -= take
	}

	if left > 0 {
		return nil, &InsufficientPointsError{Needed: left}
	}

	return consumed, nil
}

// ExpirableLots filters lots whose expiry has passed and that still hold an
// unspent remainder. Running it twice over the same ledger state returns the
// same set, which is what makes the sweep idempotent once the first pass has
// flagged the rows.
func ExpirableLots(lots []models.PointsEntry, now time.Time) []models.PointsEntry {
	var due []models.PointsEntry
	for _, lot := range lots {
		if lot.Expired || lot.Remaining <= 0 || lot.ExpiresAt == nil {
			continue
		}
		if !lot.ExpiresAt.After(now) {
			due = append(due, lot)
		}
	}
	return due
}

// ExpiredRemainder sums the unspent remainders of the given lots.
func ExpiredRemainder(lots []models.PointsEntry) int {
	total := 0
	for _, lot := range lots {
		total += lot.Remaining
	}
	return total
}
