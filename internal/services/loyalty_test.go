package services

import (
	"errors"
	"testing"

	"concierge/internal/datastore"
	"concierge/internal/loyalty"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithBalanceRetryExhaustsAttempts(t *testing.T) {
	service := &ServiceLoyalty{}

	calls := 0
	err := service.withBalanceRetry(func() error {
		calls++
		return datastore.ErrStaleBalance
	})

	assert.Equal(t, BALANCE_RETRY_ATTEMPTS, calls)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrBalanceContention.Error())
}

func TestWithBalanceRetryRecoversAfterStaleRead(t *testing.T) {
	service := &ServiceLoyalty{}

	calls := 0
	err := service.withBalanceRetry(func() error {
		calls++
		if calls == 1 {
			return datastore.ErrStaleBalance
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithBalanceRetryStopsOnOtherErrors(t *testing.T) {
	service := &ServiceLoyalty{}

	boom := errors.New("boom")
	calls := 0
	err := service.withBalanceRetry(func() error {
		calls++
		return boom
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, boom, err)
}

func TestShortfallErrorCarriesAmount(t *testing.T) {
	err := shortfallError(42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInsufficientPoints.Error())
	assert.Contains(t, err.Error(), "42 more points needed")
}

func TestLotShortfallErrorKeepsEngineShortfall(t *testing.T) {
	err := lotShortfallError(&loyalty.InsufficientPointsError{Needed: 17})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "17 more points needed")

	err = lotShortfallError(errors.New("bad request"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInsufficientPoints.Error())
	assert.NotContains(t, err.Error(), "more points needed")
}
