package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const year = 365 * 24 * time.Hour

func TestInterestAccumulated(t *testing.T) {
	for _, c := range []struct {
		borrowed uint64
		rate     string
		elapsed  uint64
		want     uint64
	}{
		{500, "0.1", uint64(year / time.Second), 50},
		{500, "0.1", uint64(year/time.Second) / 2, 25},
		{1000, "0.05", 1, 0},
		{0, "0.1", 1000, 0},
		{500, "0", 1000, 0},
	} {
		interest, err := interestAccumulated(fixed.Int(c.borrowed), fixed.MustFromString(c.rate), c.elapsed)
		require.NoError(t, err)
		assert.Equal(t, fixed.Int(c.want), interest)
	}
}

func TestInterestAccumulatedLargeBalances(t *testing.T) {
	borrowed := new(uint256.Int).Lsh(uint256.NewInt(1), 190)

	interest, err := interestAccumulated(borrowed, fixed.One(), uint64(year/time.Second))
	require.NoError(t, err)
	assert.Equal(t, borrowed, interest)
}

func borrowedMarket(t *testing.T) *testPool {
	tp := newTestPool(t)
	tp.list(t, assetA, assetB)
	tp.supply(t, bob, assetB, 5000)
	tp.supply(t, alice, assetA, 1000)
	require.NoError(t, tp.Borrow(context.Background(), alice, assetB, fixed.Int(500)))
	return tp
}

func TestAccrueIdempotent(t *testing.T) {
	ctx := context.Background()
	tp := borrowedMarket(t)
	tp.clock.Add(year)

	first, err := tp.Accrue(ctx, assetB)
	require.NoError(t, err)
	assert.Equal(t, fixed.Int(550), first.TotalBorrowed)
	assert.Equal(t, genesis.Add(year).Unix(), first.LastAccrualTimestamp)

	second, err := tp.Accrue(ctx, assetB)
	require.NoError(t, err)
	assert.Equal(t, first.TotalBorrowed, second.TotalBorrowed)
	assert.Equal(t, first.LastAccrualTimestamp, second.LastAccrualTimestamp)

	// positions keep their principal, only the market total grows
	assert.Equal(t, fixed.Int(500), tp.position(t, assetB, alice).Borrowed)
}

func TestAccrueMonotonic(t *testing.T) {
	ctx := context.Background()
	tp := borrowedMarket(t)

	prev := tp.market(t, assetB)
	for _, step := range []time.Duration{
		time.Hour,
		0,
		30 * 24 * time.Hour,
		-2 * time.Hour,
		time.Second,
		year,
		-year,
	} {
		tp.clock.Add(step)

		m, err := tp.Accrue(ctx, assetB)
		require.NoError(t, err)

		assert.False(t, m.TotalBorrowed.Lt(prev.TotalBorrowed), "step %s", step)
		assert.GreaterOrEqual(t, m.LastAccrualTimestamp, prev.LastAccrualTimestamp, "step %s", step)
		prev = m
	}

	assert.True(t, prev.TotalBorrowed.Gt(fixed.Int(500)))
}

func TestAccrueBeforeMutation(t *testing.T) {
	ctx := context.Background()
	tp := borrowedMarket(t)
	tp.clock.Add(year)

	tp.fund(t, alice, assetB, 100)
	repaid, err := tp.Repay(ctx, alice, assetB, fixed.Int(100))
	require.NoError(t, err)
	assert.Equal(t, fixed.Int(100), repaid)

	m := tp.market(t, assetB)
	assert.Equal(t, fixed.Int(450), m.TotalBorrowed)
	assert.Equal(t, tp.clock.Now().Unix(), m.LastAccrualTimestamp)

	// the other market was not touched
	assert.Equal(t, genesis.Unix(), tp.market(t, assetA).LastAccrualTimestamp)
}

func TestAccrueUnlisted(t *testing.T) {
	tp := newTestPool(t)

	_, err := tp.Accrue(context.Background(), assetA)
	assert.True(t, errors.Is(err, core.ErrMarketNotListed))
}
