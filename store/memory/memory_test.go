package memory

import (
	"context"
	"errors"
	"testing"

	"lending/core"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarket(asset string) *core.Market {
	return &core.Market{
		Asset:            asset,
		TotalSupplied:    uint256.NewInt(0),
		TotalBorrowed:    uint256.NewInt(0),
		ReserveFactor:    uint256.NewInt(0),
		CollateralFactor: uint256.NewInt(0),
		Listed:           true,
	}
}

func TestTxCommit(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.Tx(ctx, func(ledger core.Ledger) error {
		require.Nil(t, ledger.CreateMarket(ctx, newMarket("a")))
		require.Nil(t, ledger.CreateMarket(ctx, newMarket("b")))

		p := core.NewPosition("a", "alice")
		p.Supplied = uint256.NewInt(10)
		require.Nil(t, ledger.SavePosition(ctx, p))

		// staged writes are visible inside the transaction only
		staged, err := ledger.FindPosition(ctx, "a", "alice")
		require.Nil(t, err)
		assert.Equal(t, uint64(10), staged.Supplied.Uint64())

		outside, err := s.FindPosition(ctx, "a", "alice")
		require.Nil(t, err)
		assert.True(t, outside.IsZero())

		return ledger.CreateEvent(ctx, &core.Event{Type: core.EventSupplied, Asset: "a", Account: "alice"})
	})
	require.Nil(t, err)

	markets, err := s.ListMarkets(ctx)
	require.Nil(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "a", markets[0].Asset)
	assert.Equal(t, int64(1), markets[0].Seq)
	assert.Equal(t, "b", markets[1].Asset)
	assert.Equal(t, int64(2), markets[1].Seq)

	p, err := s.FindPosition(ctx, "a", "alice")
	require.Nil(t, err)
	assert.Equal(t, uint64(10), p.Supplied.Uint64())

	events, err := s.ListEvents(ctx, core.EventQuery{})
	require.Nil(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].ID)
}

func TestTxRollback(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.Nil(t, s.CreateMarket(ctx, newMarket("a")))

	boom := errors.New("boom")
	err := s.Tx(ctx, func(ledger core.Ledger) error {
		m, err := ledger.FindMarket(ctx, "a")
		require.Nil(t, err)
		m.TotalSupplied = uint256.NewInt(100)
		require.Nil(t, ledger.UpdateMarket(ctx, m))
		require.Nil(t, ledger.CreateMarket(ctx, newMarket("b")))
		return boom
	})
	assert.Equal(t, boom, err)

	m, err := s.FindMarket(ctx, "a")
	require.Nil(t, err)
	assert.True(t, m.TotalSupplied.IsZero())

	missing, err := s.FindMarket(ctx, "b")
	require.Nil(t, err)
	assert.Nil(t, missing)
}

func TestUpdateMarketVersion(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.Nil(t, s.CreateMarket(ctx, newMarket("a")))

	m1, _ := s.FindMarket(ctx, "a")
	m2, _ := s.FindMarket(ctx, "a")

	require.Nil(t, s.UpdateMarket(ctx, m1))
	assert.Equal(t, int64(1), m1.Version)

	err := s.UpdateMarket(ctx, m2)
	assert.True(t, errors.Is(err, ErrVersionConflict))
}

func TestCreateMarketTwice(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.Nil(t, s.CreateMarket(ctx, newMarket("a")))

	err := s.CreateMarket(ctx, newMarket("a"))
	assert.True(t, errors.Is(err, ErrMarketExists))
}

func TestListEventsFilter(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.Nil(t, s.CreateEvent(ctx, &core.Event{Type: core.EventSupplied, Asset: "a", Account: "alice"}))
	require.Nil(t, s.CreateEvent(ctx, &core.Event{Type: core.EventSupplied, Asset: "b", Account: "bob"}))
	require.Nil(t, s.CreateEvent(ctx, &core.Event{Type: core.EventLiquidated, Asset: "b", CollateralAsset: "a", Account: "bob", Liquidator: "carol"}))

	events, _ := s.ListEvents(ctx, core.EventQuery{Asset: "a"})
	assert.Len(t, events, 2)

	events, _ = s.ListEvents(ctx, core.EventQuery{Account: "carol"})
	assert.Len(t, events, 1)

	events, _ = s.ListEvents(ctx, core.EventQuery{Offset: 1, Limit: 1})
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].ID)
}
