package ledger

import (
	"testing"
	"time"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketRow(t *testing.T) {
	maxInt := new(uint256.Int).SetAllOne()
	now := time.Unix(1_600_000_000, 0)

	m := &core.Market{
		Seq:                  3,
		Asset:                "BTC",
		TotalSupplied:        maxInt,
		TotalBorrowed:        fixed.Int(12),
		LastAccrualTimestamp: now.Unix(),
		ReserveFactor:        fixed.MustFromString("0.1"),
		CollateralFactor:     fixed.MustFromString("0.75"),
		RateModel:            "jump",
		Listed:               true,
		Version:              7,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	row := toMarketRow(m)
	assert.Equal(t, maxInt.Dec(), row.TotalSupplied)
	assert.Equal(t, "750000000000000000", row.CollateralFactor)

	decoded, err := row.decode()
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestMarketRowNilAmounts(t *testing.T) {
	row := toMarketRow(&core.Market{Asset: "ETH"})
	assert.Equal(t, "0", row.TotalSupplied)
	assert.Equal(t, "0", row.ReserveFactor)
}

func TestPositionRow(t *testing.T) {
	p := &core.Position{
		Asset:               "BTC",
		Account:             "alice",
		Supplied:            fixed.Int(1000),
		Borrowed:            fixed.Zero(),
		LastUpdateTimestamp: 42,
	}

	decoded, err := toPositionRow(p).decode()
	require.NoError(t, err)
	assert.Equal(t, p, decoded)

	_, err = (&position{Supplied: "12x", Borrowed: "0"}).decode()
	assert.Error(t, err)
}

func TestEventRow(t *testing.T) {
	e := &core.Event{
		ID:              9,
		TraceID:         "8e5b5e2e-4a5b-4c6e-9d2a-0f6a1c2b3d4e",
		Type:            core.EventLiquidated,
		Asset:           "USDC",
		CollateralAsset: "BTC",
		Account:         "alice",
		Liquidator:      "carol",
		Amount:          fixed.Int(500),
		Seized:          fixed.Int(550),
		CreatedAt:       time.Unix(1_600_000_000, 0),
	}

	row := toEventRow(e)
	assert.JSONEq(t, `["carol","alice","USDC","BTC","500"]`, row.Args.String())

	decoded, err := row.decode()
	require.NoError(t, err)
	assert.Equal(t, e, decoded)

	listed := &core.Event{Type: core.EventMarketListed, Asset: "BTC", RateModel: "jump"}
	decoded, err = toEventRow(listed).decode()
	require.NoError(t, err)
	assert.Nil(t, decoded.Amount)
	assert.Nil(t, decoded.Seized)
}
