package ratemodel

import (
	"errors"
	"testing"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilizationRate(t *testing.T) {
	util, err := UtilizationRate(fixed.Int(0), fixed.Int(10))
	require.Nil(t, err)
	assert.True(t, util.IsZero())

	util, err = UtilizationRate(fixed.Int(1000), fixed.Int(250))
	require.Nil(t, err)
	assert.Equal(t, fixed.MustFromString("0.25"), util)

	// borrowed can outgrow supplied through accrual
	util, err = UtilizationRate(fixed.Int(1000), fixed.Int(2000))
	require.Nil(t, err)
	assert.Equal(t, fixed.Precision, util)
}

func TestJumpRate(t *testing.T) {
	m := &JumpRate{
		BaseRate:       fixed.MustFromString("0.02"),
		Multiplier:     fixed.MustFromString("0.1"),
		JumpMultiplier: fixed.MustFromString("2"),
		Kink:           fixed.MustFromString("0.8"),
	}

	for _, c := range []struct {
		borrowed uint64
		want     string
	}{
		{0, "0.02"},
		{500, "0.07"},
		{800, "0.1"},
		{900, "0.3"},
		{1000, "0.5"},
	} {
		rate, err := m.GetBorrowRate(fixed.Int(1000), fixed.Int(c.borrowed))
		require.Nil(t, err)
		assert.Equal(t, c.want, fixed.ToDecimal(rate).String(), "borrowed %d", c.borrowed)
	}
}

func TestJumpRateWithoutKink(t *testing.T) {
	m := &JumpRate{
		BaseRate:       fixed.Zero(),
		Multiplier:     fixed.MustFromString("0.2"),
		JumpMultiplier: fixed.MustFromString("5"),
	}

	rate, err := m.GetBorrowRate(fixed.Int(100), fixed.Int(100))
	require.Nil(t, err)
	assert.Equal(t, fixed.MustFromString("0.2"), rate)
}

func TestFromConfig(t *testing.T) {
	r, err := FromConfig(map[string]core.RateModelConfig{
		"stable": {Kind: "fixed", BaseRate: decimal.RequireFromString("0.05")},
		"default": {
			BaseRate:       decimal.RequireFromString("0.02"),
			Multiplier:     decimal.RequireFromString("0.1"),
			JumpMultiplier: decimal.RequireFromString("2"),
			Kink:           decimal.RequireFromString("0.8"),
		},
	})
	require.Nil(t, err)

	stable, ok := r.Find("stable")
	require.True(t, ok)
	rate, _ := stable.GetBorrowRate(fixed.Int(1), fixed.Int(1))
	assert.Equal(t, fixed.MustFromString("0.05"), rate)

	jump, ok := r.Find("default")
	require.True(t, ok)
	assert.IsType(t, &JumpRate{}, jump)

	_, ok = r.Find("missing")
	assert.False(t, ok)
}

func TestFromConfigRejects(t *testing.T) {
	_, err := FromConfig(map[string]core.RateModelConfig{
		"bad": {Kind: "curve"},
	})
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))

	_, err = FromConfig(map[string]core.RateModelConfig{
		"bad": {Kink: decimal.RequireFromString("1.5")},
	})
	assert.True(t, errors.Is(err, core.ErrInvalidParameter))

	_, err = FromConfig(map[string]core.RateModelConfig{
		"bad": {BaseRate: decimal.RequireFromString("-0.1")},
	})
	assert.True(t, errors.Is(err, fixed.ErrNegative))
}
