// Package ratemodel implements the annualized borrow rate curves markets
// accrue interest with. All rates and factors are fixed.Precision scaled.
package ratemodel

import (
	"fmt"
	"strings"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
)

const (
	// KindJump kinked utilization curve
	KindJump = "jump"
	// KindFixed constant rate
	KindFixed = "fixed"
)

// UtilizationRate totalBorrowed / totalSupplied, capped at 1
func UtilizationRate(totalSupplied, totalBorrowed *uint256.Int) (*uint256.Int, error) {
	if totalSupplied == nil || totalSupplied.IsZero() || totalBorrowed == nil || totalBorrowed.IsZero() {
		return fixed.Zero(), nil
	}

	util, err := fixed.DivFixed(totalBorrowed, totalSupplied)
	if err != nil {
		return nil, err
	}

	return fixed.Min(util, fixed.Precision), nil
}

// JumpRate borrow rate grows with utilization by Multiplier up to Kink and
// by JumpMultiplier beyond it
type JumpRate struct {
	BaseRate       *uint256.Int
	Multiplier     *uint256.Int
	JumpMultiplier *uint256.Int
	// zero disables the jump
	Kink *uint256.Int
}

var _ core.RateModel = (*JumpRate)(nil)

// GetBorrowRate base + min(util, kink) * multiplier + max(util - kink, 0) * jumpMultiplier
func (m *JumpRate) GetBorrowRate(totalSupplied, totalBorrowed *uint256.Int) (*uint256.Int, error) {
	util, err := UtilizationRate(totalSupplied, totalBorrowed)
	if err != nil {
		return nil, err
	}

	kink := fixed.Clone(m.Kink)
	if kink.IsZero() || !util.Gt(kink) {
		return linear(m.BaseRate, util, m.Multiplier)
	}

	normal, err := linear(m.BaseRate, kink, m.Multiplier)
	if err != nil {
		return nil, err
	}

	excess := new(uint256.Int).Sub(util, kink)
	return linear(normal, excess, m.JumpMultiplier)
}

// linear base + x * slope
func linear(base, x, slope *uint256.Int) (*uint256.Int, error) {
	y, err := fixed.MulFixed(x, fixed.Clone(slope))
	if err != nil {
		return nil, err
	}

	return fixed.Add(fixed.Clone(base), y)
}

// Fixed constant borrow rate regardless of utilization
type Fixed struct {
	Rate *uint256.Int
}

var _ core.RateModel = (*Fixed)(nil)

func (m *Fixed) GetBorrowRate(totalSupplied, totalBorrowed *uint256.Int) (*uint256.Int, error) {
	return fixed.Clone(m.Rate), nil
}

// Registry rate models by name
type Registry map[string]core.RateModel

var _ core.RateModels = Registry(nil)

// Find rate model by name
func (r Registry) Find(name string) (core.RateModel, bool) {
	m, ok := r[name]
	return m, ok
}

// FromConfig builds the named models of cfgs. An empty kind means jump.
func FromConfig(cfgs map[string]core.RateModelConfig) (Registry, error) {
	r := make(Registry, len(cfgs))
	for name, cfg := range cfgs {
		m, err := build(cfg)
		if err != nil {
			return nil, fmt.Errorf("rate model %s: %w", name, err)
		}

		r[name] = m
	}

	return r, nil
}

func build(cfg core.RateModelConfig) (core.RateModel, error) {
	base, err := fixed.FromDecimal(cfg.BaseRate)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Kind) {
	case KindFixed:
		return &Fixed{Rate: base}, nil
	case KindJump, "":
	default:
		return nil, fmt.Errorf("unknown kind %q: %w", cfg.Kind, core.ErrInvalidParameter)
	}

	m := &JumpRate{BaseRate: base}
	if m.Multiplier, err = fixed.FromDecimal(cfg.Multiplier); err != nil {
		return nil, err
	}

	if m.JumpMultiplier, err = fixed.FromDecimal(cfg.JumpMultiplier); err != nil {
		return nil, err
	}

	if m.Kink, err = fixed.FromDecimal(cfg.Kink); err != nil {
		return nil, err
	}

	if m.Kink.Gt(fixed.Precision) {
		return nil, fmt.Errorf("kink above 1: %w", core.ErrInvalidParameter)
	}

	return m, nil
}
