// Package fixed implements the PRECISION-scaled integer arithmetic shared by
// the ledger. Every helper returns a fresh value and rounds down.
package fixed

import (
	"errors"
	"fmt"

	"lending/core"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Decimals number of decimal places represented by Precision
const Decimals = 18

var (
	// Precision fixed point unit, 1.0 == 1e18
	Precision = uint256.NewInt(1_000_000_000_000_000_000)
	// SecondsPerYear annualization divisor used by accrual
	SecondsPerYear = uint256.NewInt(365 * 24 * 60 * 60)
)

// Zero returns a new zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// One returns a new Precision value
func One() *uint256.Int {
	return new(uint256.Int).Set(Precision)
}

// Int returns n as a raw integer
func Int(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}

// Clone copies x, treating nil as zero
func Clone(x *uint256.Int) *uint256.Int {
	if x == nil {
		return Zero()
	}

	return new(uint256.Int).Set(x)
}

// Add x + y
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// Sub x - y, failing instead of wrapping below zero
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, core.ErrArithmeticUnderflow
	}

	return z, nil
}

// Mul x * y
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// MulDiv x * y / d with a 512-bit intermediate product.
// A zero divisor is reported as overflow.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("division by zero: %w", core.ErrArithmeticOverflow)
	}

	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// MulFixed x * y / Precision
func MulFixed(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDiv(x, y, Precision)
}

// DivFixed x * Precision / y
func DivFixed(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDiv(x, Precision, y)
}

// Min smaller of x and y
func Min(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return Clone(x)
	}

	return Clone(y)
}

// ErrNegative negative decimals have no fixed point representation
var ErrNegative = errors.New("fixed: negative value")

// FromDecimal converts a decimal such as 0.8 into its Precision-scaled
// integer, truncating digits beyond Decimals.
func FromDecimal(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}

	z, overflow := uint256.FromBig(d.Shift(Decimals).Truncate(0).BigInt())
	if overflow {
		return nil, core.ErrArithmeticOverflow
	}

	return z, nil
}

// MustFromString parses a decimal literal, panics on malformed input
func MustFromString(s string) *uint256.Int {
	z, err := FromDecimal(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}

	return z
}

// ToDecimal renders a Precision-scaled integer as a decimal
func ToDecimal(x *uint256.Int) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(x.ToBig(), -Decimals)
}

// Parse reads a base-10 raw integer, the empty string is zero
func Parse(s string) (*uint256.Int, error) {
	if s == "" {
		return Zero(), nil
	}

	return uint256.FromDecimal(s)
}
