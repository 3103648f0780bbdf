package fixed

import (
	"errors"
	"testing"

	"lending/core"

	"github.com/bmizerany/assert"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

func TestFromDecimal(t *testing.T) {
	data := map[string]string{
		"1":                     "1000000000000000000",
		"0.8":                   "800000000000000000",
		"1.1":                   "1100000000000000000",
		"0.0000000000000000019": "1",
		"0":                     "0",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			z, err := FromDecimal(decimal.RequireFromString(k))
			assert.Equal(t, nil, err)
			assert.Equal(t, v, z.Dec(), "should truncate to 18 decimals")
		})
	}
}

func TestFromDecimalNegative(t *testing.T) {
	_, err := FromDecimal(decimal.NewFromInt(-1))
	assert.Equal(t, ErrNegative, err)
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, "0.5", ToDecimal(MustFromString("0.5")).String())
	assert.Equal(t, "0", ToDecimal(nil).String())
}

func TestSubUnderflow(t *testing.T) {
	_, err := Sub(Int(1), Int(2))
	assert.T(t, errors.Is(err, core.ErrArithmeticUnderflow))

	z, err := Sub(Int(2), Int(2))
	assert.Equal(t, nil, err)
	assert.T(t, z.IsZero())
}

func TestAddOverflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	_, err := Add(max, Int(1))
	assert.T(t, errors.Is(err, core.ErrArithmeticOverflow))
}

func TestMulDivWidensIntermediate(t *testing.T) {
	// 2^200 * 2^100 overflows 256 bits, the quotient does not
	x := new(uint256.Int).Lsh(Int(1), 200)
	y := new(uint256.Int).Lsh(Int(1), 100)
	d := new(uint256.Int).Lsh(Int(1), 90)

	z, err := MulDiv(x, y, d)
	assert.Equal(t, nil, err)
	assert.Equal(t, new(uint256.Int).Lsh(Int(1), 210).Dec(), z.Dec())

	_, err = Mul(x, y)
	assert.T(t, errors.Is(err, core.ErrArithmeticOverflow))
}

func TestMulDivByZero(t *testing.T) {
	_, err := MulDiv(Int(1), Int(1), Zero())
	assert.T(t, errors.Is(err, core.ErrArithmeticOverflow))
}

func TestMulFixedRoundsDown(t *testing.T) {
	// 3 * 0.5 = 1.5 -> 1
	z, err := MulFixed(Int(3), MustFromString("0.5"))
	assert.Equal(t, nil, err)
	assert.Equal(t, "1", z.Dec())

	h, err := DivFixed(Int(400), Int(500))
	assert.Equal(t, nil, err)
	assert.Equal(t, "800000000000000000", h.Dec())
}

func TestMin(t *testing.T) {
	assert.Equal(t, "3", Min(Int(3), Int(5)).Dec())
	assert.Equal(t, "3", Min(Int(5), Int(3)).Dec())
}
