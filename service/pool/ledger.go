package pool

import (
	"fmt"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
)

// The record functions mutate a market and one of its positions in memory.
// Both are left untouched when an error is returned. Solvency is checked by
// the callers.

func recordSupply(market *core.Market, position *core.Position, amount *uint256.Int, now int64) error {
	if isZero(amount) {
		return core.ErrZeroAmount
	}

	supplied, err := fixed.Add(position.Supplied, amount)
	if err != nil {
		return err
	}

	total, err := fixed.Add(market.TotalSupplied, amount)
	if err != nil {
		return err
	}

	position.Supplied, market.TotalSupplied = supplied, total
	position.LastUpdateTimestamp = now
	return nil
}

func recordBorrow(market *core.Market, position *core.Position, amount *uint256.Int, now int64) error {
	if isZero(amount) {
		return core.ErrZeroAmount
	}

	borrowed, err := fixed.Add(position.Borrowed, amount)
	if err != nil {
		return err
	}

	total, err := fixed.Add(market.TotalBorrowed, amount)
	if err != nil {
		return err
	}

	position.Borrowed, market.TotalBorrowed = borrowed, total
	position.LastUpdateTimestamp = now
	return nil
}

// recordRepay clamps amount to the outstanding debt and returns what was
// actually repaid
func recordRepay(market *core.Market, position *core.Position, amount *uint256.Int, now int64) (*uint256.Int, error) {
	repayAmount := fixed.Min(amount, position.Borrowed)
	if err := reduceDebt(market, position, repayAmount, now); err != nil {
		return nil, err
	}

	return repayAmount, nil
}

func recordWithdraw(market *core.Market, position *core.Position, amount *uint256.Int, now int64) error {
	if position.Supplied.Lt(amount) {
		return fmt.Errorf("supplied %s, withdraw %s: %w", position.Supplied.Dec(), amount.Dec(), core.ErrInsufficientBalance)
	}

	return reduceCollateral(market, position, amount, now)
}

// reduceDebt removes exactly amount of debt, failing on underflow
func reduceDebt(market *core.Market, position *core.Position, amount *uint256.Int, now int64) error {
	borrowed, err := fixed.Sub(position.Borrowed, amount)
	if err != nil {
		return err
	}

	total, err := fixed.Sub(market.TotalBorrowed, amount)
	if err != nil {
		return err
	}

	position.Borrowed, market.TotalBorrowed = borrowed, total
	position.LastUpdateTimestamp = now
	return nil
}

// reduceCollateral removes exactly amount of supply, failing on underflow
func reduceCollateral(market *core.Market, position *core.Position, amount *uint256.Int, now int64) error {
	supplied, err := fixed.Sub(position.Supplied, amount)
	if err != nil {
		return err
	}

	total, err := fixed.Sub(market.TotalSupplied, amount)
	if err != nil {
		return err
	}

	position.Supplied, market.TotalSupplied = supplied, total
	position.LastUpdateTimestamp = now
	return nil
}
