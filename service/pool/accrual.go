package pool

import (
	"context"
	"fmt"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

var accrualDivisor = new(uint256.Int).Mul(fixed.SecondsPerYear, fixed.Precision)

// accrue credits the interest owed since the market's last accrual to its
// total borrowed. It is a no-op when no time has elapsed. Individual
// positions are not touched and the reserve factor is not skimmed.
func (p *Pool) accrue(ctx context.Context, ledger core.Ledger, market *core.Market) error {
	now := p.now()
	if now <= market.LastAccrualTimestamp {
		return nil
	}

	model, ok := p.models.Find(market.RateModel)
	if !ok {
		return fmt.Errorf("rate model %q: %w", market.RateModel, core.ErrInvalidParameter)
	}

	rate, err := model.GetBorrowRate(market.TotalSupplied, market.TotalBorrowed)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("GetBorrowRate")
		return err
	}

	interest, err := interestAccumulated(market.TotalBorrowed, rate, uint64(now-market.LastAccrualTimestamp))
	if err != nil {
		return err
	}

	total, err := fixed.Add(market.TotalBorrowed, interest)
	if err != nil {
		return err
	}

	market.TotalBorrowed = total
	market.LastAccrualTimestamp = now
	market.UpdatedAt = p.clock.Now()

	if err := ledger.UpdateMarket(ctx, market); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("markets.Update")
		return err
	}

	return nil
}

// interestAccumulated borrowed * rate * elapsed / SecondsPerYear / Precision
func interestAccumulated(borrowed, rate *uint256.Int, elapsed uint64) (*uint256.Int, error) {
	if borrowed.IsZero() || rate == nil || rate.IsZero() || elapsed == 0 {
		return fixed.Zero(), nil
	}

	product, err := fixed.Mul(borrowed, rate)
	if err != nil {
		return nil, err
	}

	return fixed.MulDiv(product, uint256.NewInt(elapsed), accrualDivisor)
}
