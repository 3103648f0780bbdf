package pool

import (
	"context"
	"fmt"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Valuation price denominated view of an account across all listed markets
type Valuation struct {
	Account string
	// non-zero positions in listing order
	Positions       []*core.Position
	CollateralValue *uint256.Int
	BorrowValue     *uint256.Int
}

// Liquidity max(collateral - borrow, 0)
func (v *Valuation) Liquidity() *uint256.Int {
	if v.CollateralValue.Gt(v.BorrowValue) {
		return new(uint256.Int).Sub(v.CollateralValue, v.BorrowValue)
	}

	return fixed.Zero()
}

// Solvent collateral value covers borrow value
func (v *Valuation) Solvent() bool {
	return !v.CollateralValue.Lt(v.BorrowValue)
}

// Health collateral * PRECISION / borrow, PRECISION when there is no debt
func (v *Valuation) Health() (*uint256.Int, error) {
	if v.BorrowValue.IsZero() {
		return fixed.One(), nil
	}

	return fixed.DivFixed(v.CollateralValue, v.BorrowValue)
}

// Liquidatable health below PRECISION
func (v *Valuation) Liquidatable() (bool, error) {
	health, err := v.Health()
	if err != nil {
		return false, err
	}

	return health.Lt(fixed.Precision), nil
}

// valuate walks the listed markets in order. Only markets where the account
// holds a balance are priced.
func (p *Pool) valuate(ctx context.Context, ledger core.Ledger, account string) (*Valuation, error) {
	log := logger.FromContext(ctx)

	markets, err := ledger.ListMarkets(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.List")
		return nil, err
	}

	v := &Valuation{
		Account:         account,
		Positions:       []*core.Position{},
		CollateralValue: fixed.Zero(),
		BorrowValue:     fixed.Zero(),
	}

	for _, market := range markets {
		position, err := ledger.FindPosition(ctx, market.Asset, account)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, err
		}

		if position.IsZero() {
			continue
		}

		price, err := p.price(ctx, market.Asset)
		if err != nil {
			return nil, err
		}

		collateral, err := collateralValue(position.Supplied, market.CollateralFactor, price)
		if err != nil {
			return nil, err
		}

		borrow, err := fixed.MulFixed(position.Borrowed, price)
		if err != nil {
			return nil, err
		}

		if v.CollateralValue, err = fixed.Add(v.CollateralValue, collateral); err != nil {
			return nil, err
		}

		if v.BorrowValue, err = fixed.Add(v.BorrowValue, borrow); err != nil {
			return nil, err
		}

		v.Positions = append(v.Positions, position)
	}

	return v, nil
}

// collateralValue supplied * collateralFactor / PRECISION * price / PRECISION
func collateralValue(supplied, collateralFactor, price *uint256.Int) (*uint256.Int, error) {
	weighted, err := fixed.MulFixed(supplied, collateralFactor)
	if err != nil {
		return nil, err
	}

	return fixed.MulFixed(weighted, price)
}

func (p *Pool) price(ctx context.Context, asset string) (*uint256.Int, error) {
	price, err := p.oracle.GetPrice(ctx, asset)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("oracle.GetPrice", asset)
		return nil, err
	}

	if price == nil {
		return nil, fmt.Errorf("%s: %w", asset, core.ErrInvalidPrice)
	}

	return price, nil
}

// Valuate account with the committed ledger state
func (p *Pool) Valuate(ctx context.Context, account string) (*Valuation, error) {
	return p.valuate(ctx, p.store, account)
}

// AccountCollateralValue sum of collateral factor weighted supplied value
func (p *Pool) AccountCollateralValue(ctx context.Context, account string) (*uint256.Int, error) {
	v, err := p.Valuate(ctx, account)
	if err != nil {
		return nil, err
	}

	return v.CollateralValue, nil
}

// AccountBorrowValue sum of borrowed value
func (p *Pool) AccountBorrowValue(ctx context.Context, account string) (*uint256.Int, error) {
	v, err := p.Valuate(ctx, account)
	if err != nil {
		return nil, err
	}

	return v.BorrowValue, nil
}

// AccountLiquidity borrow capacity left, never negative
func (p *Pool) AccountLiquidity(ctx context.Context, account string) (*uint256.Int, error) {
	v, err := p.Valuate(ctx, account)
	if err != nil {
		return nil, err
	}

	return v.Liquidity(), nil
}

// AccountHealth health factor, below PRECISION means liquidatable
func (p *Pool) AccountHealth(ctx context.Context, account string) (*uint256.Int, error) {
	v, err := p.Valuate(ctx, account)
	if err != nil {
		return nil, err
	}

	return v.Health()
}
