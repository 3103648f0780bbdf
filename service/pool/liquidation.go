package pool

import (
	"context"
	"fmt"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Liquidate repays repayAmount of borrower's debt in assetBorrowed on behalf
// of liquidator and pays the liquidator borrower's collateral in
// assetCollateral worth the repaid value times the liquidation incentive.
//
// Seized collateral is not capped at the borrower's supplied balance, a
// seizure larger than the balance fails with ErrArithmeticUnderflow.
// It returns the seized amount.
func (p *Pool) Liquidate(ctx context.Context, liquidator, borrower, assetBorrowed, assetCollateral string, repayAmount *uint256.Int) (*uint256.Int, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":               "liquidate",
		"liquidator":       liquidator,
		"borrower":         borrower,
		"asset_borrowed":   assetBorrowed,
		"asset_collateral": assetCollateral,
		"amount":           amountString(repayAmount),
	})
	ctx = logger.WithContext(ctx, log)

	event, err := p.execute(ctx, func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error) {
		borrowMarket, err := p.requireMarket(ctx, ledger, assetBorrowed)
		if err != nil {
			return nil, nil, err
		}

		supplyMarket := borrowMarket
		if assetCollateral != assetBorrowed {
			if supplyMarket, err = p.requireMarket(ctx, ledger, assetCollateral); err != nil {
				return nil, nil, err
			}
		}

		if isZero(repayAmount) {
			return nil, nil, core.ErrZeroAmount
		}

		valuation, err := p.valuate(ctx, ledger, borrower)
		if err != nil {
			return nil, nil, err
		}

		if ok, err := valuation.Liquidatable(); err != nil {
			return nil, nil, err
		} else if !ok {
			return nil, nil, fmt.Errorf("%s: %w", borrower, core.ErrNotLiquidatable)
		}

		if err := p.accrue(ctx, ledger, borrowMarket); err != nil {
			return nil, nil, err
		}

		if supplyMarket != borrowMarket {
			if err := p.accrue(ctx, ledger, supplyMarket); err != nil {
				return nil, nil, err
			}
		}

		borrow, err := ledger.FindPosition(ctx, assetBorrowed, borrower)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, nil, err
		}

		if repayAmount.Gt(borrow.Borrowed) {
			return nil, nil, fmt.Errorf("debt %s, repay %s: %w", borrow.Borrowed.Dec(), repayAmount.Dec(), core.ErrExcessiveRepayment)
		}

		seizeAmount, err := p.seizeAmount(ctx, assetBorrowed, assetCollateral, repayAmount)
		if err != nil {
			return nil, nil, err
		}

		now := p.now()
		if err := reduceDebt(borrowMarket, borrow, repayAmount, now); err != nil {
			return nil, nil, err
		}

		if err := p.save(ctx, ledger, borrow, borrowMarket); err != nil {
			return nil, nil, err
		}

		// read after saving so a same asset liquidation sees the repaid debt
		supply, err := ledger.FindPosition(ctx, assetCollateral, borrower)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, nil, err
		}

		if err := reduceCollateral(supplyMarket, supply, seizeAmount, now); err != nil {
			return nil, nil, fmt.Errorf("seize %s of %s supplied: %w", seizeAmount.Dec(), supply.Supplied.Dec(), err)
		}

		if err := p.save(ctx, ledger, supply, supplyMarket); err != nil {
			return nil, nil, err
		}

		settle := func(ctx context.Context) error {
			return p.settleLiquidation(ctx, liquidator, assetBorrowed, assetCollateral, repayAmount, seizeAmount)
		}

		return &core.Event{
			Type:            core.EventLiquidated,
			Liquidator:      liquidator,
			Account:         borrower,
			Asset:           assetBorrowed,
			CollateralAsset: assetCollateral,
			Amount:          fixed.Clone(repayAmount),
			Seized:          seizeAmount,
		}, settle, nil
	})

	if err != nil {
		return nil, err
	}

	return fixed.Clone(event.Seized), nil
}

// seizeAmount repay * priceBorrowed * incentive / priceCollateral / PRECISION
func (p *Pool) seizeAmount(ctx context.Context, assetBorrowed, assetCollateral string, repayAmount *uint256.Int) (*uint256.Int, error) {
	priceBorrowed, err := p.price(ctx, assetBorrowed)
	if err != nil {
		return nil, err
	}

	priceCollateral, err := p.price(ctx, assetCollateral)
	if err != nil {
		return nil, err
	}

	repayValue, err := fixed.Mul(repayAmount, priceBorrowed)
	if err != nil {
		return nil, err
	}

	premium, err := fixed.MulDiv(repayValue, p.incentive, priceCollateral)
	if err != nil {
		return nil, err
	}

	return new(uint256.Int).Div(premium, fixed.Precision), nil
}

// settleLiquidation pulls the repayment from the liquidator, then pays out
// the seized collateral. A failed payout refunds the repayment.
func (p *Pool) settleLiquidation(ctx context.Context, liquidator, assetBorrowed, assetCollateral string, repayAmount, seizeAmount *uint256.Int) error {
	log := logger.FromContext(ctx)

	if err := p.transfer.TransferIn(ctx, assetBorrowed, liquidator, repayAmount); err != nil {
		log.WithError(err).Errorln("transfer in")
		return err
	}

	if seizeAmount.IsZero() {
		return nil
	}

	if err := p.transfer.TransferOut(ctx, assetCollateral, liquidator, seizeAmount); err != nil {
		log.WithError(err).Errorln("transfer out")
		if e := p.transfer.TransferOut(ctx, assetBorrowed, liquidator, repayAmount); e != nil {
			log.WithError(e).Errorln("refund repayment")
		}
		return err
	}

	return nil
}
