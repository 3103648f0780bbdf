package pool

import (
	"context"
	"fmt"
	"strings"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

func (p *Pool) listMarket(ctx context.Context, ledger core.Ledger, caller, asset, rateModel string, reserveFactor, collateralFactor *uint256.Int) (*core.Market, error) {
	log := logger.FromContext(ctx)

	if p.auth == nil || !p.auth.IsAdmin(caller) {
		return nil, fmt.Errorf("%s: %w", caller, core.ErrUnauthorized)
	}

	if strings.TrimSpace(asset) == "" {
		return nil, fmt.Errorf("empty asset: %w", core.ErrInvalidParameter)
	}

	existing, err := ledger.FindMarket(ctx, asset)
	if err != nil {
		log.WithError(err).Errorln("markets.Find")
		return nil, err
	}

	if existing != nil && existing.Listed {
		return nil, fmt.Errorf("%s: %w", asset, core.ErrAlreadyListed)
	}

	if reserveFactor == nil || reserveFactor.Gt(fixed.Precision) {
		return nil, fmt.Errorf("reserve factor: %w", core.ErrInvalidParameter)
	}

	if collateralFactor == nil || collateralFactor.Gt(fixed.Precision) {
		return nil, fmt.Errorf("collateral factor: %w", core.ErrInvalidParameter)
	}

	if _, ok := p.models.Find(rateModel); !ok {
		return nil, fmt.Errorf("rate model %q: %w", rateModel, core.ErrInvalidParameter)
	}

	now := p.clock.Now()
	market := &core.Market{
		Asset:                asset,
		TotalSupplied:        fixed.Zero(),
		TotalBorrowed:        fixed.Zero(),
		LastAccrualTimestamp: now.Unix(),
		ReserveFactor:        fixed.Clone(reserveFactor),
		CollateralFactor:     fixed.Clone(collateralFactor),
		RateModel:            rateModel,
		Listed:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := ledger.CreateMarket(ctx, market); err != nil {
		log.WithError(err).Errorln("markets.Create")
		return nil, err
	}

	return market, nil
}

// Market listed market of asset
func (p *Pool) Market(ctx context.Context, asset string) (*core.Market, error) {
	return p.requireMarket(ctx, p.store, asset)
}

// Markets listed markets in listing order
func (p *Pool) Markets(ctx context.Context) ([]*core.Market, error) {
	return p.store.ListMarkets(ctx)
}

// Position account's balances in asset, zero valued if never touched
func (p *Pool) Position(ctx context.Context, asset, account string) (*core.Position, error) {
	return p.store.FindPosition(ctx, asset, account)
}

// Events committed events matching query
func (p *Pool) Events(ctx context.Context, query core.EventQuery) ([]*core.Event, error) {
	return p.store.ListEvents(ctx, query)
}
