package memory

import (
	"context"
	"errors"
	"fmt"

	"lending/core"
)

// ErrMarketExists CreateMarket on an asset that already has a market
var ErrMarketExists = errors.New("memory: market exists")

type txLedger struct {
	base *Store

	markets      map[string]*core.Market
	baseVersions map[string]int64
	created      map[string]bool
	order        []string
	positions    map[positionKey]*core.Position
	events       []*core.Event
}

func (tx *txLedger) FindMarket(ctx context.Context, asset string) (*core.Market, error) {
	if m, ok := tx.markets[asset]; ok {
		return m.Clone(), nil
	}

	return tx.base.FindMarket(ctx, asset)
}

func (tx *txLedger) ListMarkets(ctx context.Context) ([]*core.Market, error) {
	markets, err := tx.base.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}

	for idx, m := range markets {
		if staged, ok := tx.markets[m.Asset]; ok {
			markets[idx] = staged.Clone()
		}
	}

	for _, asset := range tx.order {
		markets = append(markets, tx.markets[asset].Clone())
	}

	return markets, nil
}

func (tx *txLedger) CreateMarket(ctx context.Context, market *core.Market) error {
	existing, err := tx.FindMarket(ctx, market.Asset)
	if err != nil {
		return err
	}

	if existing != nil {
		return fmt.Errorf("%s: %w", market.Asset, ErrMarketExists)
	}

	market.Seq = int64(tx.base.marketCount() + len(tx.order) + 1)
	tx.created[market.Asset] = true
	tx.order = append(tx.order, market.Asset)
	tx.markets[market.Asset] = market.Clone()
	return nil
}

func (tx *txLedger) UpdateMarket(ctx context.Context, market *core.Market) error {
	current, err := tx.FindMarket(ctx, market.Asset)
	if err != nil {
		return err
	}

	if current == nil || current.Version != market.Version {
		return fmt.Errorf("%s: %w", market.Asset, ErrVersionConflict)
	}

	if _, staged := tx.markets[market.Asset]; !staged {
		tx.baseVersions[market.Asset] = current.Version
	}

	market.Version++
	tx.markets[market.Asset] = market.Clone()
	return nil
}

func (tx *txLedger) FindPosition(ctx context.Context, asset, account string) (*core.Position, error) {
	if p, ok := tx.positions[positionKey{asset, account}]; ok {
		return p.Clone(), nil
	}

	return tx.base.FindPosition(ctx, asset, account)
}

func (tx *txLedger) SavePosition(ctx context.Context, position *core.Position) error {
	tx.positions[positionKey{position.Asset, position.Account}] = position.Clone()
	return nil
}

func (tx *txLedger) CreateEvent(ctx context.Context, event *core.Event) error {
	tx.events = append(tx.events, event)
	return nil
}

func (tx *txLedger) ListEvents(ctx context.Context, query core.EventQuery) ([]*core.Event, error) {
	return tx.base.ListEvents(ctx, query)
}
