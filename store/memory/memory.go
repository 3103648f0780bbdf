// Package memory keeps the pool ledger in process memory. Transactions
// stage their writes in an overlay that is merged on success.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"lending/core"
)

// ErrVersionConflict market was updated by someone else since it was read
var ErrVersionConflict = errors.New("memory: market version conflict")

type positionKey struct {
	asset   string
	account string
}

type state struct {
	markets   map[string]*core.Market
	order     []string
	positions map[positionKey]*core.Position
	events    []*core.Event
}

// Store in memory ledger
type Store struct {
	mu    sync.RWMutex
	state state
}

// New new memory store
func New() *Store {
	return &Store{
		state: state{
			markets:   map[string]*core.Market{},
			positions: map[positionKey]*core.Position{},
		},
	}
}

var _ core.Store = (*Store)(nil)

func (s *Store) FindMarket(ctx context.Context, asset string) (*core.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.state.markets[asset]; ok {
		return m.Clone(), nil
	}

	return nil, nil
}

func (s *Store) ListMarkets(ctx context.Context) ([]*core.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	markets := make([]*core.Market, 0, len(s.state.order))
	for _, asset := range s.state.order {
		markets = append(markets, s.state.markets[asset].Clone())
	}

	return markets, nil
}

func (s *Store) marketCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.state.order)
}

func (s *Store) CreateMarket(ctx context.Context, market *core.Market) error {
	return s.Tx(ctx, func(ledger core.Ledger) error {
		return ledger.CreateMarket(ctx, market)
	})
}

func (s *Store) UpdateMarket(ctx context.Context, market *core.Market) error {
	return s.Tx(ctx, func(ledger core.Ledger) error {
		return ledger.UpdateMarket(ctx, market)
	})
}

func (s *Store) FindPosition(ctx context.Context, asset, account string) (*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.state.positions[positionKey{asset, account}]; ok {
		return p.Clone(), nil
	}

	return core.NewPosition(asset, account), nil
}

func (s *Store) SavePosition(ctx context.Context, position *core.Position) error {
	return s.Tx(ctx, func(ledger core.Ledger) error {
		return ledger.SavePosition(ctx, position)
	})
}

func (s *Store) CreateEvent(ctx context.Context, event *core.Event) error {
	return s.Tx(ctx, func(ledger core.Ledger) error {
		return ledger.CreateEvent(ctx, event)
	})
}

func (s *Store) ListEvents(ctx context.Context, query core.EventQuery) ([]*core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filterEvents(s.state.events, query), nil
}

// Tx stages writes made through ledger and applies them only if fn succeeds
func (s *Store) Tx(ctx context.Context, fn func(ledger core.Ledger) error) error {
	tx := &txLedger{
		base:         s,
		markets:      map[string]*core.Market{},
		baseVersions: map[string]int64{},
		created:      map[string]bool{},
		positions:    map[positionKey]*core.Position{},
	}

	if err := fn(tx); err != nil {
		return err
	}

	return s.commit(tx)
}

func (s *Store) commit(tx *txLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for asset := range tx.markets {
		cur, ok := s.state.markets[asset]
		if tx.created[asset] && ok {
			return fmt.Errorf("%s: %w", asset, ErrVersionConflict)
		}

		if v, touched := tx.baseVersions[asset]; touched && (!ok || cur.Version != v) {
			return fmt.Errorf("%s: %w", asset, ErrVersionConflict)
		}
	}

	for asset, m := range tx.markets {
		s.state.markets[asset] = m
	}

	s.state.order = append(s.state.order, tx.order...)

	for key, p := range tx.positions {
		s.state.positions[key] = p
	}

	nextID := int64(len(s.state.events))
	for _, e := range tx.events {
		nextID++
		e.ID = nextID
		s.state.events = append(s.state.events, e.Clone())
	}

	return nil
}

func filterEvents(events []*core.Event, query core.EventQuery) []*core.Event {
	out := []*core.Event{}
	for _, e := range events {
		if e.ID <= query.Offset {
			continue
		}

		if query.Asset != "" && e.Asset != query.Asset && e.CollateralAsset != query.Asset {
			continue
		}

		if query.Account != "" && e.Account != query.Account && e.Liquidator != query.Account {
			continue
		}

		out = append(out, e.Clone())
		if query.Limit > 0 && len(out) >= query.Limit {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
