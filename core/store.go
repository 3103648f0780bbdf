package core

import (
	"context"
)

// Ledger transactional view over the persisted pool state
type Ledger interface {
	// FindMarket returns nil without error if the asset was never listed
	FindMarket(ctx context.Context, asset string) (*Market, error)
	// ListMarkets all listed markets in listing order
	ListMarkets(ctx context.Context) ([]*Market, error)
	CreateMarket(ctx context.Context, market *Market) error
	UpdateMarket(ctx context.Context, market *Market) error

	// FindPosition returns a zero valued position if none was recorded
	FindPosition(ctx context.Context, asset, account string) (*Position, error)
	SavePosition(ctx context.Context, position *Position) error

	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context, query EventQuery) ([]*Event, error)
}

// EventQuery filters ListEvents, zero values match everything
type EventQuery struct {
	Asset   string
	Account string
	// Offset id, events with a greater id are returned
	Offset int64
	Limit  int
}

// Store durable pool state. Tx runs fn against a ledger whose writes become
// visible only if fn returns nil.
type Store interface {
	Ledger
	Tx(ctx context.Context, fn func(ledger Ledger) error) error
}
