package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// EventType observable pool notification
type EventType string

const (
	EventMarketListed EventType = "MarketListed"
	EventSupplied     EventType = "Supplied"
	EventBorrowed     EventType = "Borrowed"
	EventRepaid       EventType = "Repaid"
	EventWithdrawn    EventType = "Withdrawn"
	EventLiquidated   EventType = "Liquidated"
)

// Event one notification emitted by a committed pool operation.
//
// For Liquidated, Asset is the borrowed asset, CollateralAsset the seized
// one, Account the borrower and Liquidator the caller. Seized carries the
// collateral amount paid to the liquidator and is informational only.
type Event struct {
	ID              int64        `json:"id"`
	TraceID         string       `json:"trace_id"`
	Type            EventType    `json:"type"`
	Asset           string       `json:"asset"`
	CollateralAsset string       `json:"collateral_asset,omitempty"`
	Account         string       `json:"account,omitempty"`
	Liquidator      string       `json:"liquidator,omitempty"`
	RateModel       string       `json:"rate_model,omitempty"`
	Amount          *uint256.Int `json:"amount,omitempty"`
	Seized          *uint256.Int `json:"seized,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Fields the event arguments in their published order
func (e *Event) Fields() []interface{} {
	switch e.Type {
	case EventMarketListed:
		return []interface{}{e.Asset, e.RateModel}
	case EventLiquidated:
		return []interface{}{e.Liquidator, e.Account, e.Asset, e.CollateralAsset, e.Amount}
	default:
		return []interface{}{e.Asset, e.Account, e.Amount}
	}
}

// EventHandler receives events after the operation that emitted them commits
type EventHandler func(ctx context.Context, event *Event)

// Clone deep copy
func (e *Event) Clone() *Event {
	c := *e
	if e.Amount != nil {
		c.Amount = cloneInt(e.Amount)
	}
	if e.Seized != nil {
		c.Seized = cloneInt(e.Seized)
	}
	return &c
}
