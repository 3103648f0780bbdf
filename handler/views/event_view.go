package views

import (
	"lending/core"
)

type Event struct {
	ID              int64          `json:"id"`
	TraceID         string         `json:"trace_id"`
	Type            core.EventType `json:"type"`
	Asset           string         `json:"asset"`
	CollateralAsset string         `json:"collateral_asset,omitempty"`
	Account         string         `json:"account,omitempty"`
	Liquidator      string         `json:"liquidator,omitempty"`
	RateModel       string         `json:"rate_model,omitempty"`
	Amount          string         `json:"amount,omitempty"`
	Seized          string         `json:"seized,omitempty"`
	CreatedAt       int64          `json:"created_at"`
}

func EventView(e *core.Event) Event {
	view := Event{
		ID:              e.ID,
		TraceID:         e.TraceID,
		Type:            e.Type,
		Asset:           e.Asset,
		CollateralAsset: e.CollateralAsset,
		Account:         e.Account,
		Liquidator:      e.Liquidator,
		RateModel:       e.RateModel,
		CreatedAt:       e.CreatedAt.Unix(),
	}

	if e.Amount != nil {
		view.Amount = e.Amount.Dec()
	}

	if e.Seized != nil {
		view.Seized = e.Seized.Dec()
	}

	return view
}
