package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

// amounts are stored as base 10 strings, a uint256 needs up to 78 digits

type market struct {
	ID                   int64     `sql:"PRIMARY_KEY"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int64  `sql:"NOT NULL"`
	Asset                string `sql:"size:64;NOT NULL"`
	TotalSupplied        string `sql:"type:varchar(80);NOT NULL"`
	TotalBorrowed        string `sql:"type:varchar(80);NOT NULL"`
	LastAccrualTimestamp int64  `sql:"NOT NULL"`
	ReserveFactor        string `sql:"type:varchar(80);NOT NULL"`
	CollateralFactor     string `sql:"type:varchar(80);NOT NULL"`
	RateModel            string `sql:"size:64;NOT NULL"`
	Listed               bool
}

func (market) TableName() string {
	return "markets"
}

type position struct {
	ID                  int64 `sql:"PRIMARY_KEY"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Asset               string `sql:"size:64;NOT NULL"`
	Account             string `sql:"size:64;NOT NULL"`
	Supplied            string `sql:"type:varchar(80);NOT NULL"`
	Borrowed            string `sql:"type:varchar(80);NOT NULL"`
	LastUpdateTimestamp int64  `sql:"NOT NULL"`
}

func (position) TableName() string {
	return "positions"
}

type event struct {
	ID              int64 `sql:"PRIMARY_KEY"`
	CreatedAt       time.Time
	TraceID         string `sql:"size:36;NOT NULL"`
	Type            string `sql:"size:24;NOT NULL"`
	Asset           string `sql:"size:64"`
	CollateralAsset string `sql:"size:64"`
	Account         string `sql:"size:64"`
	Liquidator      string `sql:"size:64"`
	RateModel       string `sql:"size:64"`
	Amount          string `sql:"type:varchar(80)"`
	Seized          string `sql:"type:varchar(80)"`
	// published arguments in order
	Args types.JSONText `sql:"type:TEXT"`
}

func (event) TableName() string {
	return "events"
}

func toMarketRow(m *core.Market) *market {
	return &market{
		ID:                   m.Seq,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		Version:              m.Version,
		Asset:                m.Asset,
		TotalSupplied:        dec(m.TotalSupplied),
		TotalBorrowed:        dec(m.TotalBorrowed),
		LastAccrualTimestamp: m.LastAccrualTimestamp,
		ReserveFactor:        dec(m.ReserveFactor),
		CollateralFactor:     dec(m.CollateralFactor),
		RateModel:            m.RateModel,
		Listed:               m.Listed,
	}
}

func (row *market) decode() (*core.Market, error) {
	var d decoder
	m := &core.Market{
		Seq:                  row.ID,
		Asset:                row.Asset,
		TotalSupplied:        d.int(row.TotalSupplied),
		TotalBorrowed:        d.int(row.TotalBorrowed),
		LastAccrualTimestamp: row.LastAccrualTimestamp,
		ReserveFactor:        d.int(row.ReserveFactor),
		CollateralFactor:     d.int(row.CollateralFactor),
		RateModel:            row.RateModel,
		Listed:               row.Listed,
		Version:              row.Version,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}

	if d.err != nil {
		return nil, fmt.Errorf("market %s: %w", row.Asset, d.err)
	}

	return m, nil
}

func toPositionRow(p *core.Position) *position {
	return &position{
		Asset:               p.Asset,
		Account:             p.Account,
		Supplied:            dec(p.Supplied),
		Borrowed:            dec(p.Borrowed),
		LastUpdateTimestamp: p.LastUpdateTimestamp,
	}
}

func (row *position) decode() (*core.Position, error) {
	var d decoder
	p := &core.Position{
		Asset:               row.Asset,
		Account:             row.Account,
		Supplied:            d.int(row.Supplied),
		Borrowed:            d.int(row.Borrowed),
		LastUpdateTimestamp: row.LastUpdateTimestamp,
	}

	if d.err != nil {
		return nil, fmt.Errorf("position %s/%s: %w", row.Asset, row.Account, d.err)
	}

	return p, nil
}

func toEventRow(e *core.Event) *event {
	row := &event{
		ID:              e.ID,
		CreatedAt:       e.CreatedAt,
		TraceID:         e.TraceID,
		Type:            string(e.Type),
		Asset:           e.Asset,
		CollateralAsset: e.CollateralAsset,
		Account:         e.Account,
		Liquidator:      e.Liquidator,
		RateModel:       e.RateModel,
	}

	if e.Amount != nil {
		row.Amount = e.Amount.Dec()
	}

	if e.Seized != nil {
		row.Seized = e.Seized.Dec()
	}

	row.Args, _ = json.Marshal(eventArgs(e))
	return row
}

func eventArgs(e *core.Event) []string {
	fields := e.Fields()
	args := make([]string, 0, len(fields))
	for _, f := range fields {
		switch v := f.(type) {
		case *uint256.Int:
			args = append(args, fixed.Clone(v).Dec())
		default:
			args = append(args, fmt.Sprint(v))
		}
	}

	return args
}

func (row *event) decode() (*core.Event, error) {
	var d decoder
	e := &core.Event{
		ID:              row.ID,
		TraceID:         row.TraceID,
		Type:            core.EventType(row.Type),
		Asset:           row.Asset,
		CollateralAsset: row.CollateralAsset,
		Account:         row.Account,
		Liquidator:      row.Liquidator,
		RateModel:       row.RateModel,
		CreatedAt:       row.CreatedAt,
	}

	if row.Amount != "" {
		e.Amount = d.int(row.Amount)
	}

	if row.Seized != "" {
		e.Seized = d.int(row.Seized)
	}

	if d.err != nil {
		return nil, fmt.Errorf("event %d: %w", row.ID, d.err)
	}

	return e, nil
}

func dec(x *uint256.Int) string {
	return fixed.Clone(x).Dec()
}

// decoder keeps the first parse error
type decoder struct {
	err error
}

func (d *decoder) int(s string) *uint256.Int {
	if d.err != nil {
		return nil
	}

	v, err := fixed.Parse(s)
	if err != nil {
		d.err = fmt.Errorf("parse %q: %w", s, err)
		return nil
	}

	return v
}
