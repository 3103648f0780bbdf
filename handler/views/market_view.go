package views

import (
	"lending/core"
	"lending/internal/ratemodel"
	"lending/pkg/fixed"

	"github.com/shopspring/decimal"
)

// Market market view, raw amounts as base 10 strings
type Market struct {
	Seq                  int64           `json:"seq"`
	Asset                string          `json:"asset"`
	TotalSupplied        string          `json:"total_supplied"`
	TotalBorrowed        string          `json:"total_borrowed"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor"`
	CollateralFactor     decimal.Decimal `json:"collateral_factor"`
	RateModel            string          `json:"rate_model"`
	Utilization          decimal.Decimal `json:"utilization"`
	BorrowRate           decimal.Decimal `json:"borrow_rate"`
	LastAccrualTimestamp int64           `json:"last_accrual_timestamp"`
}

// MarketView market view, rates are left zero when the model is unknown
func MarketView(m *core.Market, models core.RateModels) Market {
	view := Market{
		Seq:                  m.Seq,
		Asset:                m.Asset,
		TotalSupplied:        fixed.Clone(m.TotalSupplied).Dec(),
		TotalBorrowed:        fixed.Clone(m.TotalBorrowed).Dec(),
		ReserveFactor:        fixed.ToDecimal(m.ReserveFactor),
		CollateralFactor:     fixed.ToDecimal(m.CollateralFactor),
		RateModel:            m.RateModel,
		LastAccrualTimestamp: m.LastAccrualTimestamp,
	}

	if util, err := ratemodel.UtilizationRate(m.TotalSupplied, m.TotalBorrowed); err == nil {
		view.Utilization = fixed.ToDecimal(util)
	}

	if model, ok := models.Find(m.RateModel); ok {
		if rate, err := model.GetBorrowRate(m.TotalSupplied, m.TotalBorrowed); err == nil {
			view.BorrowRate = fixed.ToDecimal(rate)
		}
	}

	return view
}
