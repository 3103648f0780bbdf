package views

import (
	"lending/pkg/fixed"
	"lending/service/pool"

	"github.com/shopspring/decimal"
)

type Position struct {
	Asset    string `json:"asset"`
	Supplied string `json:"supplied"`
	Borrowed string `json:"borrowed"`
}

type Account struct {
	Account         string          `json:"account"`
	Positions       []Position      `json:"positions"`
	CollateralValue string          `json:"collateral_value"`
	BorrowValue     string          `json:"borrow_value"`
	Liquidity       string          `json:"liquidity"`
	Health          decimal.Decimal `json:"health"`
	Liquidatable    bool            `json:"liquidatable"`
}

func AccountView(v *pool.Valuation) (Account, error) {
	health, err := v.Health()
	if err != nil {
		return Account{}, err
	}

	view := Account{
		Account:         v.Account,
		Positions:       make([]Position, 0, len(v.Positions)),
		CollateralValue: v.CollateralValue.Dec(),
		BorrowValue:     v.BorrowValue.Dec(),
		Liquidity:       v.Liquidity().Dec(),
		Health:          fixed.ToDecimal(health),
		Liquidatable:    health.Lt(fixed.Precision),
	}

	for _, p := range v.Positions {
		view.Positions = append(view.Positions, Position{
			Asset:    p.Asset,
			Supplied: fixed.Clone(p.Supplied).Dec(),
			Borrowed: fixed.Clone(p.Borrowed).Dec(),
		})
	}

	return view, nil
}
