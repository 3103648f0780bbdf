package core

import (
	"time"

	"github.com/holiman/uint256"
)

// Market market info, one per listed asset
type Market struct {
	// Seq listing order, assigned when the market is listed
	Seq           int64        `json:"seq"`
	Asset         string       `json:"asset"`
	TotalSupplied *uint256.Int `json:"total_supplied"`
	TotalBorrowed *uint256.Int `json:"total_borrowed"`
	// unix seconds, only moved forward by accrual
	LastAccrualTimestamp int64 `json:"last_accrual_timestamp"`
	// fixed point fraction in [0, PRECISION], stored but not skimmed
	ReserveFactor *uint256.Int `json:"reserve_factor"`
	// fixed point fraction in [0, PRECISION]
	CollateralFactor *uint256.Int `json:"collateral_factor"`
	// name of the rate model resolved through the pool's model registry
	RateModel string    `json:"rate_model"`
	Listed    bool      `json:"listed"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone deep copy
func (m *Market) Clone() *Market {
	c := *m
	c.TotalSupplied = cloneInt(m.TotalSupplied)
	c.TotalBorrowed = cloneInt(m.TotalBorrowed)
	c.ReserveFactor = cloneInt(m.ReserveFactor)
	c.CollateralFactor = cloneInt(m.CollateralFactor)
	return &c
}

func cloneInt(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}

	return new(uint256.Int).Set(x)
}
