// Package oracle provides core.PriceOracle implementations: fixed prices,
// an HTTP price feed and a TTL cache in front of either.
package oracle

import (
	"context"
	"fmt"
	"sync"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Static prices set by hand
type Static struct {
	mu     sync.RWMutex
	prices map[string]*uint256.Int
}

var _ core.PriceOracle = (*Static)(nil)

// NewStatic new static oracle
func NewStatic() *Static {
	return &Static{prices: map[string]*uint256.Int{}}
}

// StaticFromConfig static oracle seeded with decimal prices such as 1.5
func StaticFromConfig(prices map[string]decimal.Decimal) (*Static, error) {
	s := NewStatic()
	for asset, d := range prices {
		price, err := fixed.FromDecimal(d)
		if err != nil {
			return nil, fmt.Errorf("price of %s: %w", asset, err)
		}

		s.SetPrice(asset, price)
	}

	return s, nil
}

// SetPrice PRECISION scaled price of asset
func (s *Static) SetPrice(asset string, price *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices[asset] = fixed.Clone(price)
}

func (s *Static) GetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.prices[asset]
	if !ok {
		return nil, fmt.Errorf("no price for %s: %w", asset, core.ErrInvalidPrice)
	}

	return fixed.Clone(price), nil
}
