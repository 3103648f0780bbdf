package oracle

import (
	"context"
	"time"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/bluele/gcache"
	"github.com/holiman/uint256"
	"golang.org/x/sync/singleflight"
)

// Cache keeps fetched prices for ttl and collapses concurrent fetches of
// the same asset into one call
func Cache(oracle core.PriceOracle, ttl time.Duration) core.PriceOracle {
	return &cacheOracle{
		PriceOracle: oracle,
		cache:       gcache.New(1024).LRU().Expiration(ttl).Build(),
		sf:          &singleflight.Group{},
	}
}

type cacheOracle struct {
	core.PriceOracle
	cache gcache.Cache
	sf    *singleflight.Group
}

func (c *cacheOracle) GetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	if v, err := c.cache.Get(asset); err == nil {
		if price, ok := v.(*uint256.Int); ok {
			return fixed.Clone(price), nil
		}
	}

	v, err, _ := c.sf.Do(asset, func() (interface{}, error) {
		price, err := c.PriceOracle.GetPrice(ctx, asset)
		if err != nil {
			return nil, err
		}

		_ = c.cache.Set(asset, price)
		return price, nil
	})

	if err != nil {
		return nil, err
	}

	return fixed.Clone(v.(*uint256.Int)), nil
}
