package oracle

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"lending/core"
	"lending/pkg/fixed"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// PriceTicker price feed response
type PriceTicker struct {
	Asset string          `json:"asset"`
	Price decimal.Decimal `json:"price"`
}

// Remote pulls prices from an HTTP price feed,
// GET {endpoint}/api/prices/{asset}
type Remote struct {
	endpoint string
}

var _ core.PriceOracle = (*Remote)(nil)

// NewRemote new remote oracle
func NewRemote(endpoint string) *Remote {
	return &Remote{endpoint: strings.TrimSuffix(endpoint, "/")}
}

// PullPriceTicker fetch the latest ticker of asset
func (r *Remote) PullPriceTicker(ctx context.Context, asset string) (*PriceTicker, error) {
	uri := fmt.Sprintf("%s/api/prices/%s", r.endpoint, url.PathEscape(asset))

	var ticker PriceTicker
	if _, err := resthttp.Execute(resthttp.Request(ctx), "GET", uri, nil, &ticker); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("pull price ticker", asset)
		return nil, err
	}

	return &ticker, nil
}

func (r *Remote) GetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	ticker, err := r.PullPriceTicker(ctx, asset)
	if err != nil {
		return nil, err
	}

	if !ticker.Price.IsPositive() {
		return nil, fmt.Errorf("price %s of %s: %w", ticker.Price, asset, core.ErrInvalidPrice)
	}

	return fixed.FromDecimal(ticker.Price)
}
