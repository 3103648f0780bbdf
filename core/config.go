package core

import (
	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lending config
type Config struct {
	App        App                        `json:"app"`
	DB         db.Config                  `json:"db"`
	Pool       Pool                       `json:"pool"`
	RateModels map[string]RateModelConfig `json:"rate_models"`
	Oracle     Oracle                     `json:"oracle"`
	Admins     []string                   `json:"admins"`
}

// IsAdmin check if the account is admin
func (c *Config) IsAdmin(account string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	return govalidator.IsIn(account, c.Admins...)
}

// App app config
type App struct {
	Name string `json:"name"`
	// Store memory or db
	Store string `json:"store"`
}

// Pool pool config
type Pool struct {
	// account holding the pooled assets
	Vault string `json:"vault"`
	// premium paid to liquidators, must be greater than 1, default 1.1
	LiquidationIncentive decimal.Decimal `json:"liquidation_incentive"`
}

// RateModelConfig rate model config
type RateModelConfig struct {
	// jump or fixed
	Kind string `json:"kind"`
	// annualized borrow rate at zero utilization
	BaseRate decimal.Decimal `json:"base_rate"`
	// slope of the rate below the kink
	Multiplier decimal.Decimal `json:"multiplier"`
	// slope of the rate above the kink
	JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
	Kink           decimal.Decimal `json:"kink"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point"`
	// seconds a fetched price stays cached
	CacheTTL int64 `json:"cache_ttl"`
	// static prices keyed by asset, used when EndPoint is empty
	Prices map[string]decimal.Decimal `json:"prices"`
}
