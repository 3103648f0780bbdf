package cmd

import (
	"time"

	"lending/core"
	"lending/internal/ratemodel"
	"lending/pkg/fixed"
	"lending/service/oracle"
	"lending/service/pool"
	"lending/service/transfer"
	"lending/store/ledger"
	"lending/store/memory"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

// storeDB selects the sql ledger, anything else keeps it in memory
const storeDB = "db"

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// provideStore nil database means the in memory ledger
func provideStore(database *db.DB) core.Store {
	if database == nil {
		return memory.New()
	}

	return ledger.New(database)
}

func provideRateModels() ratemodel.Registry {
	models, err := ratemodel.FromConfig(cfg.RateModels)
	if err != nil {
		panic(err)
	}

	return models
}

func provideOracle() core.PriceOracle {
	if cfg.Oracle.EndPoint == "" {
		s, err := oracle.StaticFromConfig(cfg.Oracle.Prices)
		if err != nil {
			panic(err)
		}

		return s
	}

	ttl := time.Duration(cfg.Oracle.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	return oracle.Cache(oracle.NewRemote(cfg.Oracle.EndPoint), ttl)
}

func provideTransfer() *transfer.Book {
	vault := cfg.Pool.Vault
	if vault == "" {
		vault = "vault"
	}

	return transfer.NewBook(vault)
}

func providePool(store core.Store, models core.RateModels, assets core.AssetTransfer) *pool.Pool {
	var poolCfg pool.Config
	if !cfg.Pool.LiquidationIncentive.IsZero() {
		incentive, err := fixed.FromDecimal(cfg.Pool.LiquidationIncentive)
		if err != nil {
			panic(err)
		}

		poolCfg.LiquidationIncentive = incentive
	}

	p, err := pool.New(poolCfg, store, provideOracle(), models, assets, provideConfig(), clock.New())
	if err != nil {
		panic(err)
	}

	return p
}
