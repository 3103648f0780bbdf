package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/gofrs/uuid"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// DefaultLiquidationIncentive 1.1, a 10% bonus paid in seized collateral
var DefaultLiquidationIncentive = fixed.MustFromString("1.1")

// Config pool parameters
type Config struct {
	// LiquidationIncentive must be greater than fixed.Precision,
	// nil means DefaultLiquidationIncentive
	LiquidationIncentive *uint256.Int
}

// Pool is the single entry point of the lending ledger. Operations are
// serialized and each one commits or rolls back as a whole.
type Pool struct {
	store     core.Store
	oracle    core.PriceOracle
	models    core.RateModels
	transfer  core.AssetTransfer
	auth      core.Authorizer
	clock     clock.Clock
	incentive *uint256.Int

	// held for the whole of one operation, see enter
	mu sync.Mutex

	hmu      sync.RWMutex
	handlers []core.EventHandler
}

// New new pool
func New(
	cfg Config,
	store core.Store,
	oracle core.PriceOracle,
	models core.RateModels,
	transfer core.AssetTransfer,
	auth core.Authorizer,
	clk clock.Clock,
) (*Pool, error) {
	incentive := cfg.LiquidationIncentive
	if incentive == nil {
		incentive = DefaultLiquidationIncentive
	}

	if !incentive.Gt(fixed.Precision) {
		return nil, fmt.Errorf("liquidation incentive %s must exceed 1: %w", fixed.ToDecimal(incentive), core.ErrInvalidParameter)
	}

	if clk == nil {
		clk = clock.New()
	}

	return &Pool{
		store:     store,
		oracle:    oracle,
		models:    models,
		transfer:  transfer,
		auth:      auth,
		clock:     clk,
		incentive: fixed.Clone(incentive),
	}, nil
}

// Subscribe registers a handler invoked for every committed event
func (p *Pool) Subscribe(handler core.EventHandler) {
	p.hmu.Lock()
	defer p.hmu.Unlock()

	p.handlers = append(p.handlers, handler)
}

// LiquidationIncentive premium multiplier paid to liquidators
func (p *Pool) LiquidationIncentive() *uint256.Int {
	return fixed.Clone(p.incentive)
}

// operation stages its ledger writes and returns the event to record and
// the settlement moving assets, nil when there is nothing to move
type operation func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error)

// settlement performs an operation's external transfers. It runs after the
// event is written, as the last step before the transaction commits.
type settlement func(ctx context.Context) error

// execute runs op under the execution lock inside one ledger transaction.
// The event returned by op is persisted in the same transaction, ahead of
// the settlement, and published once it commits and the lock is released.
func (p *Pool) execute(ctx context.Context, op operation) (*core.Event, error) {
	event, err := p.commit(ctx, op)
	if err != nil {
		return nil, err
	}

	p.publish(ctx, event)
	return event, nil
}

func (p *Pool) commit(ctx context.Context, op operation) (*core.Event, error) {
	log := logger.FromContext(ctx)

	release, err := p.enter()
	if err != nil {
		log.WithError(err).Infoln("rejected")
		return nil, err
	}
	defer release()

	var event *core.Event
	err = p.store.Tx(ctx, func(ledger core.Ledger) error {
		e, settle, err := op(ctx, ledger)
		if err != nil {
			return err
		}

		e.TraceID = uuid.Must(uuid.NewV4()).String()
		e.CreatedAt = p.clock.Now()
		if err := ledger.CreateEvent(ctx, e); err != nil {
			log.WithError(err).Errorln("events.Create")
			return err
		}

		if settle != nil {
			if err := settle(ctx); err != nil {
				return err
			}
		}

		event = e
		return nil
	})

	if err != nil {
		var code core.ErrorCode
		if errors.As(err, &code) {
			log.WithError(err).Infoln("aborted")
		} else {
			log.WithError(err).Errorln("aborted")
		}
		return nil, err
	}

	log.WithField("trace_id", event.TraceID).Infoln(event.Type)
	return event, nil
}

func (p *Pool) publish(ctx context.Context, event *core.Event) {
	p.hmu.RLock()
	handlers := p.handlers
	p.hmu.RUnlock()

	for _, h := range handlers {
		h(ctx, event)
	}
}

func (p *Pool) now() int64 {
	return p.clock.Now().Unix()
}

// ListMarket lists asset as a new market. caller must hold the admin
// capability.
func (p *Pool) ListMarket(ctx context.Context, caller, asset, rateModel string, reserveFactor, collateralFactor *uint256.Int) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":         "list-market",
		"caller":     caller,
		"asset":      asset,
		"rate_model": rateModel,
	})
	ctx = logger.WithContext(ctx, log)

	_, err := p.execute(ctx, func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error) {
		market, err := p.listMarket(ctx, ledger, caller, asset, rateModel, reserveFactor, collateralFactor)
		if err != nil {
			return nil, nil, err
		}

		return &core.Event{
			Type:      core.EventMarketListed,
			Asset:     market.Asset,
			RateModel: market.RateModel,
		}, nil, nil
	})

	return err
}

// Supply moves amount of asset from account into the pool
func (p *Pool) Supply(ctx context.Context, account, asset string, amount *uint256.Int) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":      "supply",
		"account": account,
		"asset":   asset,
		"amount":  amountString(amount),
	})
	ctx = logger.WithContext(ctx, log)

	_, err := p.execute(ctx, func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error) {
		market, err := p.requireMarket(ctx, ledger, asset)
		if err != nil {
			return nil, nil, err
		}

		if err := p.accrue(ctx, ledger, market); err != nil {
			return nil, nil, err
		}

		position, err := ledger.FindPosition(ctx, asset, account)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, nil, err
		}

		if err := recordSupply(market, position, amount, p.now()); err != nil {
			return nil, nil, err
		}

		if err := p.save(ctx, ledger, position, market); err != nil {
			return nil, nil, err
		}

		return &core.Event{
			Type:    core.EventSupplied,
			Asset:   asset,
			Account: account,
			Amount:  fixed.Clone(amount),
		}, p.transferIn(asset, account, amount), nil
	})

	return err
}

// Borrow lends amount of asset to account against its supplied collateral
func (p *Pool) Borrow(ctx context.Context, account, asset string, amount *uint256.Int) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":      "borrow",
		"account": account,
		"asset":   asset,
		"amount":  amountString(amount),
	})
	ctx = logger.WithContext(ctx, log)

	_, err := p.execute(ctx, func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error) {
		market, err := p.requireMarket(ctx, ledger, asset)
		if err != nil {
			return nil, nil, err
		}

		if err := p.accrue(ctx, ledger, market); err != nil {
			return nil, nil, err
		}

		if isZero(amount) {
			return nil, nil, core.ErrZeroAmount
		}

		valuation, err := p.valuate(ctx, ledger, account)
		if err != nil {
			return nil, nil, err
		}

		// liquidity is a value, amount a raw quantity of asset: the gate is
		// exact only for assets priced at 1.0
		if liquidity := valuation.Liquidity(); liquidity.Lt(amount) {
			return nil, nil, fmt.Errorf("liquidity %s below %s: %w", liquidity.Dec(), amount.Dec(), core.ErrInsufficientCollateral)
		}

		position, err := ledger.FindPosition(ctx, asset, account)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, nil, err
		}

		if err := recordBorrow(market, position, amount, p.now()); err != nil {
			return nil, nil, err
		}

		if err := p.save(ctx, ledger, position, market); err != nil {
			return nil, nil, err
		}

		return &core.Event{
			Type:    core.EventBorrowed,
			Asset:   asset,
			Account: account,
			Amount:  fixed.Clone(amount),
		}, p.transferOut(asset, account, amount), nil
	})

	return err
}

// Repay pays back up to amount of account's debt in asset and returns the
// amount actually repaid
func (p *Pool) Repay(ctx context.Context, account, asset string, amount *uint256.Int) (*uint256.Int, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":      "repay",
		"account": account,
		"asset":   asset,
		"amount":  amountString(amount),
	})
	ctx = logger.WithContext(ctx, log)

	event, err := p.execute(ctx, func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error) {
		market, err := p.requireMarket(ctx, ledger, asset)
		if err != nil {
			return nil, nil, err
		}

		if err := p.accrue(ctx, ledger, market); err != nil {
			return nil, nil, err
		}

		position, err := ledger.FindPosition(ctx, asset, account)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, nil, err
		}

		repayAmount, err := recordRepay(market, position, fixed.Clone(amount), p.now())
		if err != nil {
			return nil, nil, err
		}

		if err := p.save(ctx, ledger, position, market); err != nil {
			return nil, nil, err
		}

		return &core.Event{
			Type:    core.EventRepaid,
			Asset:   asset,
			Account: account,
			Amount:  repayAmount,
		}, p.transferIn(asset, account, repayAmount), nil
	})

	if err != nil {
		return nil, err
	}

	return fixed.Clone(event.Amount), nil
}

// Withdraw returns amount of account's supplied asset as long as the
// remaining collateral still covers its debt
func (p *Pool) Withdraw(ctx context.Context, account, asset string, amount *uint256.Int) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":      "withdraw",
		"account": account,
		"asset":   asset,
		"amount":  amountString(amount),
	})
	ctx = logger.WithContext(ctx, log)

	_, err := p.execute(ctx, func(ctx context.Context, ledger core.Ledger) (*core.Event, settlement, error) {
		market, err := p.requireMarket(ctx, ledger, asset)
		if err != nil {
			return nil, nil, err
		}

		if err := p.accrue(ctx, ledger, market); err != nil {
			return nil, nil, err
		}

		position, err := ledger.FindPosition(ctx, asset, account)
		if err != nil {
			log.WithError(err).Errorln("positions.Find")
			return nil, nil, err
		}

		amount := fixed.Clone(amount)
		if err := recordWithdraw(market, position, amount, p.now()); err != nil {
			return nil, nil, err
		}

		if err := p.save(ctx, ledger, position, market); err != nil {
			return nil, nil, err
		}

		valuation, err := p.valuate(ctx, ledger, account)
		if err != nil {
			return nil, nil, err
		}

		if !valuation.Solvent() {
			return nil, nil, fmt.Errorf("collateral %s below debt %s: %w",
				valuation.CollateralValue.Dec(), valuation.BorrowValue.Dec(), core.ErrUndercollateralizedWithdrawal)
		}

		return &core.Event{
			Type:    core.EventWithdrawn,
			Asset:   asset,
			Account: account,
			Amount:  amount,
		}, p.transferOut(asset, account, amount), nil
	})

	return err
}

// Accrue brings asset's market up to date without any other change
func (p *Pool) Accrue(ctx context.Context, asset string) (*core.Market, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":    "accrue",
		"asset": asset,
	})
	ctx = logger.WithContext(ctx, log)

	release, err := p.enter()
	if err != nil {
		return nil, err
	}
	defer release()

	var market *core.Market
	err = p.store.Tx(ctx, func(ledger core.Ledger) error {
		m, err := p.requireMarket(ctx, ledger, asset)
		if err != nil {
			return err
		}

		if err := p.accrue(ctx, ledger, m); err != nil {
			return err
		}

		market = m
		return nil
	})

	if err != nil {
		return nil, err
	}

	return market, nil
}

func (p *Pool) requireMarket(ctx context.Context, ledger core.Ledger, asset string) (*core.Market, error) {
	market, err := ledger.FindMarket(ctx, asset)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("markets.Find")
		return nil, err
	}

	if market == nil || !market.Listed {
		return nil, fmt.Errorf("%s: %w", asset, core.ErrMarketNotListed)
	}

	return market, nil
}

func (p *Pool) save(ctx context.Context, ledger core.Ledger, position *core.Position, market *core.Market) error {
	log := logger.FromContext(ctx)

	if err := ledger.SavePosition(ctx, position); err != nil {
		log.WithError(err).Errorln("positions.Save")
		return err
	}

	market.UpdatedAt = p.clock.Now()
	if err := ledger.UpdateMarket(ctx, market); err != nil {
		log.WithError(err).Errorln("markets.Update")
		return err
	}

	return nil
}

func (p *Pool) transferIn(asset, from string, amount *uint256.Int) settlement {
	return func(ctx context.Context) error {
		if isZero(amount) {
			return nil
		}

		if err := p.transfer.TransferIn(ctx, asset, from, amount); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("transfer in")
			return err
		}

		return nil
	}
}

func (p *Pool) transferOut(asset, to string, amount *uint256.Int) settlement {
	return func(ctx context.Context) error {
		if isZero(amount) {
			return nil
		}

		if err := p.transfer.TransferOut(ctx, asset, to, amount); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("transfer out")
			return err
		}

		return nil
	}
}

func isZero(x *uint256.Int) bool {
	return x == nil || x.IsZero()
}

func amountString(x *uint256.Int) string {
	if x == nil {
		return "0"
	}

	return x.Dec()
}
