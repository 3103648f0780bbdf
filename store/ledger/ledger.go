// Package ledger persists markets, positions and events in a SQL database.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"lending/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	pqUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// isUniqueViolation reports a duplicate key error from any dialect db.Config
// accepts
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(market{})
		if err := tx.AutoMigrate(market{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_markets_asset", "asset").Error; err != nil {
			return err
		}

		tx = db.Update().Model(position{})
		if err := tx.AutoMigrate(position{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_positions_asset_account", "asset", "account").Error; err != nil {
			return err
		}

		tx = db.Update().Model(event{})
		if err := tx.AutoMigrate(event{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_events_trace_id", "trace_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_events_asset", "asset").Error; err != nil {
			return err
		}

		return nil
	})
}

type ledgerStore struct {
	db *db.DB
}

// New new sql ledger
func New(db *db.DB) core.Store {
	return &ledgerStore{db: db}
}

func (s *ledgerStore) Tx(ctx context.Context, fn func(ledger core.Ledger) error) error {
	return s.db.Tx(func(tx *db.DB) error {
		return fn(&ledgerStore{db: tx})
	})
}

func (s *ledgerStore) FindMarket(ctx context.Context, asset string) (*core.Market, error) {
	var row market
	if err := s.db.View().Where("asset = ?", asset).First(&row).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return row.decode()
}

func (s *ledgerStore) ListMarkets(ctx context.Context) ([]*core.Market, error) {
	var rows []*market
	if err := s.db.View().Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	markets := make([]*core.Market, 0, len(rows))
	for _, row := range rows {
		m, err := row.decode()
		if err != nil {
			return nil, err
		}

		markets = append(markets, m)
	}

	return markets, nil
}

func (s *ledgerStore) CreateMarket(ctx context.Context, m *core.Market) error {
	row := toMarketRow(m)
	row.ID = 0
	if err := s.db.Update().Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", m.Asset, core.ErrAlreadyListed)
		}

		return err
	}

	m.Seq = row.ID
	return nil
}

func toUpdateParams(m *core.Market) map[string]interface{} {
	row := toMarketRow(m)
	return map[string]interface{}{
		"total_supplied":         row.TotalSupplied,
		"total_borrowed":         row.TotalBorrowed,
		"last_accrual_timestamp": row.LastAccrualTimestamp,
		"updated_at":             row.UpdatedAt,
	}
}

// UpdateMarket optimistic update guarded by the market version
func (s *ledgerStore) UpdateMarket(ctx context.Context, m *core.Market) error {
	updates := toUpdateParams(m)
	updates["version"] = m.Version + 1

	tx := s.db.Update().Model(market{}).Where("asset = ? AND version = ?", m.Asset, m.Version).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf("market %s: %w", m.Asset, db.ErrOptimisticLock)
	}

	m.Version++
	return nil
}

func (s *ledgerStore) FindPosition(ctx context.Context, asset, account string) (*core.Position, error) {
	var row position
	if err := s.db.View().Where("asset = ? AND account = ?", asset, account).First(&row).Error; err != nil {
		if store.IsErrNotFound(err) {
			return core.NewPosition(asset, account), nil
		}

		return nil, err
	}

	return row.decode()
}

func (s *ledgerStore) SavePosition(ctx context.Context, p *core.Position) error {
	row := toPositionRow(p)
	return s.db.Update().
		Where("asset = ? AND account = ?", row.Asset, row.Account).
		Assign(map[string]interface{}{
			"supplied":              row.Supplied,
			"borrowed":              row.Borrowed,
			"last_update_timestamp": row.LastUpdateTimestamp,
		}).
		FirstOrCreate(row).Error
}

func (s *ledgerStore) CreateEvent(ctx context.Context, e *core.Event) error {
	row := toEventRow(e)
	row.ID = 0
	if err := s.db.Update().Create(row).Error; err != nil {
		return err
	}

	e.ID = row.ID
	return nil
}

func (s *ledgerStore) ListEvents(ctx context.Context, query core.EventQuery) ([]*core.Event, error) {
	tx := s.db.View().Where("id > ?", query.Offset)
	if query.Asset != "" {
		tx = tx.Where("asset = ? OR collateral_asset = ?", query.Asset, query.Asset)
	}

	if query.Account != "" {
		tx = tx.Where("account = ? OR liquidator = ?", query.Account, query.Account)
	}

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var rows []*event
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]*core.Event, 0, len(rows))
	for _, row := range rows {
		e, err := row.decode()
		if err != nil {
			return nil, err
		}

		events = append(events, e)
	}

	return events, nil
}
