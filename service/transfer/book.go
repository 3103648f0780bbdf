// Package transfer moves assets between accounts and the pool vault on an
// in-memory balance book.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lending/core"
	"lending/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInsufficientFunds sender balance below the amount
	ErrInsufficientFunds = errors.New("transfer: insufficient funds")
	// ErrInsufficientAllowance sender did not approve the pool for the amount
	ErrInsufficientAllowance = errors.New("transfer: insufficient allowance")
)

type key struct {
	asset   string
	account string
}

// Book balances and pool allowances per (asset, account). The vault
// account holds everything supplied to the pool.
type Book struct {
	vault string

	mu         sync.Mutex
	balances   map[key]*uint256.Int
	allowances map[key]*uint256.Int
}

var _ core.AssetTransfer = (*Book)(nil)

// NewBook new book with vault as the pool account
func NewBook(vault string) *Book {
	return &Book{
		vault:      vault,
		balances:   map[key]*uint256.Int{},
		allowances: map[key]*uint256.Int{},
	}
}

// Vault pool account
func (b *Book) Vault() string {
	return b.vault
}

// Mint credits amount of asset to account
func (b *Book) Mint(asset, account string, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	k := key{asset, account}
	balance, err := fixed.Add(b.balance(k), amount)
	if err != nil {
		return err
	}

	b.balances[k] = balance
	return nil
}

// Approve lets the pool pull up to amount of asset from account
func (b *Book) Approve(asset, account string, amount *uint256.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.allowances[key{asset, account}] = fixed.Clone(amount)
}

// BalanceOf account's balance of asset
func (b *Book) BalanceOf(asset, account string) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return fixed.Clone(b.balance(key{asset, account}))
}

// Allowance what the pool may still pull from account
func (b *Book) Allowance(asset, account string) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return fixed.Clone(b.allowances[key{asset, account}])
}

// TransferIn pulls amount of asset from an approving account into the vault
func (b *Book) TransferIn(ctx context.Context, asset, from string, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	k := key{asset, from}
	allowance := fixed.Clone(b.allowances[k])
	if allowance.Lt(amount) {
		return fmt.Errorf("%s approved %s of %s, need %s: %w", from, allowance.Dec(), asset, amount.Dec(), ErrInsufficientAllowance)
	}

	if err := b.move(asset, from, b.vault, amount); err != nil {
		return err
	}

	b.allowances[k] = new(uint256.Int).Sub(allowance, amount)
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"asset":  asset,
		"from":   from,
		"amount": amount.Dec(),
	}).Debugln("transfer in")
	return nil
}

// TransferOut pays amount of asset from the vault to account
func (b *Book) TransferOut(ctx context.Context, asset, to string, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.move(asset, b.vault, to, amount); err != nil {
		return err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"asset":  asset,
		"to":     to,
		"amount": amount.Dec(),
	}).Debugln("transfer out")
	return nil
}

func (b *Book) balance(k key) *uint256.Int {
	if v, ok := b.balances[k]; ok {
		return v
	}

	return fixed.Zero()
}

// move caller holds mu
func (b *Book) move(asset, from, to string, amount *uint256.Int) error {
	fk, tk := key{asset, from}, key{asset, to}

	src := b.balance(fk)
	if src.Lt(amount) {
		return fmt.Errorf("%s holds %s of %s, need %s: %w", from, src.Dec(), asset, amount.Dec(), ErrInsufficientFunds)
	}

	b.balances[fk] = new(uint256.Int).Sub(src, amount)

	dst, err := fixed.Add(b.balance(tk), amount)
	if err != nil {
		b.balances[fk] = src
		return err
	}

	b.balances[tk] = dst
	return nil
}
