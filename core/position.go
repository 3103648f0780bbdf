package core

import (
	"github.com/holiman/uint256"
)

// Position supplied and borrowed balances of one account in one market
type Position struct {
	Asset    string       `json:"asset"`
	Account  string       `json:"account"`
	Supplied *uint256.Int `json:"supplied"`
	Borrowed *uint256.Int `json:"borrowed"`
	// unix seconds of the last ledger mutation
	LastUpdateTimestamp int64 `json:"last_update_timestamp"`
}

// NewPosition zero valued position
func NewPosition(asset, account string) *Position {
	return &Position{
		Asset:    asset,
		Account:  account,
		Supplied: new(uint256.Int),
		Borrowed: new(uint256.Int),
	}
}

// Clone deep copy
func (p *Position) Clone() *Position {
	c := *p
	c.Supplied = cloneInt(p.Supplied)
	c.Borrowed = cloneInt(p.Borrowed)
	return &c
}

// IsZero no supplied and no borrowed balance
func (p *Position) IsZero() bool {
	return p.Supplied.IsZero() && p.Borrowed.IsZero()
}
