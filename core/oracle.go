package core

//go:generate mockgen -destination mock/mock.go -package mock . PriceOracle,AssetTransfer

import (
	"context"

	"github.com/holiman/uint256"
)

// PriceOracle price collaborator, prices are PRECISION scaled
type PriceOracle interface {
	GetPrice(ctx context.Context, asset string) (*uint256.Int, error)
}

// RateModel interest rate collaborator, returns a PRECISION scaled
// annualized borrow rate
type RateModel interface {
	GetBorrowRate(totalSupplied, totalBorrowed *uint256.Int) (*uint256.Int, error)
}

// RateModels resolves a market's rate model by name
type RateModels interface {
	Find(name string) (RateModel, bool)
}

// AssetTransfer moves underlying assets in and out of the pool vault.
// TransferIn pulls from an account that approved the pool beforehand.
type AssetTransfer interface {
	TransferIn(ctx context.Context, asset, from string, amount *uint256.Int) error
	TransferOut(ctx context.Context, asset, to string, amount *uint256.Int) error
}

// Authorizer admin capability checked by privileged operations
type Authorizer interface {
	IsAdmin(account string) bool
}
