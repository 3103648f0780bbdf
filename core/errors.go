package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller lacks the admin capability
	ErrUnauthorized ErrorCode = 100001
	// ErrReentrantCall nested call into a pool while an operation is in flight
	ErrReentrantCall ErrorCode = 100002

	// ErrAlreadyListed market already listed
	ErrAlreadyListed ErrorCode = 100100
	// ErrInvalidParameter invalid listing parameter
	ErrInvalidParameter ErrorCode = 100101
	// ErrMarketNotListed no market
	ErrMarketNotListed ErrorCode = 100102
	// ErrZeroAmount amount must be positive
	ErrZeroAmount ErrorCode = 100103
	// ErrInsufficientCollateral borrow exceeds capacity
	ErrInsufficientCollateral ErrorCode = 100104
	// ErrInsufficientBalance withdraw exceeds supplied balance
	ErrInsufficientBalance ErrorCode = 100105
	// ErrUndercollateralizedWithdrawal withdraw leaves the account short
	ErrUndercollateralizedWithdrawal ErrorCode = 100106
	// ErrNotLiquidatable account is healthy
	ErrNotLiquidatable ErrorCode = 100107
	// ErrExcessiveRepayment liquidation repays more than the debt
	ErrExcessiveRepayment ErrorCode = 100108
	// ErrInvalidPrice oracle returned no price
	ErrInvalidPrice ErrorCode = 100109

	// ErrArithmeticOverflow result out of range
	ErrArithmeticOverflow ErrorCode = 100200
	// ErrArithmeticUnderflow result below zero
	ErrArithmeticUnderflow ErrorCode = 100201
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:                       "unknown",
	ErrUnauthorized:                  "unauthorized",
	ErrReentrantCall:                 "reentrant call",
	ErrAlreadyListed:                 "market already listed",
	ErrInvalidParameter:              "invalid parameter",
	ErrMarketNotListed:               "market not listed",
	ErrZeroAmount:                    "amount must be positive",
	ErrInsufficientCollateral:        "insufficient collateral",
	ErrInsufficientBalance:           "insufficient balance",
	ErrUndercollateralizedWithdrawal: "undercollateralized withdrawal",
	ErrNotLiquidatable:               "account not liquidatable",
	ErrExcessiveRepayment:            "excessive repayment",
	ErrInvalidPrice:                  "invalid price",
	ErrArithmeticOverflow:            "arithmetic overflow",
	ErrArithmeticUnderflow:           "arithmetic underflow",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return e.String()
}
