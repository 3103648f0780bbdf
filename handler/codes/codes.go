package codes

import (
	"errors"
	"strconv"

	"lending/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// From twirp error of err, pool error codes travel as custom code
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	switch code {
	case core.ErrMarketNotListed:
		twerr = twirp.NotFoundError(err.Error())
	case core.ErrUnauthorized:
		twerr = twirp.NewError(twirp.PermissionDenied, err.Error())
	case core.ErrInvalidParameter, core.ErrZeroAmount:
		twerr = twirp.NewError(twirp.InvalidArgument, err.Error())
	case core.ErrReentrantCall:
		twerr = twirp.NewError(twirp.Unavailable, err.Error())
	case core.ErrUnknown, core.ErrArithmeticOverflow, core.ErrInvalidPrice:
		twerr = twirp.InternalError(err.Error())
	default:
		twerr = twirp.NewError(twirp.FailedPrecondition, err.Error())
	}

	return With(twerr, int(code)).(twirp.Error)
}

// Custom custom code attached by With, falls back to Get
func Custom(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	return Get(twerr.Code())
}
