package codes

import (
	"errors"
	"strconv"

	"moneymarket/core"

	"github.com/jinzhu/gorm"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
	// HintKey detail of the failure
	HintKey = "hint"

	// InvalidArguments invalid arguments
	InvalidArguments = 10001
)

// With with specified error
func With(err error, code int) twirp.Error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get custom code of twerr, the engine code when it carries one
func Get(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	switch twerr.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	}
}

// Twirp classify err
func Twirp(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	if gorm.IsRecordNotFoundError(err) {
		return twirp.NotFoundError("record not found")
	}

	code := core.CodeOf(err)
	if code == core.ErrUnknown {
		return twirp.InternalErrorWith(err).WithMeta(HintKey, err.Error())
	}

	return With(twirp.NewError(twirpCode(code), code.Name()).WithMeta(HintKey, err.Error()), int(code))
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrUnauthorized:
		return twirp.PermissionDenied
	case core.ErrMarketNotFound, core.ErrOracleNotFound:
		return twirp.NotFound
	case core.ErrInvalidAmount, core.ErrUnknownAction:
		return twirp.InvalidArgument
	case core.ErrMathOverflow, core.ErrInsufficientCollateralBalance:
		return twirp.Internal
	default:
		return twirp.FailedPrecondition
	}
}
