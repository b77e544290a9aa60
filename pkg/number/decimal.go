package number

import (
	"errors"
	"math"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// MantissaDigits digits of a 1e18 mantissa
const MantissaDigits int32 = 18

// ErrNegative negative decimals have no mantissa
var ErrNegative = errors.New("negative value")

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Sqrt(d decimal.Decimal) decimal.Decimal {
	f, _ := d.Float64()
	f = math.Sqrt(f)
	return decimal.NewFromFloat(f)
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Mantissa d * 10^digits, truncated to an integer
func Mantissa(d decimal.Decimal, digits int32) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}

	v, overflow := uint256.FromBig(d.Shift(digits).Truncate(0).BigInt())
	if overflow {
		return nil, errors.New("value overflows 256 bits")
	}

	return v, nil
}

// MustMantissa panics on invalid values, for constants and config defaults
func MustMantissa(v string, digits int32) *uint256.Int {
	m, err := Mantissa(decimal.RequireFromString(v), digits)
	if err != nil {
		panic(err)
	}

	return m
}

// FromMantissa v / 10^digits
func FromMantissa(v *uint256.Int, digits int32) decimal.Decimal {
	return decimal.NewFromBigInt(v.ToBig(), -digits)
}

// Exp a 1e18 mantissa as a decimal
func Exp(v *uint256.Int) decimal.Decimal {
	return FromMantissa(v, MantissaDigits)
}
