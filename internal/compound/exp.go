package compound

import (
	"moneymarket/core"

	"github.com/holiman/uint256"
)

// ExpScale mantissa of 1.0
const ExpScale uint64 = 1e18

// One 1.0 as a fresh mantissa
func One() *uint256.Int {
	return uint256.NewInt(ExpScale)
}

// Add x + y
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, core.ErrMathOverflow
	}

	return z, nil
}

// Sub x - y, underflow is an error
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, core.ErrMathOverflow
	}

	return z, nil
}

// Mul x * y
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, core.ErrMathOverflow
	}

	return z, nil
}

// MulDiv x * y / d with a 512 bit intermediate, truncated
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, core.ErrMathOverflow
	}

	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, core.ErrMathOverflow
	}

	return z, nil
}

// MulExp x * y / 1e18, truncated. x or y is a mantissa.
func MulExp(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDiv(x, y, One())
}

// DivExp x * 1e18 / y, truncated
func DivExp(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDiv(x, One(), y)
}

// MulExp3 x * y * z, all mantissas
func MulExp3(x, y, z *uint256.Int) (*uint256.Int, error) {
	xy, err := MulExp(x, y)
	if err != nil {
		return nil, err
	}

	return MulExp(xy, z)
}

// Min smaller of x and y
func Min(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return x.Clone()
	}

	return y.Clone()
}
