package compound

import (
	"testing"

	"moneymarket/core"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedArithmetic(t *testing.T) {
	max := new(uint256.Int).SetAllOne()

	_, err := Add(max, uint256.NewInt(1))
	assert.Equal(t, core.ErrMathOverflow, err)

	_, err = Sub(uint256.NewInt(1), uint256.NewInt(2))
	assert.Equal(t, core.ErrMathOverflow, err)

	_, err = Mul(max, uint256.NewInt(2))
	assert.Equal(t, core.ErrMathOverflow, err)

	_, err = DivExp(uint256.NewInt(1), new(uint256.Int))
	assert.Equal(t, core.ErrMathOverflow, err)

	v, err := Sub(uint256.NewInt(5), uint256.NewInt(2))
	require.Nil(t, err)
	assert.Equal(t, uint64(3), v.Uint64())
}

func TestMulDivWideIntermediate(t *testing.T) {
	// x * y overflows 256 bits, the quotient does not
	x := new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	y := new(uint256.Int).Lsh(uint256.NewInt(1), 100)
	d := new(uint256.Int).Lsh(uint256.NewInt(1), 90)

	z, err := MulDiv(x, y, d)
	require.Nil(t, err)
	assert.Equal(t, new(uint256.Int).Lsh(uint256.NewInt(1), 210), z)
}

func TestMulExpTruncates(t *testing.T) {
	// 1.5 * 3 wei = 4.5 wei -> 4
	v, err := MulExp(uint256.NewInt(1.5e18), uint256.NewInt(3))
	require.Nil(t, err)
	assert.Equal(t, uint64(4), v.Uint64())

	// 10 / 4.0 = 2.5 -> 2
	v, err = DivExp(uint256.NewInt(10), uint256.NewInt(4e18))
	require.Nil(t, err)
	assert.Equal(t, uint64(2), v.Uint64())

	v, err = MulExp3(uint256.NewInt(0.5e18), uint256.NewInt(2e18), uint256.NewInt(1000))
	require.Nil(t, err)
	assert.Equal(t, uint64(1000), v.Uint64())
}
