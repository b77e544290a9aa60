package number

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/holiman/uint256"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			_k := Decimal(k)
			c := Ceil(Decimal(k), 2)
			t.Log(k, c, _k.Round(2))
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestMantissa(t *testing.T) {
	data := map[string]uint64{
		"0.75":                  0.75e18,
		"1.08":                  1.08e18,
		"0.0000000000000000019": 1,
		"0":                     0,
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			m, err := Mantissa(Decimal(k), MantissaDigits)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, m.Uint64())
		})
	}

	_, err := Mantissa(Decimal("-1"), MantissaDigits)
	assert.Equal(t, ErrNegative, err)
}

func TestFromMantissa(t *testing.T) {
	assert.Equal(t, "0.75", Exp(uint256.NewInt(0.75e18)).String())
	assert.Equal(t, "2000", FromMantissa(MustMantissa("2000", 6), 6).String())
}
