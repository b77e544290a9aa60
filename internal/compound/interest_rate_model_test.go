package compound

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() JumpRateModel {
	var m JumpRateModel
	m.BaseRatePerBlock.SetUint64(0.01e18)
	m.MultiplierPerBlock.SetUint64(0.1e18)
	m.JumpMultiplierPerBlock.SetUint64(1e18)
	m.Kink.SetUint64(0.8e18)
	return m
}

func u(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestNewJumpRateModel(t *testing.T) {
	m := NewJumpRateModel(u(0.05e18), u(0.12e18), u(4e18), u(0.8e18))
	assert.Equal(t, uint64(23782343987), m.BaseRatePerBlock.Uint64())
	assert.Equal(t, uint64(57077625570), m.MultiplierPerBlock.Uint64())
	assert.Equal(t, uint64(1902587519025), m.JumpMultiplierPerBlock.Uint64())
	assert.Equal(t, uint64(0.8e18), m.Kink.Uint64())
}

func TestUtilizationRate(t *testing.T) {
	cases := []struct {
		name          string
		cash, borrows uint64
		want          uint64
	}{
		{"empty", 0, 0, 0},
		{"no borrows", 100, 0, 0},
		{"half", 100, 100, 0.5e18},
		{"no cash", 0, 100, 1e18},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := UtilizationRate(u(c.cash), u(c.borrows))
			require.Nil(t, err)
			assert.Equal(t, c.want, r.Uint64())
		})
	}
}

func TestBorrowRate(t *testing.T) {
	m := testModel()
	cases := []struct {
		name          string
		cash, borrows uint64
		want          uint64
	}{
		{"idle", 100, 0, 0.01e18},
		{"below kink", 100, 100, 0.06e18},
		{"at kink", 20, 80, 0.09e18},
		{"above kink", 10, 90, 0.19e18},
		{"fully utilized", 0, 100, 0.29e18},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := m.BorrowRate(u(c.cash), u(c.borrows), u(0))
			require.Nil(t, err)
			assert.Equal(t, c.want, r.Uint64())
		})
	}
}

func TestBorrowRateMonotone(t *testing.T) {
	m := testModel()
	prev := new(uint256.Int)
	for borrows := uint64(0); borrows <= 100; borrows += 5 {
		r, err := m.BorrowRate(u(100-borrows), u(borrows), u(0))
		require.Nil(t, err)
		assert.False(t, r.Lt(prev), "borrow rate dropped at %d", borrows)
		prev = r
	}
}

func TestSupplyRate(t *testing.T) {
	m := testModel()

	r, err := m.SupplyRate(u(100), u(100), u(0), u(0.1e18))
	require.Nil(t, err)
	assert.Equal(t, uint64(0.027e18), r.Uint64())

	r, err = m.SupplyRate(u(100), u(0), u(0), u(0.1e18))
	require.Nil(t, err)
	assert.True(t, r.IsZero())

	_, err = m.SupplyRate(u(100), u(100), u(0), u(2e18))
	assert.NotNil(t, err)
}
