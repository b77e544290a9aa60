package compound

import (
	"github.com/holiman/uint256"
)

var (
	// SecondsPerBlock seconds per block
	SecondsPerBlock int64 = 15
	// BlocksPerYear blocks per year
	BlocksPerYear uint64 = 2102400
	// CloseFactorMin min of close factor, must be strictly greater than this value
	CloseFactorMin = uint256.NewInt(0.05e18)
	// CloseFactorMax max of close factor, must not exceed this value
	CloseFactorMax = uint256.NewInt(0.9e18)
	// CollateralFactorMax collateral factor lies in [0, 0.9]
	CollateralFactorMax = uint256.NewInt(0.9e18)
	// LiquidationIncentiveMin must be no less than this value
	LiquidationIncentiveMin = One()
	// ReserveFactorMax max of reserve factor
	ReserveFactorMax = One()
)

// JumpRateModel utilization curve with a kink. Rates are per block.
type JumpRateModel struct {
	BaseRatePerBlock       uint256.Int
	MultiplierPerBlock     uint256.Int
	JumpMultiplierPerBlock uint256.Int
	Kink                   uint256.Int
}

// NewJumpRateModel build a model from yearly mantissas
func NewJumpRateModel(baseRatePerYear, multiplierPerYear, jumpMultiplierPerYear, kink *uint256.Int) JumpRateModel {
	blocks := uint256.NewInt(BlocksPerYear)

	var m JumpRateModel
	m.BaseRatePerBlock.Div(baseRatePerYear, blocks)
	m.MultiplierPerBlock.Div(multiplierPerYear, blocks)
	m.JumpMultiplierPerBlock.Div(jumpMultiplierPerYear, blocks)
	m.Kink.Set(kink)
	return m
}

// UtilizationRate borrows / (cash + borrows), clamped to [0, 1]
func UtilizationRate(cash, borrows *uint256.Int) (*uint256.Int, error) {
	if borrows.IsZero() {
		return new(uint256.Int), nil
	}

	total, err := Add(cash, borrows)
	if err != nil {
		return nil, err
	}

	u, err := DivExp(borrows, total)
	if err != nil {
		return nil, err
	}

	return Min(u, One()), nil
}

// BorrowRate per block borrow rate. reserves are accepted for interface
// parity and do not move the curve.
func (m JumpRateModel) BorrowRate(cash, borrows, reserves *uint256.Int) (*uint256.Int, error) {
	u, err := UtilizationRate(cash, borrows)
	if err != nil {
		return nil, err
	}

	if !u.Gt(&m.Kink) {
		return m.linear(u)
	}

	normal, err := m.linear(&m.Kink)
	if err != nil {
		return nil, err
	}

	excess := new(uint256.Int).Sub(u, &m.Kink)
	jump, err := MulExp(excess, &m.JumpMultiplierPerBlock)
	if err != nil {
		return nil, err
	}

	return Add(normal, jump)
}

// SupplyRate per block supply rate, borrowRate * u * (1 - reserveFactor)
func (m JumpRateModel) SupplyRate(cash, borrows, reserves, reserveFactor *uint256.Int) (*uint256.Int, error) {
	oneMinusReserveFactor, err := Sub(One(), reserveFactor)
	if err != nil {
		return nil, err
	}

	borrowRate, err := m.BorrowRate(cash, borrows, reserves)
	if err != nil {
		return nil, err
	}

	u, err := UtilizationRate(cash, borrows)
	if err != nil {
		return nil, err
	}

	return MulExp3(u, borrowRate, oneMinusReserveFactor)
}

func (m JumpRateModel) linear(u *uint256.Int) (*uint256.Int, error) {
	v, err := MulExp(u, &m.MultiplierPerBlock)
	if err != nil {
		return nil, err
	}

	return Add(v, &m.BaseRatePerBlock)
}
