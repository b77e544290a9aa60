package comptroller

import (
	"context"

	"moneymarket/core"
	fp "moneymarket/internal/compound"

	"github.com/holiman/uint256"
)

// SupportMarket list a market, collateral factor starts at zero
func (c *Comptroller) SupportMarket(ctx context.Context, tx core.Ledger, market *core.Market) error {
	if market.IsListed {
		return core.ErrAlreadyListed
	}

	market.IsListed = true
	market.CollateralFactor.Clear()

	tx.Emit(core.NewEvent(core.EventMarketListed, market.Symbol, core.MarketListedEvent{
		Market: market.Symbol,
	}))
	return nil
}

// SetCollateralFactor a nonzero factor needs a price for the market
func (c *Comptroller) SetCollateralFactor(ctx context.Context, tx core.Ledger, market *core.Market, factor *uint256.Int) error {
	if err := listed(market); err != nil {
		return err
	}

	if factor.Gt(fp.CollateralFactorMax) {
		return core.ErrInvalidFactor
	}

	if !factor.IsZero() {
		if _, err := c.Price(ctx, tx, market); err != nil {
			return err
		}
	}

	old := market.CollateralFactor
	market.CollateralFactor = *factor

	tx.Emit(core.NewEvent(core.EventNewCollateralFactor, market.Symbol, core.NewCollateralFactorEvent{
		Market: market.Symbol,
		Old:    old.Dec(),
		New:    factor.Dec(),
	}))
	return nil
}

// SetPriceOracle switch to a registered oracle
func (c *Comptroller) SetPriceOracle(ctx context.Context, tx core.Ledger, name string) error {
	if _, ok := c.oracles[name]; !ok {
		return core.ErrOracleNotFound
	}

	params := tx.Params()
	old := params.Oracle
	params.Oracle = name

	tx.Emit(core.NewEvent(core.EventNewPriceOracle, "", core.NewPriceOracleEvent{
		Old: old,
		New: name,
	}))
	return nil
}

// SetLiquidationIncentive incentive must be at least 1.0
func (c *Comptroller) SetLiquidationIncentive(ctx context.Context, tx core.Ledger, incentive *uint256.Int) error {
	if incentive.Lt(fp.LiquidationIncentiveMin) {
		return core.ErrInvalidIncentive
	}

	params := tx.Params()
	old := params.LiquidationIncentive
	params.LiquidationIncentive = *incentive

	tx.Emit(core.NewEvent(core.EventNewLiquidationIncentive, "", core.NewLiquidationIncentiveEvent{
		Old: old.Dec(),
		New: incentive.Dec(),
	}))
	return nil
}

// SetCloseFactor close factor in (0.05, 0.9]
func (c *Comptroller) SetCloseFactor(ctx context.Context, tx core.Ledger, factor *uint256.Int) error {
	if !factor.Gt(fp.CloseFactorMin) || factor.Gt(fp.CloseFactorMax) {
		return core.ErrInvalidCloseFactor
	}

	params := tx.Params()
	old := params.CloseFactor
	params.CloseFactor = *factor

	tx.Emit(core.NewEvent(core.EventNewCloseFactor, "", core.NewCloseFactorEvent{
		Old: old.Dec(),
		New: factor.Dec(),
	}))
	return nil
}

// SetReserveFactor accrue at the old factor, then switch
func (c *Comptroller) SetReserveFactor(ctx context.Context, tx core.Ledger, market *core.Market, factor *uint256.Int) error {
	if factor.Gt(fp.ReserveFactorMax) {
		return core.ErrInvalidFactor
	}

	if err := c.markets.AccrueInterest(ctx, tx, market); err != nil {
		return err
	}

	old := market.ReserveFactor
	market.ReserveFactor = *factor

	tx.Emit(core.NewEvent(core.EventNewReserveFactor, market.Symbol, core.NewReserveFactorEvent{
		Market: market.Symbol,
		Old:    old.Dec(),
		New:    factor.Dec(),
	}))
	return nil
}

// SetBorrowCap zero removes the cap
func (c *Comptroller) SetBorrowCap(ctx context.Context, tx core.Ledger, market *core.Market, borrowCap *uint256.Int) error {
	if err := listed(market); err != nil {
		return err
	}

	market.BorrowCap = *borrowCap

	tx.Emit(core.NewEvent(core.EventNewBorrowCap, market.Symbol, core.NewBorrowCapEvent{
		Market: market.Symbol,
		Cap:    borrowCap.Dec(),
	}))
	return nil
}
