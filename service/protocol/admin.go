package protocol

import (
	"context"

	"moneymarket/core"
	fp "moneymarket/internal/compound"
	"moneymarket/store/ledger"

	"github.com/holiman/uint256"
)

// MarketAddressPrefix prefix of the pool account holding a market's cash
const MarketAddressPrefix = "pool:"

// parseOptional empty means zero
func parseOptional(v string) (*uint256.Int, error) {
	if v == "" {
		return new(uint256.Int), nil
	}

	return parseUint(v)
}

func (p *Protocol) handleNewMarket(ctx context.Context, tx *ledger.Tx, action *core.NewMarketAction) error {
	var values [6]*uint256.Int
	for idx, v := range []string{
		action.BaseRatePerYear,
		action.MultiplierPerYear,
		action.JumpMultiplierPerYear,
		action.Kink,
		action.ReserveFactor,
		action.InitialExchangeRate,
	} {
		n, err := parseOptional(v)
		if err != nil {
			return err
		}

		values[idx] = n
	}

	if values[4].Gt(fp.ReserveFactorMax) {
		return core.ErrInvalidFactor
	}

	model := fp.NewJumpRateModel(values[0], values[1], values[2], values[3])
	market := core.Market{
		Symbol:                 action.Symbol,
		Underlying:             action.Underlying,
		Address:                MarketAddressPrefix + action.Symbol,
		AccrualBlock:           tx.Block(),
		ReserveFactor:          *values[4],
		InitialExchangeRate:    *values[5],
		BaseRatePerBlock:       model.BaseRatePerBlock,
		MultiplierPerBlock:     model.MultiplierPerBlock,
		JumpMultiplierPerBlock: model.JumpMultiplierPerBlock,
		Kink:                   model.Kink,
	}
	market.BorrowIndex.SetUint64(fp.ExpScale)
	if market.InitialExchangeRate.IsZero() {
		market.InitialExchangeRate.SetUint64(fp.ExpScale)
	}

	m, err := tx.NewMarket(market)
	if err != nil {
		return err
	}

	tx.Emit(core.NewEvent(core.EventNewMarket, m.Symbol, core.NewMarketEvent{
		Market:     m.Symbol,
		Underlying: m.Underlying,
		Address:    m.Address,
	}))
	return nil
}

func (p *Protocol) handleSupportMarket(ctx context.Context, tx *ledger.Tx, action *core.SupportMarketAction) error {
	market, err := tx.MarketBySymbol(action.Market)
	if err != nil {
		return err
	}

	return p.comptroller.SupportMarket(ctx, tx, market)
}

func (p *Protocol) handleSetCollateralFactor(ctx context.Context, tx *ledger.Tx, action *core.SetCollateralFactorAction) error {
	factor, err := parseUint(action.Factor)
	if err != nil {
		return err
	}

	market, err := listedMarket(tx, action.Market)
	if err != nil {
		return err
	}

	return p.comptroller.SetCollateralFactor(ctx, tx, market, factor)
}

func (p *Protocol) handleSetLiquidationIncentive(ctx context.Context, tx *ledger.Tx, action *core.SetLiquidationIncentiveAction) error {
	incentive, err := parseUint(action.Incentive)
	if err != nil {
		return err
	}

	return p.comptroller.SetLiquidationIncentive(ctx, tx, incentive)
}

func (p *Protocol) handleSetCloseFactor(ctx context.Context, tx *ledger.Tx, action *core.SetCloseFactorAction) error {
	factor, err := parseUint(action.Factor)
	if err != nil {
		return err
	}

	return p.comptroller.SetCloseFactor(ctx, tx, factor)
}

func (p *Protocol) handleSetReserveFactor(ctx context.Context, tx *ledger.Tx, action *core.SetReserveFactorAction) error {
	factor, err := parseUint(action.Factor)
	if err != nil {
		return err
	}

	market, err := tx.MarketBySymbol(action.Market)
	if err != nil {
		return err
	}

	return p.comptroller.SetReserveFactor(ctx, tx, market, factor)
}

func (p *Protocol) handleSetBorrowCap(ctx context.Context, tx *ledger.Tx, action *core.SetBorrowCapAction) error {
	borrowCap, err := parseUint(action.Cap)
	if err != nil {
		return err
	}

	market, err := listedMarket(tx, action.Market)
	if err != nil {
		return err
	}

	return p.comptroller.SetBorrowCap(ctx, tx, market, borrowCap)
}

// handleSetPrice post a price to the active oracle. The oracle write is the
// final step and skipped for a rejected operation.
func (p *Protocol) handleSetPrice(ctx context.Context, tx *ledger.Tx, action *core.SetPriceAction) error {
	price, err := parseUint(action.Price)
	if err != nil {
		return err
	}

	market, err := tx.MarketBySymbol(action.Market)
	if err != nil {
		return err
	}

	oracle, ok := p.oracles[tx.Params().Oracle]
	if !ok {
		return core.ErrOracleNotFound
	}

	setter, ok := oracle.(core.PriceSetter)
	if !ok {
		return core.ErrOracleNotFound
	}

	tx.Emit(core.NewEvent(core.EventPricePosted, market.Symbol, core.PricePostedEvent{
		Market: market.Symbol,
		Oracle: oracle.Name(),
		Price:  price.Dec(),
	}))

	return setter.SetUnderlyingPrice(ctx, market, price)
}
