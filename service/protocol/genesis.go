package protocol

import (
	"context"
	"fmt"

	"moneymarket/core"
	"moneymarket/pkg/number"
	"moneymarket/service/oracle"

	"github.com/shopspring/decimal"
)

var (
	defaultCloseFactor          = decimal.New(5, -1)
	defaultLiquidationIncentive = decimal.New(108, -2)
)

func mantissa(d decimal.Decimal, digits int32) (string, error) {
	v, err := number.Mantissa(d, digits)
	if err != nil {
		return "", err
	}

	return v.Dec(), nil
}

// GenesisActions admin operations building the configured markets.
// Prices are USD per whole token, scaled by 1e(36 - decimals) so a base unit
// of any underlying is priced on the same 1e18 scale.
func GenesisActions(cfg *core.Config) ([]core.Action, error) {
	decimals := map[string]int32{}
	for _, a := range cfg.Assets {
		decimals[a.Symbol] = a.Decimals
	}

	actions := []core.Action{
		&core.SetPriceOracleAction{Oracle: oracle.SimpleName},
	}

	closeFactor := cfg.Comptroller.CloseFactor
	if closeFactor.IsZero() {
		closeFactor = defaultCloseFactor
	}

	incentive := cfg.Comptroller.LiquidationIncentive
	if incentive.IsZero() {
		incentive = defaultLiquidationIncentive
	}

	for _, pair := range []struct {
		d   decimal.Decimal
		new func(string) core.Action
	}{
		{closeFactor, func(v string) core.Action { return &core.SetCloseFactorAction{Factor: v} }},
		{incentive, func(v string) core.Action { return &core.SetLiquidationIncentiveAction{Incentive: v} }},
	} {
		v, err := mantissa(pair.d, number.MantissaDigits)
		if err != nil {
			return nil, err
		}
		actions = append(actions, pair.new(v))
	}

	for _, m := range cfg.Markets {
		var exps [7]string
		for idx, d := range []decimal.Decimal{
			m.BaseRatePerYear,
			m.MultiplierPerYear,
			m.JumpMultiplierPerYear,
			m.Kink,
			m.ReserveFactor,
			m.InitialExchangeRate,
			m.CollateralFactor,
		} {
			v, err := mantissa(d, number.MantissaDigits)
			if err != nil {
				return nil, fmt.Errorf("market %s: %w", m.Symbol, err)
			}
			exps[idx] = v
		}

		actions = append(actions,
			&core.NewMarketAction{
				Symbol:                m.Symbol,
				Underlying:            m.Underlying,
				BaseRatePerYear:       exps[0],
				MultiplierPerYear:     exps[1],
				JumpMultiplierPerYear: exps[2],
				Kink:                  exps[3],
				ReserveFactor:         exps[4],
				InitialExchangeRate:   exps[5],
			},
			&core.SupportMarketAction{Market: m.Symbol},
		)

		digits := decimals[m.Underlying]
		if digits <= 0 {
			digits = number.MantissaDigits
		}

		if m.Price.IsPositive() {
			price, err := mantissa(m.Price, 2*number.MantissaDigits-digits)
			if err != nil {
				return nil, fmt.Errorf("market %s: %w", m.Symbol, err)
			}
			actions = append(actions, &core.SetPriceAction{Market: m.Symbol, Price: price})
		}

		if m.CollateralFactor.IsPositive() {
			actions = append(actions, &core.SetCollateralFactorAction{Market: m.Symbol, Factor: exps[6]})
		}

		if m.BorrowCap.IsPositive() {
			borrowCap, err := mantissa(m.BorrowCap, digits)
			if err != nil {
				return nil, fmt.Errorf("market %s: %w", m.Symbol, err)
			}
			actions = append(actions, &core.SetBorrowCapAction{Market: m.Symbol, Cap: borrowCap})
		}
	}

	return actions, nil
}

// Bootstrap run the genesis actions as admin at block 0
func (p *Protocol) Bootstrap(ctx context.Context, cfg *core.Config) ([]*core.Event, error) {
	actions, err := GenesisActions(cfg)
	if err != nil {
		return nil, err
	}

	var events []*core.Event
	for _, action := range actions {
		e, err := p.Execute(ctx, cfg.App.Admin, 0, action)
		if err != nil {
			return nil, fmt.Errorf("genesis %s: %w", action.ActionType(), err)
		}

		events = append(events, e...)
	}

	return events, nil
}
