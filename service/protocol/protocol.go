package protocol

import (
	"context"
	"fmt"
	"sync"

	"moneymarket/core"
	"moneymarket/service/comptroller"
	"moneymarket/service/market"
	"moneymarket/store/ledger"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Protocol applies operations one at a time against the arena ledger.
// Writers are serialised; reads run concurrently on discarded views.
type Protocol struct {
	mu          sync.RWMutex
	ledger      *ledger.Ledger
	assets      core.IAssetService
	markets     *market.Service
	comptroller *comptroller.Comptroller
	oracles     map[string]core.PriceOracle
}

// New protocol with the given admin and active oracle
func New(params core.RiskParams, assets core.IAssetService, oracles ...core.PriceOracle) *Protocol {
	markets := market.New()
	p := &Protocol{
		ledger:      ledger.New(params),
		assets:      assets,
		markets:     markets,
		comptroller: comptroller.New(markets, oracles...),
		oracles:     make(map[string]core.PriceOracle, len(oracles)),
	}

	for _, o := range oracles {
		p.oracles[o.Name()] = o
	}

	return p
}

// Apply decode and execute a journaled operation at its block
func (p *Protocol) Apply(ctx context.Context, op *core.Operation) ([]*core.Event, error) {
	action, err := op.Decode()
	if err != nil {
		logger.FromContext(ctx).WithError(err).Infoln("decode operation failed")
		if core.CodeOf(err) == core.ErrUnknownAction {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownAction, err.Error())
	}

	return p.Execute(ctx, op.Sender, op.Block, action)
}

// Execute run action for sender at block. Either every effect of the
// action is committed and its events returned, or nothing changes.
func (p *Protocol) Execute(ctx context.Context, sender string, block int64, action core.Action) ([]*core.Event, error) {
	log := logger.FromContext(ctx).
		WithField("action", action.ActionType().String()).
		WithField("sender", sender).
		WithField("block", block)
	ctx = logger.WithContext(ctx, log)

	p.mu.Lock()
	defer p.mu.Unlock()

	tx := p.ledger.Begin(block)
	if action.ActionType().AdminOnly() && tx.Params().Admin != sender {
		log.Infoln("admin action from non admin")
		return nil, core.ErrUnauthorized
	}

	if err := p.dispatch(ctx, tx, sender, action); err != nil {
		if code := core.CodeOf(err); code.IsEngineBug() {
			log.WithError(err).WithField("engine_bug", true).Errorln("operation aborted")
		} else {
			log.WithError(err).Infoln("operation rejected")
		}

		return nil, err
	}

	events := tx.Commit()
	for _, e := range events {
		entry := log.WithField("event", e.Type)
		if e.Payload != nil && structs.IsStruct(e.Payload) {
			entry = entry.WithFields(structs.Map(e.Payload))
		}
		entry.Debugln("emit")
	}

	return events, nil
}

func (p *Protocol) dispatch(ctx context.Context, tx *ledger.Tx, sender string, action core.Action) error {
	switch a := action.(type) {
	case *core.MintAction:
		return p.handleMint(ctx, tx, sender, a)
	case *core.RedeemAction:
		return p.handleRedeem(ctx, tx, sender, a)
	case *core.RedeemUnderlyingAction:
		return p.handleRedeemUnderlying(ctx, tx, sender, a)
	case *core.BorrowAction:
		return p.handleBorrow(ctx, tx, sender, a)
	case *core.RepayBorrowAction:
		return p.handleRepayBorrow(ctx, tx, sender, a)
	case *core.RepayBorrowBehalfAction:
		return p.handleRepayBorrowBehalf(ctx, tx, sender, a)
	case *core.LiquidateBorrowAction:
		return p.handleLiquidateBorrow(ctx, tx, sender, a)
	case *core.EnterMarketsAction:
		return p.handleEnterMarkets(ctx, tx, sender, a)
	case *core.ExitMarketAction:
		return p.handleExitMarket(ctx, tx, sender, a)
	case *core.AccrueInterestAction:
		return p.handleAccrueInterest(ctx, tx, sender, a)
	case *core.ApproveAction:
		return p.handleApprove(ctx, tx, sender, a)
	case *core.NewMarketAction:
		return p.handleNewMarket(ctx, tx, a)
	case *core.SupportMarketAction:
		return p.handleSupportMarket(ctx, tx, a)
	case *core.SetCollateralFactorAction:
		return p.handleSetCollateralFactor(ctx, tx, a)
	case *core.SetPriceOracleAction:
		return p.comptroller.SetPriceOracle(ctx, tx, a.Oracle)
	case *core.SetLiquidationIncentiveAction:
		return p.handleSetLiquidationIncentive(ctx, tx, a)
	case *core.SetCloseFactorAction:
		return p.handleSetCloseFactor(ctx, tx, a)
	case *core.SetReserveFactorAction:
		return p.handleSetReserveFactor(ctx, tx, a)
	case *core.SetBorrowCapAction:
		return p.handleSetBorrowCap(ctx, tx, a)
	case *core.SetPriceAction:
		return p.handleSetPrice(ctx, tx, a)
	}

	return core.ErrUnknownAction
}

// parseAmount a positive base unit integer
func parseAmount(v string) (*uint256.Int, error) {
	amount, err := parseUint(v)
	if err != nil {
		return nil, err
	}

	if amount.IsZero() {
		return nil, core.ErrInvalidAmount
	}

	return amount, nil
}

// parseUint a non negative base unit integer or mantissa
func parseUint(v string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(v)
	if err != nil {
		return nil, core.ErrInvalidAmount
	}

	return amount, nil
}

// listedMarket resolve symbol to its working copy
func listedMarket(tx core.Ledger, symbol string) (*core.Market, error) {
	m, err := tx.MarketBySymbol(symbol)
	if err != nil {
		return nil, core.ErrMarketNotListed
	}

	if !m.IsListed {
		return nil, core.ErrMarketNotListed
	}

	return m, nil
}
