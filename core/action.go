package core

import (
	"strings"

	"github.com/fox-one/msgpack"
)

// ActionType the variant tag of an operation
type ActionType int

const (
	_ ActionType = iota
	// user actions
	ActionTypeMint
	ActionTypeRedeem
	ActionTypeRedeemUnderlying
	ActionTypeBorrow
	ActionTypeRepayBorrow
	ActionTypeRepayBorrowBehalf
	ActionTypeLiquidateBorrow
	ActionTypeEnterMarkets
	ActionTypeExitMarket
	ActionTypeAccrueInterest
	ActionTypeApprove
	// admin actions
	ActionTypeNewMarket
	ActionTypeSupportMarket
	ActionTypeSetCollateralFactor
	ActionTypeSetPriceOracle
	ActionTypeSetLiquidationIncentive
	ActionTypeSetCloseFactor
	ActionTypeSetReserveFactor
	ActionTypeSetBorrowCap
	ActionTypeSetPrice
)

var actionTypeNames = map[ActionType]string{
	ActionTypeMint:                    "mint",
	ActionTypeRedeem:                  "redeem",
	ActionTypeRedeemUnderlying:        "redeem_underlying",
	ActionTypeBorrow:                  "borrow",
	ActionTypeRepayBorrow:             "repay_borrow",
	ActionTypeRepayBorrowBehalf:       "repay_borrow_behalf",
	ActionTypeLiquidateBorrow:         "liquidate_borrow",
	ActionTypeEnterMarkets:            "enter_markets",
	ActionTypeExitMarket:              "exit_market",
	ActionTypeAccrueInterest:          "accrue_interest",
	ActionTypeApprove:                 "approve",
	ActionTypeNewMarket:               "new_market",
	ActionTypeSupportMarket:           "support_market",
	ActionTypeSetCollateralFactor:     "set_collateral_factor",
	ActionTypeSetPriceOracle:          "set_price_oracle",
	ActionTypeSetLiquidationIncentive: "set_liquidation_incentive",
	ActionTypeSetCloseFactor:          "set_close_factor",
	ActionTypeSetReserveFactor:        "set_reserve_factor",
	ActionTypeSetBorrowCap:            "set_borrow_cap",
	ActionTypeSetPrice:                "set_price",
}

func (a ActionType) String() string {
	if name, ok := actionTypeNames[a]; ok {
		return name
	}

	return "unknown"
}

// AdminOnly admin surface actions
func (a ActionType) AdminOnly() bool {
	return a >= ActionTypeNewMarket && a <= ActionTypeSetPrice
}

// ParseActionType parse action name, 0 if unknown
func ParseActionType(name string) ActionType {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionTypeNames {
		if n == name {
			return a
		}
	}

	return 0
}

// Action one variant of the operation union. Amounts are base unit
// integers and factors 1e18 mantissas, both as decimal strings.
type Action interface {
	ActionType() ActionType
}

type (
	MintAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Amount string `json:"amount" msgpack:"a" valid:"required,int"`
	}

	RedeemAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Tokens string `json:"tokens" msgpack:"t" valid:"required,int"`
	}

	RedeemUnderlyingAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Amount string `json:"amount" msgpack:"a" valid:"required,int"`
	}

	BorrowAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Amount string `json:"amount" msgpack:"a" valid:"required,int"`
	}

	RepayBorrowAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Amount string `json:"amount" msgpack:"a" valid:"required,int"`
	}

	RepayBorrowBehalfAction struct {
		Market   string `json:"market" msgpack:"m" valid:"required"`
		Borrower string `json:"borrower" msgpack:"b" valid:"required"`
		Amount   string `json:"amount" msgpack:"a" valid:"required,int"`
	}

	LiquidateBorrowAction struct {
		Borrower   string `json:"borrower" msgpack:"b" valid:"required"`
		Market     string `json:"market" msgpack:"m" valid:"required"`
		Amount     string `json:"amount" msgpack:"a" valid:"required,int"`
		Collateral string `json:"collateral" msgpack:"c" valid:"required"`
	}

	EnterMarketsAction struct {
		Markets []string `json:"markets" msgpack:"ms" valid:"required"`
	}

	ExitMarketAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
	}

	AccrueInterestAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
	}

	ApproveAction struct {
		Asset   string `json:"asset" msgpack:"as" valid:"required"`
		Spender string `json:"spender" msgpack:"s" valid:"required"`
		Amount  string `json:"amount" msgpack:"a" valid:"required,int"`
	}

	NewMarketAction struct {
		Symbol                string `json:"symbol" msgpack:"s" valid:"required"`
		Underlying            string `json:"underlying" msgpack:"u" valid:"required"`
		BaseRatePerYear       string `json:"base_rate_per_year" msgpack:"br" valid:"int"`
		MultiplierPerYear     string `json:"multiplier_per_year" msgpack:"mu" valid:"int"`
		JumpMultiplierPerYear string `json:"jump_multiplier_per_year" msgpack:"jm" valid:"int"`
		Kink                  string `json:"kink" msgpack:"k" valid:"int"`
		ReserveFactor         string `json:"reserve_factor" msgpack:"rf" valid:"int"`
		InitialExchangeRate   string `json:"initial_exchange_rate" msgpack:"ie" valid:"int"`
	}

	SupportMarketAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
	}

	SetCollateralFactorAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Factor string `json:"factor" msgpack:"f" valid:"required,int"`
	}

	SetPriceOracleAction struct {
		Oracle string `json:"oracle" msgpack:"o" valid:"required"`
	}

	SetLiquidationIncentiveAction struct {
		Incentive string `json:"incentive" msgpack:"i" valid:"required,int"`
	}

	SetCloseFactorAction struct {
		Factor string `json:"factor" msgpack:"f" valid:"required,int"`
	}

	SetReserveFactorAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Factor string `json:"factor" msgpack:"f" valid:"required,int"`
	}

	SetBorrowCapAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Cap    string `json:"cap" msgpack:"c" valid:"required,int"`
	}

	SetPriceAction struct {
		Market string `json:"market" msgpack:"m" valid:"required"`
		Price  string `json:"price" msgpack:"p" valid:"required,int"`
	}
)

func (MintAction) ActionType() ActionType                { return ActionTypeMint }
func (RedeemAction) ActionType() ActionType              { return ActionTypeRedeem }
func (RedeemUnderlyingAction) ActionType() ActionType    { return ActionTypeRedeemUnderlying }
func (BorrowAction) ActionType() ActionType              { return ActionTypeBorrow }
func (RepayBorrowAction) ActionType() ActionType         { return ActionTypeRepayBorrow }
func (RepayBorrowBehalfAction) ActionType() ActionType   { return ActionTypeRepayBorrowBehalf }
func (LiquidateBorrowAction) ActionType() ActionType     { return ActionTypeLiquidateBorrow }
func (EnterMarketsAction) ActionType() ActionType        { return ActionTypeEnterMarkets }
func (ExitMarketAction) ActionType() ActionType          { return ActionTypeExitMarket }
func (AccrueInterestAction) ActionType() ActionType      { return ActionTypeAccrueInterest }
func (ApproveAction) ActionType() ActionType             { return ActionTypeApprove }
func (NewMarketAction) ActionType() ActionType           { return ActionTypeNewMarket }
func (SupportMarketAction) ActionType() ActionType       { return ActionTypeSupportMarket }
func (SetCollateralFactorAction) ActionType() ActionType { return ActionTypeSetCollateralFactor }
func (SetPriceOracleAction) ActionType() ActionType      { return ActionTypeSetPriceOracle }
func (SetLiquidationIncentiveAction) ActionType() ActionType {
	return ActionTypeSetLiquidationIncentive
}
func (SetCloseFactorAction) ActionType() ActionType   { return ActionTypeSetCloseFactor }
func (SetReserveFactorAction) ActionType() ActionType { return ActionTypeSetReserveFactor }
func (SetBorrowCapAction) ActionType() ActionType     { return ActionTypeSetBorrowCap }
func (SetPriceAction) ActionType() ActionType         { return ActionTypeSetPrice }

// NewAction zero payload of the variant, nil if unknown
func NewAction(t ActionType) Action {
	switch t {
	case ActionTypeMint:
		return &MintAction{}
	case ActionTypeRedeem:
		return &RedeemAction{}
	case ActionTypeRedeemUnderlying:
		return &RedeemUnderlyingAction{}
	case ActionTypeBorrow:
		return &BorrowAction{}
	case ActionTypeRepayBorrow:
		return &RepayBorrowAction{}
	case ActionTypeRepayBorrowBehalf:
		return &RepayBorrowBehalfAction{}
	case ActionTypeLiquidateBorrow:
		return &LiquidateBorrowAction{}
	case ActionTypeEnterMarkets:
		return &EnterMarketsAction{}
	case ActionTypeExitMarket:
		return &ExitMarketAction{}
	case ActionTypeAccrueInterest:
		return &AccrueInterestAction{}
	case ActionTypeApprove:
		return &ApproveAction{}
	case ActionTypeNewMarket:
		return &NewMarketAction{}
	case ActionTypeSupportMarket:
		return &SupportMarketAction{}
	case ActionTypeSetCollateralFactor:
		return &SetCollateralFactorAction{}
	case ActionTypeSetPriceOracle:
		return &SetPriceOracleAction{}
	case ActionTypeSetLiquidationIncentive:
		return &SetLiquidationIncentiveAction{}
	case ActionTypeSetCloseFactor:
		return &SetCloseFactorAction{}
	case ActionTypeSetReserveFactor:
		return &SetReserveFactorAction{}
	case ActionTypeSetBorrowCap:
		return &SetBorrowCapAction{}
	case ActionTypeSetPrice:
		return &SetPriceAction{}
	}

	return nil
}

// EncodeAction msgpack body of an action
func EncodeAction(action Action) ([]byte, error) {
	return msgpack.Marshal(action)
}

// DecodeAction decode a msgpack body into the variant named by t
func DecodeAction(t ActionType, body []byte) (Action, error) {
	action := NewAction(t)
	if action == nil {
		return nil, ErrUnknownAction
	}

	if err := msgpack.Unmarshal(body, action); err != nil {
		return nil, err
	}

	return action, nil
}
