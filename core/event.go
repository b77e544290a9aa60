package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// EventType notification kind
type EventType string

const (
	EventNewMarket               EventType = "NewMarket"
	EventMarketListed            EventType = "MarketListed"
	EventNewCollateralFactor     EventType = "NewCollateralFactor"
	EventNewPriceOracle          EventType = "NewPriceOracle"
	EventNewLiquidationIncentive EventType = "NewLiquidationIncentive"
	EventNewCloseFactor          EventType = "NewCloseFactor"
	EventNewReserveFactor        EventType = "NewReserveFactor"
	EventNewBorrowCap            EventType = "NewBorrowCap"
	EventPricePosted             EventType = "PricePosted"
	EventMarketEntered           EventType = "MarketEntered"
	EventMarketExited            EventType = "MarketExited"
	EventAccrueInterest          EventType = "AccrueInterest"
	EventMint                    EventType = "Mint"
	EventRedeem                  EventType = "Redeem"
	EventBorrow                  EventType = "Borrow"
	EventRepayBorrow             EventType = "RepayBorrow"
	EventLiquidateBorrow         EventType = "LiquidateBorrow"
	EventApproval                EventType = "Approval"
)

// Event an ordered notification of one state change
type Event struct {
	ID          uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	OperationID uint64         `sql:"NOT NULL;index" json:"operation_id"`
	TraceID     string         `sql:"size:36;unique_index" json:"trace_id"`
	Type        EventType      `sql:"size:36" json:"type"`
	Market      string         `sql:"size:36" json:"market,omitempty"`
	Accounts    pq.StringArray `sql:"type:varchar(1024)" json:"accounts,omitempty"`
	Data        types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	Block       int64          `json:"block"`
	CreatedAt   time.Time      `json:"created_at"`

	// Payload the typed body Data was encoded from, nil for loaded events
	Payload interface{} `sql:"-" json:"-"`
}

// NewEvent build an event from a typed payload
func NewEvent(typ EventType, market string, payload interface{}, accounts ...string) *Event {
	data, _ := json.Marshal(payload)
	return &Event{
		Type:     typ,
		Market:   market,
		Accounts: accounts,
		Data:     data,
		Payload:  payload,
	}
}

// EventStore event store
type EventStore interface {
	Create(ctx context.Context, tx *db.DB, event *Event) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Event, error)
	ListByOperation(ctx context.Context, operationID uint64) ([]*Event, error)
	ListByAccount(ctx context.Context, address string, fromID uint64, limit int) ([]*Event, error)
}

type (
	NewMarketEvent struct {
		Market     string `json:"market"`
		Underlying string `json:"underlying"`
		Address    string `json:"address"`
	}

	MarketListedEvent struct {
		Market string `json:"market"`
	}

	NewCollateralFactorEvent struct {
		Market string `json:"market"`
		Old    string `json:"old_collateral_factor"`
		New    string `json:"new_collateral_factor"`
	}

	NewPriceOracleEvent struct {
		Old string `json:"old_price_oracle"`
		New string `json:"new_price_oracle"`
	}

	NewLiquidationIncentiveEvent struct {
		Old string `json:"old_liquidation_incentive"`
		New string `json:"new_liquidation_incentive"`
	}

	NewCloseFactorEvent struct {
		Old string `json:"old_close_factor"`
		New string `json:"new_close_factor"`
	}

	NewReserveFactorEvent struct {
		Market string `json:"market"`
		Old    string `json:"old_reserve_factor"`
		New    string `json:"new_reserve_factor"`
	}

	NewBorrowCapEvent struct {
		Market string `json:"market"`
		Cap    string `json:"new_borrow_cap"`
	}

	PricePostedEvent struct {
		Market string `json:"market"`
		Oracle string `json:"oracle"`
		Price  string `json:"price"`
	}

	MarketMembershipEvent struct {
		Market  string `json:"market"`
		Account string `json:"account"`
	}

	AccrueInterestEvent struct {
		Market              string `json:"market"`
		CashPrior           string `json:"cash_prior"`
		InterestAccumulated string `json:"interest_accumulated"`
		BorrowIndex         string `json:"borrow_index"`
		TotalBorrows        string `json:"total_borrows"`
	}

	MintEvent struct {
		Market     string `json:"market"`
		Minter     string `json:"minter"`
		MintAmount string `json:"mint_amount"`
		MintTokens string `json:"mint_tokens"`
	}

	RedeemEvent struct {
		Market       string `json:"market"`
		Redeemer     string `json:"redeemer"`
		RedeemAmount string `json:"redeem_amount"`
		RedeemTokens string `json:"redeem_tokens"`
	}

	BorrowEvent struct {
		Market         string `json:"market"`
		Borrower       string `json:"borrower"`
		BorrowAmount   string `json:"borrow_amount"`
		AccountBorrows string `json:"account_borrows"`
		TotalBorrows   string `json:"total_borrows"`
	}

	RepayBorrowEvent struct {
		Market         string `json:"market"`
		Payer          string `json:"payer"`
		Borrower       string `json:"borrower"`
		RepayAmount    string `json:"repay_amount"`
		AccountBorrows string `json:"account_borrows"`
		TotalBorrows   string `json:"total_borrows"`
	}

	LiquidateBorrowEvent struct {
		Market           string `json:"market"`
		Liquidator       string `json:"liquidator"`
		Borrower         string `json:"borrower"`
		RepayAmount      string `json:"repay_amount"`
		CollateralMarket string `json:"collateral_market"`
		SeizeTokens      string `json:"seize_tokens"`
	}

	ApprovalEvent struct {
		Asset   string `json:"asset"`
		Owner   string `json:"owner"`
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
	}
)
