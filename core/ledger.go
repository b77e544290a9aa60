package core

import "github.com/holiman/uint256"

// RiskParams comptroller wide parameters
type RiskParams struct {
	Admin string
	// Oracle name of the active price oracle
	Oracle               string
	CloseFactor          uint256.Int
	LiquidationIncentive uint256.Int
}

// Ledger a single writer view of the protocol state. Pointers handed out
// are working copies owned by the view; nothing is visible to other
// readers until the view is committed.
type Ledger interface {
	// Block the block number operations on this view run at
	Block() int64

	NewMarket(market Market) (*Market, error)
	Market(id MarketID) (*Market, error)
	MarketBySymbol(symbol string) (*Market, error)
	Markets() []MarketID

	// Account resolves an address, allocating a handle on first use
	Account(address string) AccountID
	LookupAccount(address string) (AccountID, bool)
	Address(id AccountID) string

	Position(account AccountID, market MarketID) *Position

	AssetsIn(account AccountID) []MarketID
	IsMember(account AccountID, market MarketID) bool
	AddMember(account AccountID, market MarketID)
	RemoveMember(account AccountID, market MarketID)

	Params() *RiskParams

	Emit(event *Event)
	Events() []*Event
}
