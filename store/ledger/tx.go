package ledger

import (
	"moneymarket/core"
)

// Tx a copy on write view over a Ledger implementing core.Ledger. Every
// pointer handed out is a private copy; Commit publishes them at once,
// dropping the Tx discards them.
type Tx struct {
	base  *Ledger
	block int64
	done  bool

	newMarkets []*core.Market
	markets    map[core.MarketID]*core.Market

	newAddresses []string
	accounts     map[string]core.AccountID

	positions map[core.PositionKey]*core.Position
	members   map[core.AccountID][]core.MarketID

	params *core.RiskParams
	events []*core.Event
}

var _ core.Ledger = (*Tx)(nil)

// Block block the transaction runs at
func (tx *Tx) Block() int64 {
	return tx.block
}

// NewMarket register a market, symbols are unique
func (tx *Tx) NewMarket(market core.Market) (*core.Market, error) {
	if _, err := tx.MarketBySymbol(market.Symbol); err == nil {
		return nil, core.ErrAlreadyListed
	}

	market.ID = core.MarketID(len(tx.base.markets) + len(tx.newMarkets))
	tx.newMarkets = append(tx.newMarkets, &market)
	return &market, nil
}

// Market working copy of the market
func (tx *Tx) Market(id core.MarketID) (*core.Market, error) {
	if m, ok := tx.markets[id]; ok {
		return m, nil
	}

	idx := int(id)
	if idx < len(tx.base.markets) {
		m := tx.base.markets[idx]
		tx.markets[id] = &m
		return &m, nil
	}

	if idx -= len(tx.base.markets); idx < len(tx.newMarkets) {
		return tx.newMarkets[idx], nil
	}

	return nil, core.ErrMarketNotFound
}

// MarketBySymbol working copy of the market named symbol
func (tx *Tx) MarketBySymbol(symbol string) (*core.Market, error) {
	if id, ok := tx.base.symbols[symbol]; ok {
		return tx.Market(id)
	}

	for _, m := range tx.newMarkets {
		if m.Symbol == symbol {
			return m, nil
		}
	}

	return nil, core.ErrMarketNotFound
}

// Markets every market handle in creation order
func (tx *Tx) Markets() []core.MarketID {
	n := len(tx.base.markets) + len(tx.newMarkets)
	ids := make([]core.MarketID, n)
	for idx := range ids {
		ids[idx] = core.MarketID(idx)
	}

	return ids
}

// Account resolve address, allocating a handle on first use
func (tx *Tx) Account(address string) core.AccountID {
	if id, ok := tx.LookupAccount(address); ok {
		return id
	}

	id := core.AccountID(len(tx.base.addresses) + len(tx.newAddresses))
	tx.newAddresses = append(tx.newAddresses, address)
	tx.accounts[address] = id
	return id
}

// LookupAccount resolve address without allocating
func (tx *Tx) LookupAccount(address string) (core.AccountID, bool) {
	if id, ok := tx.base.accounts[address]; ok {
		return id, true
	}

	id, ok := tx.accounts[address]
	return id, ok
}

// Address of the account handle
func (tx *Tx) Address(id core.AccountID) string {
	idx := int(id)
	if idx < len(tx.base.addresses) {
		return tx.base.addresses[idx]
	}

	if idx -= len(tx.base.addresses); idx < len(tx.newAddresses) {
		return tx.newAddresses[idx]
	}

	return ""
}

// Position working copy of the position, zero if the account never touched the market
func (tx *Tx) Position(account core.AccountID, market core.MarketID) *core.Position {
	key := core.PositionKey{Account: account, Market: market}
	if p, ok := tx.positions[key]; ok {
		return p
	}

	p, ok := tx.base.positions[key]
	if !ok {
		p = core.Position{Account: account, Market: market}
	}

	tx.positions[key] = &p
	return &p
}

// AssetsIn entered markets in entry order
func (tx *Tx) AssetsIn(account core.AccountID) []core.MarketID {
	if list, ok := tx.members[account]; ok {
		return list
	}

	return tx.base.memberList[account]
}

// IsMember account entered market
func (tx *Tx) IsMember(account core.AccountID, market core.MarketID) bool {
	if list, ok := tx.members[account]; ok {
		for _, id := range list {
			if id == market {
				return true
			}
		}

		return false
	}

	_, ok := tx.base.memberSet[core.PositionKey{Account: account, Market: market}]
	return ok
}

// AddMember enter market, no-op if already a member
func (tx *Tx) AddMember(account core.AccountID, market core.MarketID) {
	if tx.IsMember(account, market) {
		return
	}

	base := tx.AssetsIn(account)
	list := make([]core.MarketID, len(base), len(base)+1)
	copy(list, base)
	tx.members[account] = append(list, market)
}

// RemoveMember exit market keeping the order of the others
func (tx *Tx) RemoveMember(account core.AccountID, market core.MarketID) {
	base := tx.AssetsIn(account)
	list := make([]core.MarketID, 0, len(base))
	for _, id := range base {
		if id != market {
			list = append(list, id)
		}
	}

	tx.members[account] = list
}

// Params working copy of the risk parameters
func (tx *Tx) Params() *core.RiskParams {
	if tx.params == nil {
		params := tx.base.params
		tx.params = &params
	}

	return tx.params
}

// Emit buffer an event, published with the commit
func (tx *Tx) Emit(event *core.Event) {
	event.Block = tx.block
	tx.events = append(tx.events, event)
}

// Events buffered events in emission order
func (tx *Tx) Events() []*core.Event {
	return tx.events
}

// Commit publish the transaction to the ledger. A Tx commits at most once.
func (tx *Tx) Commit() []*core.Event {
	if tx.done {
		return nil
	}

	tx.done = true
	tx.base.commit(tx)
	return tx.events
}
