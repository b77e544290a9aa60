package ledger

import (
	"sort"

	"moneymarket/core"
)

// Ledger arena owned protocol state. Markets and accounts are addressed by
// integer handles, positions and membership by (account, market). A Ledger
// has a single writer; concurrent use must be serialised by the caller.
type Ledger struct {
	markets []core.Market
	symbols map[string]core.MarketID

	addresses []string
	accounts  map[string]core.AccountID

	positions map[core.PositionKey]core.Position
	// per account entered markets in entry order, plus a set for lookups
	memberList map[core.AccountID][]core.MarketID
	memberSet  map[core.PositionKey]struct{}

	params core.RiskParams
}

// New empty ledger
func New(params core.RiskParams) *Ledger {
	return &Ledger{
		symbols:    map[string]core.MarketID{},
		accounts:   map[string]core.AccountID{},
		positions:  map[core.PositionKey]core.Position{},
		memberList: map[core.AccountID][]core.MarketID{},
		memberSet:  map[core.PositionKey]struct{}{},
		params:     params,
	}
}

// Begin open a copy on write transaction at block
func (l *Ledger) Begin(block int64) *Tx {
	return &Tx{
		base:      l,
		block:     block,
		markets:   map[core.MarketID]*core.Market{},
		accounts:  map[string]core.AccountID{},
		positions: map[core.PositionKey]*core.Position{},
		members:   map[core.AccountID][]core.MarketID{},
	}
}

// Params committed risk parameters
func (l *Ledger) Params() core.RiskParams {
	return l.params
}

// MarketCount number of markets
func (l *Ledger) MarketCount() int {
	return len(l.markets)
}

// Addresses every known account, sorted
func (l *Ledger) Addresses() []string {
	addresses := make([]string, len(l.addresses))
	copy(addresses, l.addresses)
	sort.Strings(addresses)
	return addresses
}

func (l *Ledger) commit(tx *Tx) {
	for _, m := range tx.newMarkets {
		l.markets = append(l.markets, *m)
		l.symbols[m.Symbol] = m.ID
	}

	for id, m := range tx.markets {
		l.markets[id] = *m
	}

	l.addresses = append(l.addresses, tx.newAddresses...)
	for address, id := range tx.accounts {
		l.accounts[address] = id
	}

	for key, p := range tx.positions {
		if _, ok := l.positions[key]; !ok && p.IsZero() {
			continue
		}
		l.positions[key] = *p
	}

	for account, list := range tx.members {
		for _, id := range l.memberList[account] {
			delete(l.memberSet, core.PositionKey{Account: account, Market: id})
		}
		for _, id := range list {
			l.memberSet[core.PositionKey{Account: account, Market: id}] = struct{}{}
		}
		l.memberList[account] = list
	}

	if tx.params != nil {
		l.params = *tx.params
	}
}
