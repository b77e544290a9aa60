package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"moneymarket/core"

	"github.com/holiman/uint256"
)

var (
	// ErrInsufficientBalance owner balance too low
	ErrInsufficientBalance = errors.New("asset: insufficient balance")
	// ErrInsufficientAllowance spender allowance too low
	ErrInsufficientAllowance = errors.New("asset: insufficient allowance")
	// ErrAssetNotFound unknown symbol
	ErrAssetNotFound = errors.New("asset: not found")
)

type allowanceKey struct {
	owner, spender string
}

// Token in memory fungible token with ERC20 style allowances
type Token struct {
	symbol     string
	mu         sync.RWMutex
	balances   map[string]uint256.Int
	allowances map[allowanceKey]uint256.Int
}

// NewToken empty token
func NewToken(symbol string) *Token {
	return &Token{
		symbol:     symbol,
		balances:   map[string]uint256.Int{},
		allowances: map[allowanceKey]uint256.Int{},
	}
}

var _ core.Asset = (*Token)(nil)

// Symbol token symbol
func (t *Token) Symbol() string {
	return t.symbol
}

// Credit genesis allocation
func (t *Token) Credit(owner string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	balance := t.balances[owner]
	sum, overflow := new(uint256.Int).AddOverflow(&balance, amount)
	if overflow {
		return fmt.Errorf("asset: %s balance overflow", t.symbol)
	}

	t.balances[owner] = *sum
	return nil
}

// BalanceOf balance of owner
func (t *Token) BalanceOf(ctx context.Context, owner string) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	balance := t.balances[owner]
	return balance.Clone(), nil
}

// Allowance remaining amount spender may pull from owner
func (t *Token) Allowance(ctx context.Context, owner, spender string) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	allowance := t.allowances[allowanceKey{owner, spender}]
	return allowance.Clone(), nil
}

// Approve set the allowance of spender over owner's balance
func (t *Token) Approve(ctx context.Context, owner, spender string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.allowances[allowanceKey{owner, spender}] = *amount
	return nil
}

// Transfer move amount from one owner to another
func (t *Token) Transfer(ctx context.Context, from, to string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.move(from, to, amount)
}

// TransferFrom move amount on behalf of from, spending spender's allowance
func (t *Token) TransferFrom(ctx context.Context, spender, from, to string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := allowanceKey{from, spender}
	allowance := t.allowances[key]
	if allowance.Lt(amount) {
		return ErrInsufficientAllowance
	}

	if err := t.move(from, to, amount); err != nil {
		return err
	}

	allowance.Sub(&allowance, amount)
	t.allowances[key] = allowance
	return nil
}

func (t *Token) move(from, to string, amount *uint256.Int) error {
	fromBalance := t.balances[from]
	if fromBalance.Lt(amount) {
		return ErrInsufficientBalance
	}

	fromBalance.Sub(&fromBalance, amount)
	t.balances[from] = fromBalance

	toBalance := t.balances[to]
	toBalance.Add(&toBalance, amount)
	t.balances[to] = toBalance
	return nil
}
