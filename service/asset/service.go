package asset

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/number"
)

// Service registry of underlying tokens
type Service struct {
	tokens map[string]*Token
}

// New registry of empty tokens
func New(tokens ...*Token) *Service {
	s := &Service{tokens: make(map[string]*Token, len(tokens))}
	for _, t := range tokens {
		s.tokens[t.Symbol()] = t
	}

	return s
}

// FromConfig tokens with their genesis allocations
func FromConfig(assets []core.AssetConf) (*Service, error) {
	s := New()
	for _, a := range assets {
		decimals := a.Decimals
		if decimals <= 0 {
			decimals = number.MantissaDigits
		}

		t := NewToken(a.Symbol)
		for _, h := range a.Holders {
			amount, err := number.Mantissa(h.Amount, decimals)
			if err != nil {
				return nil, err
			}

			if err := t.Credit(h.Address, amount); err != nil {
				return nil, err
			}
		}

		s.tokens[t.Symbol()] = t
	}

	return s, nil
}

var _ core.IAssetService = (*Service)(nil)

// Find token by symbol
func (s *Service) Find(ctx context.Context, symbol string) (core.Asset, error) {
	t, ok := s.tokens[symbol]
	if !ok {
		return nil, ErrAssetNotFound
	}

	return t, nil
}
