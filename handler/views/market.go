package views

import (
	"moneymarket/core"
	"moneymarket/internal/compound"

	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	*core.MarketSnapshot
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	SupplyAPY       decimal.Decimal `json:"supply_apy"`
	BorrowAPY       decimal.Decimal `json:"borrow_apy"`
}

// MarketView rates per block compounded simply over a year
func MarketView(s *core.MarketSnapshot) Market {
	blocks := decimal.NewFromInt(int64(compound.BlocksPerYear))

	utilization := decimal.Zero
	if total := s.Cash.Add(s.TotalBorrows); total.IsPositive() {
		utilization = s.TotalBorrows.Div(total).Truncate(16)
	}

	return Market{
		MarketSnapshot:  s,
		UtilizationRate: utilization,
		SupplyAPY:       s.SupplyRatePerBlock.Mul(blocks).Truncate(16),
		BorrowAPY:       s.BorrowRatePerBlock.Mul(blocks).Truncate(16),
	}
}

// Markets views of every snapshot
func Markets(snapshots []*core.MarketSnapshot) []Market {
	items := make([]Market, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, MarketView(s))
	}

	return items
}
