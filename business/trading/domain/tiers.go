package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier maps a minimum per-share edge to an order quantity.
type Tier struct {
	Edge     decimal.Decimal
	Quantity int64
}

// TierTable is an edge-to-size ladder. Sizing walks tiers highest edge
// first and takes the first tier the edge clears; an edge below the
// lowest tier sizes to zero.
type TierTable []Tier

// NewTierTable builds a table sorted by descending edge.
func NewTierTable(tiers []Tier) TierTable {
	t := make(TierTable, len(tiers))
	copy(t, tiers)
	sort.Slice(t, func(i, j int) bool {
		return t[i].Edge.GreaterThan(t[j].Edge)
	})
	return t
}

// SizeFor returns the order quantity for a per-share edge.
func (t TierTable) SizeFor(edge decimal.Decimal) int64 {
	for _, tier := range t {
		if edge.GreaterThanOrEqual(tier.Edge) {
			return tier.Quantity
		}
	}
	return 0
}
