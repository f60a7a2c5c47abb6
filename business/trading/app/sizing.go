package app

import (
	"github.com/shopspring/decimal"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
)

// SizingPolicy maps a per-share edge to an order quantity through the
// configured tier ladder, capped at the per-order maximum.
type SizingPolicy struct {
	table    domain.TierTable
	maxOrder int64
}

// NewSizingPolicy creates a SizingPolicy from a tier ladder.
func NewSizingPolicy(tiers []domain.Tier, maxOrder int64) *SizingPolicy {
	return &SizingPolicy{
		table:    domain.NewTierTable(tiers),
		maxOrder: maxOrder,
	}
}

// SizeFor returns the order quantity for an edge: zero below the lowest
// tier, never above the per-order cap.
func (p *SizingPolicy) SizeFor(edge decimal.Decimal) int64 {
	size := p.table.SizeFor(edge)
	if size > p.maxOrder {
		size = p.maxOrder
	}
	return size
}
