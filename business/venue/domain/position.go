package domain

import (
	"github.com/shopspring/decimal"
)

// PositionSet is a complete position snapshot. Every instrument in All
// is present; instruments never traded report zero. Security positions
// are share counts, currency positions are cash balances.
type PositionSet struct {
	shares map[Instrument]int64
	cash   map[Instrument]decimal.Decimal
}

// NewPositionSet builds a snapshot with zero defaults for every instrument.
func NewPositionSet() *PositionSet {
	p := &PositionSet{
		shares: make(map[Instrument]int64, len(All)),
		cash:   make(map[Instrument]decimal.Decimal, 2),
	}
	for _, inst := range All {
		if inst.IsCurrency() {
			p.cash[inst] = decimal.Zero
		} else {
			p.shares[inst] = 0
		}
	}
	return p
}

// SetShares records a security position.
func (p *PositionSet) SetShares(inst Instrument, qty int64) {
	p.shares[inst] = qty
}

// SetCash records a currency balance.
func (p *PositionSet) SetCash(inst Instrument, amount decimal.Decimal) {
	p.cash[inst] = amount
}

// Shares returns the signed share count for a security, zero if absent.
func (p *PositionSet) Shares(inst Instrument) int64 {
	return p.shares[inst]
}

// Cash returns the signed cash balance for a currency, zero if absent.
func (p *PositionSet) Cash(inst Instrument) decimal.Decimal {
	if c, ok := p.cash[inst]; ok {
		return c
	}
	return decimal.Zero
}

// Apply returns a copy of the snapshot with a hypothetical fill applied.
// Used by the risk limiter to evaluate post-trade exposure.
func (p *PositionSet) Apply(inst Instrument, side Side, qty int64) *PositionSet {
	next := &PositionSet{
		shares: make(map[Instrument]int64, len(p.shares)),
		cash:   make(map[Instrument]decimal.Decimal, len(p.cash)),
	}
	for k, v := range p.shares {
		next.shares[k] = v
	}
	for k, v := range p.cash {
		next.cash[k] = v
	}

	delta := qty
	if side == SideSell {
		delta = -qty
	}
	if inst.IsCurrency() {
		next.cash[inst] = next.Cash(inst).Add(decimal.NewFromInt(delta))
	} else {
		next.shares[inst] += delta
	}
	return next
}
