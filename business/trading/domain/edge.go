// Package domain contains the core domain types for the trading context.
package domain

import (
	"github.com/shopspring/decimal"

	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// Direction names which side of the composite-versus-basket spread is open.
type Direction string

const (
	// CompositeCheap: the composite asks below the basket bids. Buy the
	// composite, sell the basket.
	CompositeCheap Direction = "COMPOSITE_CHEAP"
	// CompositeRich: the composite bids above the basket asks. Sell the
	// composite, buy the basket.
	CompositeRich Direction = "COMPOSITE_RICH"
)

// Edge is a signed per-share CAD edge in a given direction.
type Edge struct {
	Direction Direction
	PerShare  decimal.Decimal
}

// Positive reports whether the edge is worth anything before sizing.
func (e Edge) Positive() bool {
	return e.PerShare.GreaterThan(decimal.Zero)
}

// EdgePair carries both directional edges computed from one quote snapshot.
type EdgePair struct {
	Cheap Edge
	Rich  Edge
}

// Best returns the wider positive edge. When both directions trigger at
// once the cheap side wins: buying the composite against the basket has
// priority because tender flow is predominantly sell-side.
func (p EdgePair) Best() (Edge, bool) {
	if p.Cheap.Positive() {
		return p.Cheap, true
	}
	if p.Rich.Positive() {
		return p.Rich, true
	}
	return Edge{}, false
}

// SyntheticSell is the CAD proceeds of selling the basket at the bids.
func SyntheticSell(quotes venue.QuoteSet) decimal.Decimal {
	return quotes.Get(venue.BULL).Bid.Add(quotes.Get(venue.BEAR).Bid)
}

// SyntheticBuy is the CAD cost of buying the basket at the asks.
func SyntheticBuy(quotes venue.QuoteSet) decimal.Decimal {
	return quotes.Get(venue.BULL).Ask.Add(quotes.Get(venue.BEAR).Ask)
}

// ComputeEdges derives both directional edges from one quote snapshot.
// Composite prices are converted to CAD at the matching side of the
// currency quote: buys cross the USD ask, sells hit the USD bid.
func ComputeEdges(quotes venue.QuoteSet) EdgePair {
	ritc := quotes.Get(venue.RITC)
	usd := quotes.Get(venue.USD)

	compositeAskCAD := ritc.Ask.Mul(usd.Ask)
	compositeBidCAD := ritc.Bid.Mul(usd.Bid)

	return EdgePair{
		Cheap: Edge{
			Direction: CompositeCheap,
			PerShare:  SyntheticSell(quotes).Sub(compositeAskCAD),
		},
		Rich: Edge{
			Direction: CompositeRich,
			PerShare:  compositeBidCAD.Sub(SyntheticBuy(quotes)),
		},
	}
}
