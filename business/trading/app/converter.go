package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	riskDomain "github.com/rosiewang37/RITCxSmith/business/risk/domain"
	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// ConverterConfig describes the venue's manual creation/redemption
// facility: a fixed block size for a flat USD fee.
type ConverterConfig struct {
	BlockSize    int64
	FeeUSD       decimal.Decimal
	GrossCeiling int64
}

// blockFraction is how close inventory must get to a full converter
// block before advising.
var blockFraction = decimal.NewFromFloat(0.8)

// spreadRatio is how much wider one book must be than the other before
// the converter beats working the order book.
var spreadRatio = decimal.NewFromFloat(1.5)

// grossPressure is the gross usage fraction above which conversion is
// advised regardless of spreads, to free ceiling room.
const grossPressure = 0.9

// ConverterAdvisor watches inventory and spreads around the converter
// block size and emits advisory events. The facility itself is manual on
// the venue, so the advisor never places an order; it only reports.
type ConverterAdvisor struct {
	reporter Reporter
	cfg      ConverterConfig
}

// NewConverterAdvisor creates a ConverterAdvisor.
func NewConverterAdvisor(reporter Reporter, cfg ConverterConfig) *ConverterAdvisor {
	return &ConverterAdvisor{reporter: reporter, cfg: cfg}
}

// RunOnce inspects inventory and spreads and publishes at most one
// advisory per direction.
func (a *ConverterAdvisor) RunOnce(ctx context.Context, quotes venue.QuoteSet, positions *venue.PositionSet) {
	nearBlock := decimal.NewFromInt(a.cfg.BlockSize).Mul(blockFraction).IntPart()

	ritcSpread := spread(quotes.Get(venue.RITC))
	basketSpread := spread(quotes.Get(venue.BULL)).Add(spread(quotes.Get(venue.BEAR)))

	gross := riskDomain.Compute(positions).Gross
	pressured := a.cfg.GrossCeiling > 0 &&
		float64(gross) > grossPressure*float64(a.cfg.GrossCeiling)

	feeCAD := a.cfg.FeeUSD.Mul(quotes.Get(venue.USD).Mid())

	// Composite inventory near a block: redemption candidate when the
	// composite book is wide relative to the basket.
	if positions.Shares(venue.RITC) >= nearBlock {
		if ritcSpread.GreaterThan(basketSpread.Mul(spreadRatio)) || pressured {
			event := domain.NewEvent(domain.EventRedemptionAdvised)
			event.Instrument = venue.RITC
			event.Quantity = a.cfg.BlockSize
			event.Detail = fmt.Sprintf(
				"composite inventory %d near block %d; composite spread %s vs basket %s; fee %s CAD",
				positions.Shares(venue.RITC), a.cfg.BlockSize,
				ritcSpread.StringFixed(3), basketSpread.StringFixed(3),
				feeCAD.StringFixed(0))
			a.reporter.Publish(ctx, event)
		}
	}

	// Matched basket inventory near a block: creation candidate when the
	// basket books are wide relative to the composite.
	basketMin := positions.Shares(venue.BULL)
	if positions.Shares(venue.BEAR) < basketMin {
		basketMin = positions.Shares(venue.BEAR)
	}
	if basketMin >= nearBlock {
		if basketSpread.GreaterThan(ritcSpread.Mul(spreadRatio)) || pressured {
			event := domain.NewEvent(domain.EventCreationAdvised)
			event.Instrument = venue.RITC
			event.Quantity = a.cfg.BlockSize
			event.Detail = fmt.Sprintf(
				"basket inventory %d near block %d; basket spread %s vs composite %s; fee %s CAD",
				basketMin, a.cfg.BlockSize,
				basketSpread.StringFixed(3), ritcSpread.StringFixed(3),
				feeCAD.StringFixed(0))
			a.reporter.Publish(ctx, event)
		}
	}
}

func spread(q venue.Quote) decimal.Decimal {
	if !q.TwoSided() {
		return decimal.Zero
	}
	s := q.Ask.Sub(q.Bid)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}
