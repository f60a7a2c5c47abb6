// Package domain contains the core domain types for the risk context.
package domain

import (
	"github.com/shopspring/decimal"

	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// Exposure is the multiplier-weighted share exposure of a position
// snapshot. It is derived on demand and never cached across cycles.
type Exposure struct {
	Gross int64
	Net   int64
}

// Compute derives exposure from a position snapshot. Each security
// contributes position times its risk multiplier; the composite counts
// double on both measures and currencies contribute nothing.
func Compute(pos *venue.PositionSet) Exposure {
	var exp Exposure
	for _, inst := range venue.All {
		mult := inst.RiskMultiplier()
		if mult == 0 {
			continue
		}
		weighted := pos.Shares(inst) * mult
		exp.Net += weighted
		if weighted < 0 {
			weighted = -weighted
		}
		exp.Gross += weighted
	}
	return exp
}

// AbsNet returns |Net|.
func (e Exposure) AbsNet() int64 {
	if e.Net < 0 {
		return -e.Net
	}
	return e.Net
}

// CashExposure is the gross cash notional of the security book plus
// currency balances, in CAD.
type CashExposure struct {
	Gross decimal.Decimal
}

// ComputeCash derives cash exposure by valuing each security position at
// its quote midpoint. Composite positions are valued through the USD
// midpoint to land in CAD. Currency balances count at face value.
func ComputeCash(pos *venue.PositionSet, quotes venue.QuoteSet) CashExposure {
	usdMid := quotes.Get(venue.USD).Mid()

	gross := decimal.Zero
	for _, inst := range venue.All {
		if inst == venue.CAD {
			continue
		}
		if inst == venue.USD {
			gross = gross.Add(pos.Cash(inst).Mul(usdMid).Abs())
			continue
		}
		mid := quotes.Get(inst).Mid()
		notional := decimal.NewFromInt(pos.Shares(inst)).Mul(mid)
		if inst.QuoteCurrency() == venue.USD {
			notional = notional.Mul(usdMid)
		}
		gross = gross.Add(notional.Abs())
	}
	return CashExposure{Gross: gross}
}
