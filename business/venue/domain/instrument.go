// Package domain contains the core domain types for the venue context.
package domain

// Instrument identifies a tradable security or currency on the venue.
type Instrument string

const (
	// BULL and BEAR are the component stocks of the composite, quoted in CAD.
	BULL Instrument = "BULL"
	BEAR Instrument = "BEAR"
	// RITC is the composite ETF, quoted in USD.
	RITC Instrument = "RITC"
	// USD is tradable as a currency pair against CAD.
	USD Instrument = "USD"
	// CAD is the base cash currency, not directly tradable.
	CAD Instrument = "CAD"
)

// Tradables lists instruments that accept orders, in display order.
var Tradables = []Instrument{BULL, BEAR, RITC, USD}

// All lists every instrument tracked in position snapshots.
var All = []Instrument{BULL, BEAR, RITC, USD, CAD}

// RiskMultiplier returns the weight an instrument carries against the
// share exposure ceilings. The composite counts double on both gross
// and net; currencies are exempt and weigh zero.
func (i Instrument) RiskMultiplier() int64 {
	switch i {
	case RITC:
		return 2
	case BULL, BEAR:
		return 1
	default:
		return 0
	}
}

// IsCurrency reports whether the instrument is a currency rather than a security.
func (i Instrument) IsCurrency() bool {
	return i == USD || i == CAD
}

// QuoteCurrency returns the currency the instrument's prices are quoted in.
func (i Instrument) QuoteCurrency() Instrument {
	if i == RITC {
		return USD
	}
	return CAD
}

// Ticker returns the venue wire symbol.
func (i Instrument) Ticker() string {
	return string(i)
}
