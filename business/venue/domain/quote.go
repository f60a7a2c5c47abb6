package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel quote values. An empty or unreadable side is replaced so that
// downstream edge arithmetic stays total: a missing bid prices any sell at
// zero and a missing ask prices any buy prohibitively high, so no trade
// ever looks attractive against a broken book.
var (
	NoBid = decimal.Zero
	NoAsk = decimal.New(1, 12) // 1e12
)

// Quote is a top-of-book snapshot for one instrument.
type Quote struct {
	Instrument Instrument
	Bid        decimal.Decimal
	Ask        decimal.Decimal
	Timestamp  time.Time
}

// EmptyQuote returns a quote carrying both sentinels.
func EmptyQuote(inst Instrument) Quote {
	return Quote{
		Instrument: inst,
		Bid:        NoBid,
		Ask:        NoAsk,
		Timestamp:  time.Now(),
	}
}

// NewQuote builds a quote, substituting sentinels for missing sides.
func NewQuote(inst Instrument, bid, ask decimal.Decimal) Quote {
	q := Quote{Instrument: inst, Bid: bid, Ask: ask, Timestamp: time.Now()}
	if q.Bid.LessThanOrEqual(decimal.Zero) {
		q.Bid = NoBid
	}
	if q.Ask.LessThanOrEqual(decimal.Zero) {
		q.Ask = NoAsk
	}
	return q
}

// Mid returns the midpoint of bid and ask.
func (q Quote) Mid() decimal.Decimal {
	return q.Bid.Add(q.Ask).Div(decimal.NewFromInt(2))
}

// TwoSided reports whether both sides carry real prices.
func (q Quote) TwoSided() bool {
	return q.Bid.GreaterThan(NoBid) && q.Ask.LessThan(NoAsk)
}

// QuoteSet holds one quote per instrument for a single cycle.
type QuoteSet map[Instrument]Quote

// Get returns the quote for an instrument, or an empty sentinel quote
// when the instrument was not refreshed this cycle.
func (s QuoteSet) Get(inst Instrument) Quote {
	if q, ok := s[inst]; ok {
		return q
	}
	return EmptyQuote(inst)
}
