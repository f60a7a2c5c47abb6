package domain

import (
	"github.com/shopspring/decimal"
)

// Level is a single price level of an order book side.
type Level struct {
	Price    decimal.Decimal
	Quantity int64
}

// Book is an order book snapshot with levels ordered best-first:
// bids descending by price, asks ascending.
type Book struct {
	Instrument Instrument
	Bids       []Level
	Asks       []Level
}

// BestBid returns the top bid price, or the NoBid sentinel when empty.
func (b *Book) BestBid() decimal.Decimal {
	if len(b.Bids) == 0 {
		return NoBid
	}
	return b.Bids[0].Price
}

// BestAsk returns the top ask price, or the NoAsk sentinel when empty.
func (b *Book) BestAsk() decimal.Decimal {
	if len(b.Asks) == 0 {
		return NoAsk
	}
	return b.Asks[0].Price
}

// TopOfBook converts the book to a sentinel-safe quote.
func (b *Book) TopOfBook() Quote {
	return NewQuote(b.Instrument, b.BestBid(), b.BestAsk())
}

// FillPrice walks one side of the book and returns the depth-weighted
// average price of filling qty shares. side SideBuy walks the asks,
// SideSell walks the bids. ok is false when visible depth is short of qty.
func (b *Book) FillPrice(side Side, qty int64) (decimal.Decimal, bool) {
	if qty <= 0 {
		return decimal.Zero, false
	}

	levels := b.Bids
	if side == SideBuy {
		levels = b.Asks
	}

	remaining := qty
	notional := decimal.Zero
	for _, lvl := range levels {
		take := lvl.Quantity
		if take > remaining {
			take = remaining
		}
		notional = notional.Add(lvl.Price.Mul(decimal.NewFromInt(take)))
		remaining -= take
		if remaining == 0 {
			return notional.Div(decimal.NewFromInt(qty)), true
		}
	}

	return decimal.Zero, false
}
