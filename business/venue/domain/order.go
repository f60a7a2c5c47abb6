package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side represents the side of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderStyle selects market or limit execution.
type OrderStyle string

const (
	StyleMarket OrderStyle = "MARKET"
	StyleLimit  OrderStyle = "LIMIT"
)

// OrderIntent is a client-side order before submission. ClientID is
// assigned locally for log and event correlation; the venue assigns
// its own id on acceptance.
type OrderIntent struct {
	ClientID   string
	Instrument Instrument
	Side       Side
	Quantity   int64
	Style      OrderStyle
	Price      decimal.Decimal // limit orders only
}

// NewMarketOrder creates a market order intent.
func NewMarketOrder(inst Instrument, side Side, qty int64) OrderIntent {
	return OrderIntent{
		ClientID:   uuid.NewString(),
		Instrument: inst,
		Side:       side,
		Quantity:   qty,
		Style:      StyleMarket,
	}
}

// NewLimitOrder creates a limit order intent at the given price.
func NewLimitOrder(inst Instrument, side Side, qty int64, price decimal.Decimal) OrderIntent {
	return OrderIntent{
		ClientID:   uuid.NewString(),
		Instrument: inst,
		Side:       side,
		Quantity:   qty,
		Style:      StyleLimit,
		Price:      price,
	}
}

// Validate checks the intent is submittable.
func (o OrderIntent) Validate() error {
	if o.Quantity <= 0 {
		return fmt.Errorf("order %s: quantity must be positive, got %d", o.ClientID, o.Quantity)
	}
	if o.Instrument == CAD {
		return fmt.Errorf("order %s: CAD is not tradable", o.ClientID)
	}
	if o.Style == StyleLimit && o.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("order %s: limit order requires positive price", o.ClientID)
	}
	return nil
}

func (o OrderIntent) String() string {
	if o.Style == StyleLimit {
		return fmt.Sprintf("%s %s %d %s @ %s", o.Style, o.Side, o.Quantity, o.Instrument, o.Price)
	}
	return fmt.Sprintf("%s %s %d %s", o.Style, o.Side, o.Quantity, o.Instrument)
}
