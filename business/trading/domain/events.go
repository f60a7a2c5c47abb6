package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// EventKind classifies engine events for reporters.
type EventKind string

const (
	EventArbExecuted       EventKind = "ARB_EXECUTED"
	EventTenderAccepted    EventKind = "TENDER_ACCEPTED"
	EventHedgeExhausted    EventKind = "HEDGE_EXHAUSTED"
	EventUnwindEngaged     EventKind = "UNWIND_ENGAGED"
	EventUnwindCleared     EventKind = "UNWIND_CLEARED"
	EventRebalanceExecuted EventKind = "REBALANCE_EXECUTED"
	EventCreationAdvised   EventKind = "CREATION_ADVISED"
	EventRedemptionAdvised EventKind = "REDEMPTION_ADVISED"
)

// Event is a structured engine event. The core emits events instead of
// taking presentation actions; reporters decide how to surface them.
type Event struct {
	ID        string
	Kind      EventKind
	Timestamp time.Time

	Instrument venue.Instrument
	Side       venue.Side
	Quantity   int64
	Price      decimal.Decimal
	Edge       decimal.Decimal
	Detail     string
}

// NewEvent creates an event of the given kind.
func NewEvent(kind EventKind) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: time.Now(),
	}
}
