package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/rosiewang37/RITCxSmith/business/risk/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// State is the unwind controller state.
type State string

const (
	StateNormal    State = "NORMAL"
	StateUnwinding State = "UNWINDING"
)

// tickSize is the venue price increment used for passive unwind limits.
var tickSize = decimal.NewFromFloat(0.01)

// UnwindConfig holds the unwind thresholds.
type UnwindConfig struct {
	Trigger             float64 // fraction of the gross ceiling that engages unwinding
	GrossCeiling        int64
	Chunk               int64
	MinPosition         int64 // composite positions below this are left alone
	AggressiveThreshold int64 // above this remaining size, market orders replace passive limits
	MaxOrder            int64 // venue per-order share cap; flatten orders never exceed it
}

// UnwindController watches gross exposure and, once it crosses the trigger
// fraction of the ceiling, plans offsetting composite-versus-basket chunks
// until exposure falls back below the trigger. Entry requires a strict
// cross above the threshold and exit a strict cross below, so sitting
// exactly on the boundary never oscillates the state.
type UnwindController struct {
	cfg         UnwindConfig
	state       State
	transitions metric.Int64Counter
}

// NewUnwindController creates a controller in the NORMAL state.
func NewUnwindController(cfg UnwindConfig) *UnwindController {
	meter := otel.Meter("risk/unwind")
	transitions, _ := meter.Int64Counter("risk_unwind_transitions_total",
		metric.WithDescription("Unwind state machine transitions"))
	return &UnwindController{cfg: cfg, state: StateNormal, transitions: transitions}
}

// State returns the current state.
func (u *UnwindController) State() State {
	return u.state
}

// Unwinding reports whether trading should be suspended.
func (u *UnwindController) Unwinding() bool {
	return u.state == StateUnwinding
}

// threshold returns trigger * ceiling rounded down to whole shares.
func (u *UnwindController) threshold() int64 {
	return int64(u.cfg.Trigger * float64(u.cfg.GrossCeiling))
}

// Evaluate advances the state machine against current exposure and
// reports whether a transition occurred.
func (u *UnwindController) Evaluate(ctx context.Context, exp domain.Exposure) (State, bool) {
	threshold := u.threshold()

	switch u.state {
	case StateNormal:
		if exp.Gross > threshold {
			u.state = StateUnwinding
			if u.transitions != nil {
				u.transitions.Add(ctx, 1)
			}
			return u.state, true
		}
	case StateUnwinding:
		if exp.Gross < threshold {
			u.state = StateNormal
			if u.transitions != nil {
				u.transitions.Add(ctx, 1)
			}
			return u.state, true
		}
	}
	return u.state, false
}

// PlanStep plans one unwind increment: an offsetting composite chunk with
// matching basket legs. Small enough positions are left alone. Orders are
// passive limits one tick inside the touch, switching to market orders
// when the remaining composite position is large enough that queue
// priority costs more than the spread.
func (u *UnwindController) PlanStep(pos *venue.PositionSet, quotes venue.QuoteSet) []venue.OrderIntent {
	composite := pos.Shares(venue.RITC)
	size := composite
	if size < 0 {
		size = -size
	}
	if size < u.cfg.MinPosition {
		return nil
	}

	qty := u.cfg.Chunk
	if size < qty {
		qty = size
	}

	aggressive := size > u.cfg.AggressiveThreshold
	ritc := quotes.Get(venue.RITC)
	bull := quotes.Get(venue.BULL)
	bear := quotes.Get(venue.BEAR)

	if composite > 0 {
		// Long composite: sell it, buy the basket back.
		if aggressive {
			return []venue.OrderIntent{
				venue.NewMarketOrder(venue.RITC, venue.SideSell, qty),
				venue.NewMarketOrder(venue.BULL, venue.SideBuy, qty),
				venue.NewMarketOrder(venue.BEAR, venue.SideBuy, qty),
			}
		}
		return []venue.OrderIntent{
			venue.NewLimitOrder(venue.RITC, venue.SideSell, qty, ritc.Bid.Add(tickSize)),
			venue.NewLimitOrder(venue.BULL, venue.SideBuy, qty, bull.Ask.Sub(tickSize)),
			venue.NewLimitOrder(venue.BEAR, venue.SideBuy, qty, bear.Ask.Sub(tickSize)),
		}
	}

	// Short composite: buy it back, sell the basket.
	if aggressive {
		return []venue.OrderIntent{
			venue.NewMarketOrder(venue.RITC, venue.SideBuy, qty),
			venue.NewMarketOrder(venue.BULL, venue.SideSell, qty),
			venue.NewMarketOrder(venue.BEAR, venue.SideSell, qty),
		}
	}
	return []venue.OrderIntent{
		venue.NewLimitOrder(venue.RITC, venue.SideBuy, qty, ritc.Ask.Sub(tickSize)),
		venue.NewLimitOrder(venue.BULL, venue.SideSell, qty, bull.Bid.Add(tickSize)),
		venue.NewLimitOrder(venue.BEAR, venue.SideSell, qty, bear.Bid.Add(tickSize)),
	}
}

// PlanFlatten plans market orders taking every security position to zero.
// Each position is split into chunks no larger than the venue per-order
// cap. The tender evaluator uses it to make room for a block too
// profitable to pass up.
func (u *UnwindController) PlanFlatten(pos *venue.PositionSet) []venue.OrderIntent {
	var orders []venue.OrderIntent
	for _, inst := range venue.All {
		if inst.IsCurrency() {
			continue
		}
		shares := pos.Shares(inst)
		if shares == 0 {
			continue
		}
		side := venue.SideSell
		if shares < 0 {
			side = venue.SideBuy
			shares = -shares
		}
		for shares > 0 {
			qty := shares
			if u.cfg.MaxOrder > 0 && qty > u.cfg.MaxOrder {
				qty = u.cfg.MaxOrder
			}
			orders = append(orders, venue.NewMarketOrder(inst, side, qty))
			shares -= qty
		}
	}
	return orders
}
