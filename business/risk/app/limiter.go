// Package app contains application services for the risk context.
package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rosiewang37/RITCxSmith/business/risk/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// LimiterConfig holds the exposure ceilings.
type LimiterConfig struct {
	GrossCeiling     int64
	NetCeiling       int64
	CashGrossCeiling decimal.Decimal
}

// Limiter gates every order against the exposure ceilings. A trade is
// allowed when the projected book stays under both ceilings, or when it
// strictly reduces gross, or when it strictly reduces |net|. The reduction
// rules keep the engine able to trade out of trouble even at the limit.
type Limiter struct {
	cfg     LimiterConfig
	denials metric.Int64Counter
}

// NewLimiter creates a Limiter with the given ceilings.
func NewLimiter(cfg LimiterConfig) *Limiter {
	meter := otel.Meter("risk/limiter")
	denials, _ := meter.Int64Counter("risk_limiter_denials_total",
		metric.WithDescription("Orders denied by the exposure limiter"))
	return &Limiter{cfg: cfg, denials: denials}
}

// Allow evaluates a hypothetical fill against the share exposure ceilings.
// Currency trades carry no share weight and always pass this check.
func (l *Limiter) Allow(ctx context.Context, pos *venue.PositionSet, inst venue.Instrument, side venue.Side, qty int64) bool {
	if inst.RiskMultiplier() == 0 {
		return true
	}

	current := domain.Compute(pos)
	projected := domain.Compute(pos.Apply(inst, side, qty))

	if projected.Gross <= l.cfg.GrossCeiling && projected.AbsNet() <= l.cfg.NetCeiling {
		return true
	}
	if projected.Gross < current.Gross {
		return true
	}
	if projected.AbsNet() < current.AbsNet() {
		return true
	}

	l.denials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ticker", inst.Ticker()),
		attribute.String("side", string(side)),
	))
	return false
}

// AllowNotional evaluates the same three-rule pattern against the cash
// notional ceiling, valuing positions at current quote midpoints. It is a
// secondary check; callers run it in addition to Allow when quotes are
// available.
func (l *Limiter) AllowNotional(ctx context.Context, pos *venue.PositionSet, quotes venue.QuoteSet, inst venue.Instrument, side venue.Side, qty int64) bool {
	if l.cfg.CashGrossCeiling.LessThanOrEqual(decimal.Zero) {
		return true
	}

	current := domain.ComputeCash(pos, quotes)
	projected := domain.ComputeCash(pos.Apply(inst, side, qty), quotes)

	if projected.Gross.LessThanOrEqual(l.cfg.CashGrossCeiling) {
		return true
	}
	if projected.Gross.LessThan(current.Gross) {
		return true
	}

	l.denials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ticker", inst.Ticker()),
		attribute.String("side", string(side)),
		attribute.String("check", "notional"),
	))
	return false
}
