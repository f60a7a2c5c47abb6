package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// RebalanceConfig holds the currency drift band.
type RebalanceConfig struct {
	DriftTolerance decimal.Decimal
}

// CurrencyRebalancer keeps the USD balance pinned to the negative value
// of the composite position, so composite price moves settle into CAD
// instead of accumulating as open currency risk. Corrections only fire
// outside the tolerance band; a zero band would trade every cycle and
// bleed the spread.
type CurrencyRebalancer struct {
	hedger   *HedgeExecutor
	reporter Reporter
	logger   logger.LoggerInterface
	cfg      RebalanceConfig
}

// NewCurrencyRebalancer creates a CurrencyRebalancer.
func NewCurrencyRebalancer(hedger *HedgeExecutor, reporter Reporter, log logger.LoggerInterface, cfg RebalanceConfig) *CurrencyRebalancer {
	return &CurrencyRebalancer{
		hedger:   hedger,
		reporter: reporter,
		logger:   log,
		cfg:      cfg,
	}
}

// Drift returns the signed correction needed: positive means buy USD.
func (r *CurrencyRebalancer) Drift(quotes venue.QuoteSet, positions *venue.PositionSet) decimal.Decimal {
	compositeMid := quotes.Get(venue.RITC).Mid()
	target := decimal.NewFromInt(positions.Shares(venue.RITC)).Mul(compositeMid).Neg()
	return target.Sub(positions.Cash(venue.USD))
}

// RunOnce measures drift and fires a chunked correction when it exceeds
// the tolerance. It reports whether a correction was sent. A one-sided
// composite quote has no usable mid, so the stage stands down for the
// cycle rather than correcting against a sentinel price.
func (r *CurrencyRebalancer) RunOnce(ctx context.Context, quotes venue.QuoteSet, positions *venue.PositionSet) bool {
	if !quotes.Get(venue.RITC).TwoSided() {
		r.logger.Warn(ctx, "composite quote unavailable, skipping rebalance")
		return false
	}

	drift := r.Drift(quotes, positions)
	if drift.Abs().LessThanOrEqual(r.cfg.DriftTolerance) {
		return false
	}

	side := venue.SideBuy
	if drift.IsNegative() {
		side = venue.SideSell
	}

	if err := r.hedger.HedgeCurrency(ctx, side, drift.Abs()); err != nil {
		r.logger.Error(ctx, "currency rebalance failed", "drift", drift.StringFixed(0), "error", err)
		return false
	}

	event := domain.NewEvent(domain.EventRebalanceExecuted)
	event.Instrument = venue.USD
	event.Side = side
	event.Quantity = drift.Abs().IntPart()
	r.reporter.Publish(ctx, event)

	r.logger.Info(ctx, "currency rebalanced",
		"side", string(side), "notional", drift.Abs().StringFixed(0))
	return true
}
