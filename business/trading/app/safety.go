package app

import (
	"context"

	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// SafetyConfig holds the safety hedge thresholds.
type SafetyConfig struct {
	// Threshold is the composite position size below which gaps are ignored.
	Threshold int64
	// ComponentTolerance is the per-component gap, in shares, worth correcting.
	ComponentTolerance int64
	// MaxOrderShares caps a single correction.
	MaxOrderShares int64
}

// SafetyHedger runs before trading each cycle. When a meaningful composite
// position is on the book, each component should sit at minus the
// composite position; gaps beyond the tolerance are corrected through the
// hedge executor. This catches imbalances left by failed legs or partial
// tender hedges before new risk is added on top.
type SafetyHedger struct {
	hedger *HedgeExecutor
	logger logger.LoggerInterface
	cfg    SafetyConfig
}

// NewSafetyHedger creates a SafetyHedger.
func NewSafetyHedger(hedger *HedgeExecutor, log logger.LoggerInterface, cfg SafetyConfig) *SafetyHedger {
	return &SafetyHedger{hedger: hedger, logger: log, cfg: cfg}
}

// Gap returns the signed correction for one component: positive means buy.
func (s *SafetyHedger) Gap(positions *venue.PositionSet, component venue.Instrument) int64 {
	target := -positions.Shares(venue.RITC)
	return target - positions.Shares(component)
}

// RunOnce corrects component gaps against the composite position.
func (s *SafetyHedger) RunOnce(ctx context.Context, positions *venue.PositionSet) {
	composite := positions.Shares(venue.RITC)
	abs := composite
	if abs < 0 {
		abs = -abs
	}
	if abs < s.cfg.Threshold {
		return
	}

	for _, component := range []venue.Instrument{venue.BULL, venue.BEAR} {
		gap := s.Gap(positions, component)
		qty := gap
		side := venue.SideBuy
		if qty < 0 {
			qty = -qty
			side = venue.SideSell
		}
		if qty <= s.cfg.ComponentTolerance {
			continue
		}
		if qty > s.cfg.MaxOrderShares {
			qty = s.cfg.MaxOrderShares
		}

		s.logger.Info(ctx, "safety hedge correcting component gap",
			"ticker", component.Ticker(), "side", string(side), "quantity", qty,
			"composite", composite)
		if err := s.hedger.HedgeShares(ctx, component, side, qty); err != nil {
			s.logger.Error(ctx, "safety hedge failed",
				"ticker", component.Ticker(), "error", err)
		}
	}
}
