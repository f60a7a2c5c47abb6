package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	riskApp "github.com/rosiewang37/RITCxSmith/business/risk/app"
	riskDomain "github.com/rosiewang37/RITCxSmith/business/risk/domain"
	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// EngineConfig holds loop pacing.
type EngineConfig struct {
	CycleInterval time.Duration
}

// Engine is the scheduler loop. Each cycle it gates on the venue clock,
// refreshes market state exactly once, then runs the stages in priority
// order: safety hedging, tender evaluation, arbitrage, currency
// rebalancing, and the unwind check. While the unwind controller is
// engaged, tender and arbitrage stages are suspended and offsetting
// chunks run in their place.
type Engine struct {
	market     Market
	unwind     *riskApp.UnwindController
	safety     *SafetyHedger
	tenders    *TenderEvaluator
	arbitrage  *ArbitrageExecutor
	rebalancer *CurrencyRebalancer
	converter  *ConverterAdvisor
	reporter   Reporter
	clock      Clock
	logger     logger.LoggerInterface
	cfg        EngineConfig

	cycles metric.Int64Counter
	tracer trace.Tracer
}

// NewEngine creates the scheduler loop.
func NewEngine(
	market Market,
	unwind *riskApp.UnwindController,
	safety *SafetyHedger,
	tenders *TenderEvaluator,
	arbitrage *ArbitrageExecutor,
	rebalancer *CurrencyRebalancer,
	converter *ConverterAdvisor,
	reporter Reporter,
	clock Clock,
	log logger.LoggerInterface,
	cfg EngineConfig,
) *Engine {
	meter := otel.Meter("trading/engine")
	cycles, _ := meter.Int64Counter("trading_engine_cycles_total",
		metric.WithDescription("Engine cycles completed"))

	return &Engine{
		market:     market,
		unwind:     unwind,
		safety:     safety,
		tenders:    tenders,
		arbitrage:  arbitrage,
		rebalancer: rebalancer,
		converter:  converter,
		reporter:   reporter,
		clock:      clock,
		logger:     log,
		cfg:        cfg,
		cycles:     cycles,
		tracer:     otel.Tracer("trading/engine"),
	}
}

// Run drives cycles until the context is cancelled or the venue session
// leaves ACTIVE. In-flight hedge retries run to completion before the
// loop re-checks the gate.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info(ctx, "engine started", "cycle_interval", e.cfg.CycleInterval.String())

	for {
		select {
		case <-ctx.Done():
			e.logger.Info(ctx, "engine stopped", "reason", "context cancelled")
			return ctx.Err()
		default:
		}

		state := e.market.TickStatus(ctx)
		if state.Status != venue.StatusActive {
			e.logger.Info(ctx, "engine stopped", "reason", "case not active",
				"status", string(state.Status), "tick", state.Tick)
			return nil
		}

		e.runCycle(ctx, state.Tick)
		e.clock.Sleep(ctx, e.cfg.CycleInterval)
	}
}

// runCycle executes one pass. Any stage hitting a venue fault degrades to
// a no-op for the cycle; nothing propagates out of the loop.
func (e *Engine) runCycle(ctx context.Context, tick int) {
	ctx, span := e.tracer.Start(ctx, "engine.cycle")
	defer span.End()
	defer e.cycles.Add(ctx, 1)

	// Refresh market state once; every stage shares this snapshot.
	quotes := e.market.Quotes(ctx, venue.BULL, venue.BEAR, venue.RITC, venue.USD)
	positions, err := e.market.Positions(ctx)
	if err != nil {
		e.logger.Warn(ctx, "positions unavailable, skipping cycle", "tick", tick, "error", err)
		return
	}

	e.converter.RunOnce(ctx, quotes, positions)
	e.safety.RunOnce(ctx, positions)

	if e.unwind.Unwinding() {
		for _, intent := range e.unwind.PlanStep(positions, quotes) {
			if err := e.market.SubmitOrder(ctx, intent); err != nil {
				e.logger.Warn(ctx, "unwind order failed", "order", intent.String(), "error", err)
			}
		}
	} else {
		e.tenders.ProcessAll(ctx, quotes, positions)
		e.arbitrage.RunOnce(ctx, quotes, positions)
	}

	e.rebalancer.RunOnce(ctx, quotes, positions)

	// Re-read positions for the unwind check so this cycle's fills count.
	if refreshed, err := e.market.Positions(ctx); err == nil {
		positions = refreshed
	}
	exposure := riskDomain.Compute(positions)
	if newState, changed := e.unwind.Evaluate(ctx, exposure); changed {
		kind := domain.EventUnwindCleared
		if newState == riskApp.StateUnwinding {
			kind = domain.EventUnwindEngaged
		}
		event := domain.NewEvent(kind)
		event.Detail = fmt.Sprintf("gross %d, net %d", exposure.Gross, exposure.Net)
		e.reporter.Publish(ctx, event)
		e.logger.Warn(ctx, "unwind state changed",
			"state", string(newState), "gross", exposure.Gross, "net", exposure.Net)
	}
}
