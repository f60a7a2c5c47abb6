package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	riskApp "github.com/rosiewang37/RITCxSmith/business/risk/app"
	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// arbState is the executor's position in its per-cycle state machine.
type arbState string

const (
	arbIdle          arbState = "IDLE"
	arbEvaluate      arbState = "EVALUATE"
	arbRiskCheck     arbState = "RISK_CHECK"
	arbExecuteLegs   arbState = "EXECUTE_LEGS"
	arbHedgeCurrency arbState = "HEDGE_CURRENCY"
)

// ArbitrageExecutor runs the basket-versus-composite trade. Each cycle it
// walks IDLE through EVALUATE, RISK_CHECK, EXECUTE_LEGS and HEDGE_CURRENCY
// and back to IDLE. Legs are fired as three equal market orders with no
// rollback: a partial fill leaves an imbalance the rebalancer and unwind
// path are built to absorb.
type ArbitrageExecutor struct {
	market   Market
	limiter  *riskApp.Limiter
	edges    *EdgeCalculator
	sizing   *SizingPolicy
	hedger   *HedgeExecutor
	reporter Reporter
	logger   logger.LoggerInterface

	state    arbState
	executed metric.Int64Counter
}

// NewArbitrageExecutor creates an ArbitrageExecutor.
func NewArbitrageExecutor(
	market Market,
	limiter *riskApp.Limiter,
	edges *EdgeCalculator,
	sizing *SizingPolicy,
	hedger *HedgeExecutor,
	reporter Reporter,
	log logger.LoggerInterface,
) *ArbitrageExecutor {
	meter := otel.Meter("trading/arbitrage")
	executed, _ := meter.Int64Counter("trading_arb_executed_total",
		metric.WithDescription("Arbitrage round trips executed"))

	return &ArbitrageExecutor{
		market:   market,
		limiter:  limiter,
		edges:    edges,
		sizing:   sizing,
		hedger:   hedger,
		reporter: reporter,
		logger:   log,
		state:    arbIdle,
		executed: executed,
	}
}

// RunOnce evaluates the current snapshot and executes at most one sized
// trade. It reports whether legs were fired.
func (a *ArbitrageExecutor) RunOnce(ctx context.Context, quotes venue.QuoteSet, positions *venue.PositionSet) bool {
	a.state = arbEvaluate
	defer func() { a.state = arbIdle }()

	pair := a.edges.Compute(ctx, quotes)
	edge, ok := pair.Best()
	if !ok {
		return false
	}

	qty := a.sizing.SizeFor(edge.PerShare)
	if qty == 0 {
		return false
	}

	a.state = arbRiskCheck
	compositeSide := venue.SideBuy
	if edge.Direction == domain.CompositeRich {
		compositeSide = venue.SideSell
	}
	if !a.limiter.Allow(ctx, positions, venue.RITC, compositeSide, qty) {
		// Limit denials are an expected steady state near the ceiling.
		a.logger.Debug(ctx, "arb skipped by limiter",
			"direction", string(edge.Direction), "quantity", qty)
		return false
	}
	if !a.limiter.AllowNotional(ctx, positions, quotes, venue.RITC, compositeSide, qty) {
		return false
	}

	a.state = arbExecuteLegs
	basketSide := compositeSide.Opposite()
	legs := []venue.OrderIntent{
		venue.NewMarketOrder(venue.BULL, basketSide, qty),
		venue.NewMarketOrder(venue.BEAR, basketSide, qty),
		venue.NewMarketOrder(venue.RITC, compositeSide, qty),
	}
	for _, leg := range legs {
		if err := a.market.SubmitOrder(ctx, leg); err != nil {
			a.logger.Warn(ctx, "arb leg failed, leaving imbalance to rebalancer",
				"order", leg.String(), "error", err)
		}
	}

	// The composite trade moves USD exposure by its notional; hedge it
	// back immediately at the composite price just crossed.
	a.state = arbHedgeCurrency
	ritc := quotes.Get(venue.RITC)
	var notional decimal.Decimal
	currencySide := venue.SideSell
	if compositeSide == venue.SideBuy {
		notional = ritc.Ask.Mul(decimal.NewFromInt(qty))
	} else {
		notional = ritc.Bid.Mul(decimal.NewFromInt(qty))
		currencySide = venue.SideBuy
	}
	if err := a.hedger.HedgeCurrency(ctx, currencySide, notional); err != nil {
		a.logger.Error(ctx, "arb currency hedge failed", "error", err)
	}

	a.executed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", string(edge.Direction))))

	event := domain.NewEvent(domain.EventArbExecuted)
	event.Instrument = venue.RITC
	event.Side = compositeSide
	event.Quantity = qty
	event.Edge = edge.PerShare
	a.reporter.Publish(ctx, event)

	a.logger.Info(ctx, "arb executed",
		"direction", string(edge.Direction),
		"quantity", qty,
		"edge", edge.PerShare.StringFixed(4))

	return true
}
