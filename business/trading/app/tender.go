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

// TenderConfig holds tender evaluation thresholds, per share in CAD.
type TenderConfig struct {
	Margin            decimal.Decimal
	LiquidationMargin decimal.Decimal
}

// TenderEvaluator prices institutional block offers against the basket.
// Profit is computed with a depth-weighted walk of the component books at
// the full block size, so a thin book cannot flatter the offer. An
// accepted tender is hedged unconditionally: the block is principal risk
// already on the book, and the hedge only reduces it.
type TenderEvaluator struct {
	market   Market
	limiter  *riskApp.Limiter
	unwind   *riskApp.UnwindController
	hedger   *HedgeExecutor
	reporter Reporter
	logger   logger.LoggerInterface
	cfg      TenderConfig

	evaluated metric.Int64Counter
	accepted  metric.Int64Counter
}

// NewTenderEvaluator creates a TenderEvaluator.
func NewTenderEvaluator(
	market Market,
	limiter *riskApp.Limiter,
	unwind *riskApp.UnwindController,
	hedger *HedgeExecutor,
	reporter Reporter,
	log logger.LoggerInterface,
	cfg TenderConfig,
) *TenderEvaluator {
	meter := otel.Meter("trading/tender")
	evaluated, _ := meter.Int64Counter("trading_tenders_evaluated_total",
		metric.WithDescription("Tender offers evaluated"))
	accepted, _ := meter.Int64Counter("trading_tenders_accepted_total",
		metric.WithDescription("Tender offers accepted"))

	return &TenderEvaluator{
		market:    market,
		limiter:   limiter,
		unwind:    unwind,
		hedger:    hedger,
		reporter:  reporter,
		logger:    log,
		cfg:       cfg,
		evaluated: evaluated,
		accepted:  accepted,
	}
}

// ProcessAll fetches and evaluates every outstanding tender offer.
func (t *TenderEvaluator) ProcessAll(ctx context.Context, quotes venue.QuoteSet, positions *venue.PositionSet) {
	offers, err := t.market.Tenders(ctx)
	if err != nil {
		t.logger.Warn(ctx, "tender fetch failed", "error", err)
		return
	}

	for _, offer := range offers {
		t.evaluate(ctx, offer, quotes, positions)
	}
}

// Profit returns the per-share CAD profit of taking the offer, walking
// the component books at the block size. ok is false when visible depth
// cannot absorb the block.
func (t *TenderEvaluator) Profit(ctx context.Context, offer venue.TenderOffer, quotes venue.QuoteSet) (decimal.Decimal, bool) {
	bullBook, errBull := t.market.Book(ctx, venue.BULL)
	bearBook, errBear := t.market.Book(ctx, venue.BEAR)
	if errBull != nil || errBear != nil {
		return decimal.Zero, false
	}

	usd := quotes.Get(venue.USD)

	if offer.Side == venue.SideBuy {
		// We buy the block; exit is selling the basket into the bids.
		bullFill, okBull := bullBook.FillPrice(venue.SideSell, offer.Quantity)
		bearFill, okBear := bearBook.FillPrice(venue.SideSell, offer.Quantity)
		if !okBull || !okBear {
			return decimal.Zero, false
		}
		syntheticSell := bullFill.Add(bearFill)
		costCAD := offer.Price.Mul(usd.Ask)
		return syntheticSell.Sub(costCAD), true
	}

	// We sell the block; cover is buying the basket off the asks.
	bullFill, okBull := bullBook.FillPrice(venue.SideBuy, offer.Quantity)
	bearFill, okBear := bearBook.FillPrice(venue.SideBuy, offer.Quantity)
	if !okBull || !okBear {
		return decimal.Zero, false
	}
	syntheticBuy := bullFill.Add(bearFill)
	proceedsCAD := offer.Price.Mul(usd.Bid)
	return proceedsCAD.Sub(syntheticBuy), true
}

func (t *TenderEvaluator) evaluate(ctx context.Context, offer venue.TenderOffer, quotes venue.QuoteSet, positions *venue.PositionSet) {
	t.evaluated.Add(ctx, 1)

	profit, ok := t.Profit(ctx, offer, quotes)
	if !ok {
		t.logger.Debug(ctx, "tender skipped, insufficient depth", "tender", offer.String())
		return
	}
	if profit.LessThanOrEqual(t.cfg.Margin) {
		return
	}

	if t.limiter.Allow(ctx, positions, venue.RITC, offer.Side, offer.Quantity) {
		t.accept(ctx, offer, profit)
		return
	}

	// The block breaches limits. A wide enough profit justifies
	// flattening the existing book to make room.
	if profit.LessThanOrEqual(t.cfg.LiquidationMargin) {
		t.logger.Info(ctx, "tender profitable but breaches limits, skipping",
			"tender", offer.String(), "profit", profit.StringFixed(4))
		return
	}

	t.logger.Info(ctx, "flattening book to make room for tender",
		"tender", offer.String(), "profit", profit.StringFixed(4))
	for _, intent := range t.unwind.PlanFlatten(positions) {
		if err := t.market.SubmitOrder(ctx, intent); err != nil {
			t.logger.Warn(ctx, "make-room order failed", "order", intent.String(), "error", err)
		}
	}
	t.accept(ctx, offer, profit)
}

// accept takes the block and immediately hedges the principal: the
// currency notional plus both components, sized to the block. Hedges
// never pass through the limiter.
func (t *TenderEvaluator) accept(ctx context.Context, offer venue.TenderOffer, profit decimal.Decimal) {
	if err := t.market.AcceptTender(ctx, offer.ID); err != nil {
		t.logger.Warn(ctx, "tender acceptance failed", "tender", offer.String(), "error", err)
		return
	}

	t.accepted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("side", string(offer.Side))))

	event := domain.NewEvent(domain.EventTenderAccepted)
	event.Instrument = venue.RITC
	event.Side = offer.Side
	event.Quantity = offer.Quantity
	event.Price = offer.Price
	event.Edge = profit
	t.reporter.Publish(ctx, event)

	t.logger.Info(ctx, "tender accepted",
		"tender", offer.String(), "profit", profit.StringFixed(4))

	notional := offer.Price.Mul(decimal.NewFromInt(offer.Quantity))
	hedgeSide := venue.SideSell
	if offer.Side == venue.SideSell {
		hedgeSide = venue.SideBuy
	}

	if err := t.hedger.HedgeCurrency(ctx, hedgeSide, notional); err != nil {
		t.logger.Error(ctx, "tender currency hedge failed", "error", err)
	}
	if err := t.hedger.HedgeShares(ctx, venue.BULL, hedgeSide, offer.Quantity); err != nil {
		t.logger.Error(ctx, "tender component hedge failed", "ticker", "BULL", "error", err)
	}
	if err := t.hedger.HedgeShares(ctx, venue.BEAR, hedgeSide, offer.Quantity); err != nil {
		t.logger.Error(ctx, "tender component hedge failed", "ticker", "BEAR", "error", err)
	}
}
