package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/apperror"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// HedgeConfig holds hedge execution parameters.
type HedgeConfig struct {
	MaxOrderShares   int64
	MaxOrderCurrency decimal.Decimal
	Retries          int
	Backoff          time.Duration
}

// HedgeExecutor places must-fill orders. Quantities above the per-order
// ceiling are split into chunks; each chunk is retried with exponential
// backoff until it goes through or the retry budget runs out. Hedges are
// risk-reducing by construction and never consult the limiter.
type HedgeExecutor struct {
	market   Market
	clock    Clock
	reporter Reporter
	logger   logger.LoggerInterface
	cfg      HedgeConfig

	retriesMetric   metric.Int64Counter
	exhaustedMetric metric.Int64Counter
}

// NewHedgeExecutor creates a HedgeExecutor.
func NewHedgeExecutor(market Market, clock Clock, reporter Reporter, log logger.LoggerInterface, cfg HedgeConfig) *HedgeExecutor {
	meter := otel.Meter("trading/hedge")
	retries, _ := meter.Int64Counter("trading_hedge_retries_total",
		metric.WithDescription("Hedge order submissions retried"))
	exhausted, _ := meter.Int64Counter("trading_hedge_exhausted_total",
		metric.WithDescription("Hedges abandoned after the retry budget"))

	return &HedgeExecutor{
		market:          market,
		clock:           clock,
		reporter:        reporter,
		logger:          log,
		cfg:             cfg,
		retriesMetric:   retries,
		exhaustedMetric: exhausted,
	}
}

// HedgeShares executes a share hedge of qty shares, chunked by the
// per-order ceiling.
func (h *HedgeExecutor) HedgeShares(ctx context.Context, inst venue.Instrument, side venue.Side, qty int64) error {
	remaining := qty
	for remaining > 0 {
		chunk := remaining
		if chunk > h.cfg.MaxOrderShares {
			chunk = h.cfg.MaxOrderShares
		}
		if err := h.placeChunk(ctx, inst, side, chunk); err != nil {
			return err
		}
		remaining -= chunk
	}
	return nil
}

// HedgeCurrency executes a currency hedge of the given notional, chunked
// by the per-order currency ceiling. The notional is truncated to whole
// currency units.
func (h *HedgeExecutor) HedgeCurrency(ctx context.Context, side venue.Side, notional decimal.Decimal) error {
	remaining := notional.Abs().IntPart()
	maxChunk := h.cfg.MaxOrderCurrency.IntPart()
	for remaining > 0 {
		chunk := remaining
		if chunk > maxChunk {
			chunk = maxChunk
		}
		if err := h.placeChunk(ctx, venue.USD, side, chunk); err != nil {
			return err
		}
		remaining -= chunk
	}
	return nil
}

// placeChunk submits one chunk with bounded retries. The first success
// stops retrying; exhaustion emits a HedgeExhausted event and returns an
// error the caller cannot mistake for a fill.
func (h *HedgeExecutor) placeChunk(ctx context.Context, inst venue.Instrument, side venue.Side, qty int64) error {
	backoff := h.cfg.Backoff
	var lastErr error

	for attempt := 0; attempt < h.cfg.Retries; attempt++ {
		if attempt > 0 {
			h.retriesMetric.Add(ctx, 1, metric.WithAttributes(
				attribute.String("ticker", inst.Ticker())))
			h.clock.Sleep(ctx, backoff)
			backoff *= 2
		}

		intent := venue.NewMarketOrder(inst, side, qty)
		if err := h.market.SubmitOrder(ctx, intent); err != nil {
			lastErr = err
			h.logger.Warn(ctx, "hedge chunk failed",
				"ticker", inst.Ticker(), "side", string(side), "quantity", qty,
				"attempt", attempt+1, "error", err)
			continue
		}
		return nil
	}

	h.exhaustedMetric.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ticker", inst.Ticker())))

	event := domain.NewEvent(domain.EventHedgeExhausted)
	event.Instrument = inst
	event.Side = side
	event.Quantity = qty
	event.Detail = "retry budget exhausted, position unhedged"
	h.reporter.Publish(ctx, event)

	h.logger.Error(ctx, "hedge exhausted, position unhedged",
		"ticker", inst.Ticker(), "side", string(side), "quantity", qty,
		"retries", h.cfg.Retries, "error", lastErr)

	return apperror.New(apperror.CodeHedgeExhausted,
		apperror.WithCause(lastErr),
		apperror.WithContext(inst.Ticker()))
}
