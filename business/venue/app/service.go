package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/apperror"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// MarketService is the venue facade used by the trading and risk contexts.
// Read paths never fail: a venue fault degrades to sentinel quotes so one
// bad cycle cannot take the engine down.
type MarketService struct {
	gateway Gateway
	logger  logger.LoggerInterface
	metrics serviceMetrics
}

type serviceMetrics struct {
	quoteFailures   metric.Int64Counter
	ordersSubmitted metric.Int64Counter
	orderFailures   metric.Int64Counter
}

// NewMarketService creates a MarketService over the given gateway.
func NewMarketService(gateway Gateway, log logger.LoggerInterface) *MarketService {
	meter := otel.Meter("venue/market_service")

	quoteFailures, _ := meter.Int64Counter("venue_quote_failures_total",
		metric.WithDescription("Quote fetches replaced by sentinel values"))
	ordersSubmitted, _ := meter.Int64Counter("venue_orders_submitted_total",
		metric.WithDescription("Orders accepted by the venue"))
	orderFailures, _ := meter.Int64Counter("venue_order_failures_total",
		metric.WithDescription("Orders rejected or failed in transport"))

	return &MarketService{
		gateway: gateway,
		logger:  log,
		metrics: serviceMetrics{
			quoteFailures:   quoteFailures,
			ordersSubmitted: ordersSubmitted,
			orderFailures:   orderFailures,
		},
	}
}

// TickStatus returns the venue clock. A venue fault reads as STOPPED,
// matching the conservative default of never trading blind.
func (s *MarketService) TickStatus(ctx context.Context) domain.CaseState {
	state, err := s.gateway.CaseState(ctx)
	if err != nil {
		s.logger.Warn(ctx, "case state unavailable", "error", err)
		return domain.CaseState{Status: domain.StatusStopped}
	}
	return state
}

// Quote returns the sentinel-safe top of book for an instrument. A
// transient venue fault is routine; anything else, such as a malformed
// book, is logged at error level because it will not clear on its own.
func (s *MarketService) Quote(ctx context.Context, inst domain.Instrument) domain.Quote {
	book, err := s.gateway.Book(ctx, inst)
	if err != nil {
		s.metrics.quoteFailures.Add(ctx, 1,
			metric.WithAttributes(attribute.String("ticker", inst.Ticker())))
		if apperror.IsTransient(err) {
			s.logger.Warn(ctx, "quote unavailable, using sentinels",
				"ticker", inst.Ticker(), "error", err)
		} else {
			s.logger.Error(ctx, "quote failed, using sentinels",
				"ticker", inst.Ticker(), "error", err)
		}
		return domain.EmptyQuote(inst)
	}
	return book.TopOfBook()
}

// Quotes fetches quotes for the given instruments into a QuoteSet.
func (s *MarketService) Quotes(ctx context.Context, insts ...domain.Instrument) domain.QuoteSet {
	set := make(domain.QuoteSet, len(insts))
	for _, inst := range insts {
		set[inst] = s.Quote(ctx, inst)
	}
	return set
}

// Book returns the full order book for depth-aware pricing.
func (s *MarketService) Book(ctx context.Context, inst domain.Instrument) (*domain.Book, error) {
	return s.gateway.Book(ctx, inst)
}

// Positions returns the complete position snapshot.
func (s *MarketService) Positions(ctx context.Context) (*domain.PositionSet, error) {
	return s.gateway.Positions(ctx)
}

// Tenders lists outstanding tender offers.
func (s *MarketService) Tenders(ctx context.Context) ([]domain.TenderOffer, error) {
	return s.gateway.Tenders(ctx)
}

// AcceptTender accepts a tender offer by id.
func (s *MarketService) AcceptTender(ctx context.Context, id int64) error {
	return s.gateway.AcceptTender(ctx, id)
}

// SubmitOrder submits an order intent and records metrics on the outcome.
func (s *MarketService) SubmitOrder(ctx context.Context, intent domain.OrderIntent) error {
	err := s.gateway.SubmitOrder(ctx, intent)
	attrs := metric.WithAttributes(
		attribute.String("ticker", intent.Instrument.Ticker()),
		attribute.String("side", string(intent.Side)),
	)
	if err != nil {
		s.metrics.orderFailures.Add(ctx, 1, attrs)
		return err
	}
	s.metrics.ordersSubmitted.Add(ctx, 1, attrs)
	return nil
}
