// Package rit implements the venue adapter for the RIT exchange REST API.
package rit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/apperror"
	"github.com/rosiewang37/RITCxSmith/internal/circuitbreaker"
	"github.com/rosiewang37/RITCxSmith/internal/httpclient"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
	"github.com/rosiewang37/RITCxSmith/internal/ratelimit"
)

const (
	tracerName = "venue/rit"

	caseEndpoint       = "/case"
	securitiesEndpoint = "/securities"
	bookEndpoint       = "/securities/book"
	ordersEndpoint     = "/orders"
	tendersEndpoint    = "/tenders"

	defaultTimeout = 2 * time.Second
)

// ClientConfig holds configuration for the RIT client.
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	RequestBurst      int
}

// Client talks to the RIT exchange. All read paths go through a circuit
// breaker so a dead venue fails fast instead of stalling the trading loop;
// every call waits on a shared rate limiter.
type Client struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	readCB  *circuitbreaker.CircuitBreaker[*httpclient.Response]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewClient creates a RIT client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("rit client requires an API key"))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.RequestBurst
	if burst <= 0 {
		burst = 5
	}

	tracer := otel.Tracer(tracerName)

	http, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("rit"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceResponse),
		httpclient.WithHeaders(map[string]string{
			"X-API-key": cfg.APIKey,
			"Accept":    "application/json",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	cbCfg := circuitbreaker.DefaultConfig("rit-read")
	c := &Client{
		http:    http,
		limiter: ratelimit.NewWithBurst(rps, burst),
		logger:  log,
		tracer:  tracer,
	}
	c.readCB = circuitbreaker.New[*httpclient.Response](cbCfg)

	return c, nil
}

// ritErrorHandler maps venue HTTP status codes to apperror codes.
func ritErrorHandler(statusCode int, body []byte) error {
	switch {
	case statusCode == 401:
		return apperror.New(apperror.CodeVenueAPIError,
			apperror.WithContext("authentication rejected"))
	case statusCode == 429:
		return apperror.New(apperror.CodeRateLimitExceeded,
			apperror.WithContext(string(body)))
	case statusCode >= 500:
		return apperror.New(apperror.CodeVenueUnavailable,
			apperror.WithContext(fmt.Sprintf("status %d: %s", statusCode, body)))
	case statusCode >= 400:
		return apperror.New(apperror.CodeVenueAPIError,
			apperror.WithContext(fmt.Sprintf("status %d: %s", statusCode, body)))
	}
	return nil
}

// get executes a rate-limited GET through the circuit breaker.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.Wrap(err, apperror.CodeVenueTimeout, "rate limiter wait")
	}

	_, err := c.readCB.Execute(func() (*httpclient.Response, error) {
		req := c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("endpoint", endpoint)),
			httpclient.WithResponseErrorHandler(ritErrorHandler),
		).SetResult(result)
		for k, v := range params {
			req.SetQueryParam(k, v)
		}
		return req.Get(ctx, endpoint)
	})
	if err != nil {
		return wrapTransport(err, endpoint)
	}
	return nil
}

func wrapTransport(err error, endpoint string) error {
	if apperror.IsAppError(err) {
		return err
	}
	if ctxErr := contextCode(err); ctxErr != nil {
		return ctxErr
	}
	return apperror.Wrap(err, apperror.CodeVenueUnavailable, endpoint)
}

func contextCode(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.New(apperror.CodeVenueTimeout, apperror.WithCause(err))
	}
	return nil
}

// CaseState fetches the venue clock and session status.
func (c *Client) CaseState(ctx context.Context) (domain.CaseState, error) {
	ctx, span := c.tracer.Start(ctx, "rit.case")
	defer span.End()

	var resp caseResponse
	if err := c.get(ctx, caseEndpoint, nil, &resp); err != nil {
		span.RecordError(err)
		return domain.CaseState{Status: domain.StatusStopped}, err
	}

	span.SetAttributes(attribute.Int("tick", resp.Tick), attribute.String("status", resp.Status))
	return domain.CaseState{Tick: resp.Tick, Status: domain.CaseStatus(resp.Status)}, nil
}

// validateBook rejects malformed book payloads before they become domain
// levels. Prices and quantities must be finite and non-negative.
func validateBook(resp bookResponse) error {
	check := func(levels []bookLevel) error {
		for _, lvl := range levels {
			if math.IsNaN(lvl.Price) || math.IsInf(lvl.Price, 0) || lvl.Price < 0 || lvl.Quantity < 0 {
				return apperror.New(apperror.CodeInvalidBook,
					apperror.WithContext(fmt.Sprintf("level price=%v quantity=%v", lvl.Price, lvl.Quantity)))
			}
		}
		return nil
	}
	if err := check(resp.Bids); err != nil {
		return err
	}
	return check(resp.Asks)
}

// Book fetches the full order book for an instrument.
func (c *Client) Book(ctx context.Context, inst domain.Instrument) (*domain.Book, error) {
	ctx, span := c.tracer.Start(ctx, "rit.book",
		trace.WithAttributes(attribute.String("ticker", inst.Ticker())),
	)
	defer span.End()

	var resp bookResponse
	err := c.get(ctx, bookEndpoint, map[string]string{"ticker": inst.Ticker()}, &resp)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := validateBook(resp); err != nil {
		span.RecordError(err)
		return nil, apperror.Wrap(err, apperror.CodeInvalidBook, inst.Ticker())
	}

	book := &domain.Book{Instrument: inst}
	for _, lvl := range resp.Bids {
		book.Bids = append(book.Bids, domain.Level{
			Price:    decimal.NewFromFloat(lvl.Price),
			Quantity: int64(math.Round(lvl.Quantity)),
		})
	}
	for _, lvl := range resp.Asks {
		book.Asks = append(book.Asks, domain.Level{
			Price:    decimal.NewFromFloat(lvl.Price),
			Quantity: int64(math.Round(lvl.Quantity)),
		})
	}
	return book, nil
}

// Positions fetches the complete position snapshot. Instruments missing
// from the venue response keep their zero defaults.
func (c *Client) Positions(ctx context.Context) (*domain.PositionSet, error) {
	ctx, span := c.tracer.Start(ctx, "rit.positions")
	defer span.End()

	var resp []securityResponse
	if err := c.get(ctx, securitiesEndpoint, nil, &resp); err != nil {
		span.RecordError(err)
		return nil, err
	}

	positions := domain.NewPositionSet()
	for _, sec := range resp {
		inst := domain.Instrument(sec.Ticker)
		if inst.IsCurrency() {
			positions.SetCash(inst, decimal.NewFromFloat(sec.Position))
		} else {
			positions.SetShares(inst, int64(math.Round(sec.Position)))
		}
	}
	return positions, nil
}

// Tenders fetches outstanding tender offers.
func (c *Client) Tenders(ctx context.Context) ([]domain.TenderOffer, error) {
	ctx, span := c.tracer.Start(ctx, "rit.tenders")
	defer span.End()

	var resp []tenderResponse
	if err := c.get(ctx, tendersEndpoint, nil, &resp); err != nil {
		span.RecordError(err)
		return nil, err
	}

	offers := make([]domain.TenderOffer, 0, len(resp))
	for _, t := range resp {
		offers = append(offers, domain.TenderOffer{
			ID:       t.TenderID,
			Side:     domain.Side(t.Action),
			Price:    decimal.NewFromFloat(t.Price),
			Quantity: int64(math.Round(t.Quantity)),
		})
	}
	return offers, nil
}

// AcceptTender accepts a tender offer by id.
func (c *Client) AcceptTender(ctx context.Context, id int64) error {
	ctx, span := c.tracer.Start(ctx, "rit.accept_tender",
		trace.WithAttributes(attribute.Int64("tender_id", id)),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.Wrap(err, apperror.CodeVenueTimeout, "rate limiter wait")
	}

	_, err := c.http.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", "tender_accept")),
		httpclient.WithResponseErrorHandler(func(status int, body []byte) error {
			if status >= 400 {
				return apperror.New(apperror.CodeTenderRejected,
					apperror.WithContext(fmt.Sprintf("tender %d: status %d: %s", id, status, body)))
			}
			return nil
		}),
	).Post(ctx, fmt.Sprintf("%s/%d", tendersEndpoint, id))
	if err != nil {
		span.RecordError(err)
		return wrapTransport(err, tendersEndpoint)
	}

	c.logger.Info(ctx, "tender accepted", "tender_id", id)
	return nil
}

// SubmitOrder submits an order. The venue takes order fields as query
// parameters, not a JSON body.
func (c *Client) SubmitOrder(ctx context.Context, intent domain.OrderIntent) error {
	if err := intent.Validate(); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, "order validation")
	}

	ctx, span := c.tracer.Start(ctx, "rit.submit_order",
		trace.WithAttributes(
			attribute.String("ticker", intent.Instrument.Ticker()),
			attribute.String("side", string(intent.Side)),
			attribute.Int64("quantity", intent.Quantity),
			attribute.String("style", string(intent.Style)),
		),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.Wrap(err, apperror.CodeVenueTimeout, "rate limiter wait")
	}

	req := c.http.NewRequestWithOptions(
		httpclient.WithLabels(
			httpclient.NewLabel("endpoint", "orders"),
			httpclient.NewLabel("ticker", intent.Instrument.Ticker()),
		),
		httpclient.WithResponseErrorHandler(func(status int, body []byte) error {
			if status >= 400 {
				return apperror.New(apperror.CodeOrderRejected,
					apperror.WithContext(fmt.Sprintf("%s: status %d: %s", intent, status, body)))
			}
			return nil
		}),
	).
		SetQueryParam("ticker", intent.Instrument.Ticker()).
		SetQueryParam("type", string(intent.Style)).
		SetQueryParam("quantity", strconv.FormatInt(intent.Quantity, 10)).
		SetQueryParam("action", string(intent.Side))

	if intent.Style == domain.StyleLimit {
		req.SetQueryParam("price", intent.Price.String())
	}

	var resp orderResponse
	_, err := req.SetResult(&resp).Post(ctx, ordersEndpoint)
	if err != nil {
		span.RecordError(err)
		return wrapTransport(err, ordersEndpoint)
	}

	c.logger.Debug(ctx, "order submitted",
		"client_id", intent.ClientID,
		"order_id", resp.OrderID,
		"order", intent.String(),
	)
	return nil
}
