package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// fakeMarket is an in-memory Market with scripted failures.
type fakeMarket struct {
	mu        sync.Mutex
	state     venue.CaseState
	quotes    venue.QuoteSet
	books     map[venue.Instrument]*venue.Book
	positions *venue.PositionSet
	tenders   []venue.TenderOffer

	orders      []venue.OrderIntent
	failSubmits int // fail this many submissions before succeeding
	submitErr   error
	accepted    []int64
	acceptErr   error
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		state:     venue.CaseState{Tick: 100, Status: venue.StatusActive},
		quotes:    testQuotes(),
		books:     make(map[venue.Instrument]*venue.Book),
		positions: venue.NewPositionSet(),
	}
}

func (m *fakeMarket) TickStatus(ctx context.Context) venue.CaseState {
	return m.state
}

func (m *fakeMarket) Quote(ctx context.Context, inst venue.Instrument) venue.Quote {
	return m.quotes.Get(inst)
}

func (m *fakeMarket) Quotes(ctx context.Context, insts ...venue.Instrument) venue.QuoteSet {
	return m.quotes
}

func (m *fakeMarket) Book(ctx context.Context, inst venue.Instrument) (*venue.Book, error) {
	if b, ok := m.books[inst]; ok {
		return b, nil
	}
	return &venue.Book{Instrument: inst}, nil
}

func (m *fakeMarket) Positions(ctx context.Context) (*venue.PositionSet, error) {
	return m.positions, nil
}

func (m *fakeMarket) Tenders(ctx context.Context) ([]venue.TenderOffer, error) {
	return m.tenders, nil
}

func (m *fakeMarket) AcceptTender(ctx context.Context, id int64) error {
	if m.acceptErr != nil {
		return m.acceptErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accepted = append(m.accepted, id)
	return nil
}

func (m *fakeMarket) SubmitOrder(ctx context.Context, intent venue.OrderIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSubmits > 0 {
		m.failSubmits--
		return m.submitErr
	}
	m.orders = append(m.orders, intent)
	return nil
}

// submittedFor returns the recorded orders for one instrument.
func (m *fakeMarket) submittedFor(inst venue.Instrument) []venue.OrderIntent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []venue.OrderIntent
	for _, o := range m.orders {
		if o.Instrument == inst {
			out = append(out, o)
		}
	}
	return out
}

// fakeClock advances instantly and records requested sleeps.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// recordReporter captures published events.
type recordReporter struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordReporter) Publish(ctx context.Context, event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordReporter) byKind(kind domain.EventKind) []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func testLogger() logger.LoggerInterface {
	return logger.New(io.Discard, slog.LevelError, "test", nil)
}

func testQuotes() venue.QuoteSet {
	return venue.QuoteSet{
		venue.BULL: venue.NewQuote(venue.BULL, decimal.RequireFromString("9.99"), decimal.RequireFromString("10.01")),
		venue.BEAR: venue.NewQuote(venue.BEAR, decimal.RequireFromString("14.99"), decimal.RequireFromString("15.01")),
		venue.RITC: venue.NewQuote(venue.RITC, decimal.RequireFromString("18.79"), decimal.RequireFromString("18.81")),
		venue.USD:  venue.NewQuote(venue.USD, decimal.RequireFromString("1.3290"), decimal.RequireFromString("1.3310")),
	}
}

func testHedger(market *fakeMarket, clock *fakeClock, reporter *recordReporter) *HedgeExecutor {
	return NewHedgeExecutor(market, clock, reporter, testLogger(), HedgeConfig{
		MaxOrderShares:   10_000,
		MaxOrderCurrency: decimal.NewFromInt(2_500_000),
		Retries:          5,
		Backoff:          50 * time.Millisecond,
	})
}
