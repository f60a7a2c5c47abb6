// Package app contains application services and port definitions for the trading context.
package app

import (
	"context"
	"time"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// Market is the venue access port used by trading components. The venue
// context's MarketService satisfies it.
type Market interface {
	TickStatus(ctx context.Context) venue.CaseState
	Quote(ctx context.Context, inst venue.Instrument) venue.Quote
	Quotes(ctx context.Context, insts ...venue.Instrument) venue.QuoteSet
	Book(ctx context.Context, inst venue.Instrument) (*venue.Book, error)
	Positions(ctx context.Context) (*venue.PositionSet, error)
	Tenders(ctx context.Context) ([]venue.TenderOffer, error)
	AcceptTender(ctx context.Context, id int64) error
	SubmitOrder(ctx context.Context, intent venue.OrderIntent) error
}

// Reporter receives structured engine events. Implementations own all
// presentation; the core never renders.
type Reporter interface {
	Publish(ctx context.Context, event domain.Event)
}

// Clock abstracts time for retry backoff so tests can run without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d or until the context is cancelled.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
