// Package app contains application services and port definitions for the venue context.
package app

import (
	"context"

	"github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// Gateway defines the venue access port implemented by the REST adapter.
type Gateway interface {
	// CaseState fetches the venue clock and session status.
	CaseState(ctx context.Context) (domain.CaseState, error)

	// Book retrieves the full order book for an instrument.
	Book(ctx context.Context, inst domain.Instrument) (*domain.Book, error)

	// Positions retrieves the complete position snapshot.
	Positions(ctx context.Context) (*domain.PositionSet, error)

	// Tenders lists outstanding tender offers.
	Tenders(ctx context.Context) ([]domain.TenderOffer, error)

	// AcceptTender accepts a tender offer by id.
	AcceptTender(ctx context.Context, id int64) error

	// SubmitOrder submits an order intent.
	SubmitOrder(ctx context.Context, intent domain.OrderIntent) error
}
