package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

func makeAdvisor(reporter *recordReporter) *ConverterAdvisor {
	return NewConverterAdvisor(reporter, ConverterConfig{
		BlockSize:    10_000,
		FeeUSD:       decimal.NewFromInt(1_500),
		GrossCeiling: 300_000,
	})
}

// wideRITCQuotes widens the composite book well past the basket books.
func wideRITCQuotes() venue.QuoteSet {
	quotes := testQuotes()
	quotes[venue.RITC] = venue.NewQuote(venue.RITC,
		decimal.RequireFromString("18.60"), decimal.RequireFromString("19.00"))
	return quotes
}

func TestConverterAdvisor_RedemptionAdvised(t *testing.T) {
	ctx := context.Background()
	reporter := &recordReporter{}
	advisor := makeAdvisor(reporter)

	pos := venue.NewPositionSet()
	pos.SetShares(venue.RITC, 9_000) // within 80% of a block

	advisor.RunOnce(ctx, wideRITCQuotes(), pos)

	events := reporter.byKind(domain.EventRedemptionAdvised)
	if len(events) != 1 {
		t.Fatalf("published %d RedemptionAdvised events, want 1", len(events))
	}
	if events[0].Quantity != 10_000 {
		t.Errorf("advised block = %d, want 10000", events[0].Quantity)
	}
}

func TestConverterAdvisor_CreationAdvised(t *testing.T) {
	ctx := context.Background()
	reporter := &recordReporter{}
	advisor := makeAdvisor(reporter)

	// Basket books wide, composite tight.
	quotes := testQuotes()
	quotes[venue.BULL] = venue.NewQuote(venue.BULL,
		decimal.RequireFromString("9.85"), decimal.RequireFromString("10.15"))
	quotes[venue.BEAR] = venue.NewQuote(venue.BEAR,
		decimal.RequireFromString("14.85"), decimal.RequireFromString("15.15"))

	pos := venue.NewPositionSet()
	pos.SetShares(venue.BULL, 12_000)
	pos.SetShares(venue.BEAR, 8_500) // the matched pair is min(12000, 8500)

	advisor.RunOnce(ctx, quotes, pos)

	events := reporter.byKind(domain.EventCreationAdvised)
	if len(events) != 1 {
		t.Fatalf("published %d CreationAdvised events, want 1", len(events))
	}
}

func TestConverterAdvisor_QuietBookStaysSilent(t *testing.T) {
	ctx := context.Background()
	reporter := &recordReporter{}
	advisor := makeAdvisor(reporter)

	tests := []struct {
		name string
		ritc int64
		bull int64
		bear int64
	}{
		{name: "no_inventory"},
		{name: "inventory_below_block_fraction", ritc: 7_000},
		{name: "unmatched_basket", bull: 12_000, bear: 1_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := venue.NewPositionSet()
			pos.SetShares(venue.RITC, tt.ritc)
			pos.SetShares(venue.BULL, tt.bull)
			pos.SetShares(venue.BEAR, tt.bear)

			advisor.RunOnce(ctx, wideRITCQuotes(), pos)
		})
	}

	if len(reporter.events) != 0 {
		t.Errorf("published %d events on a quiet book, want none", len(reporter.events))
	}
}

func TestConverterAdvisor_GrossPressureOverridesSpreads(t *testing.T) {
	ctx := context.Background()
	reporter := &recordReporter{}
	advisor := makeAdvisor(reporter)

	// Tight composite book would normally stay silent, but the book is
	// pressed against the gross ceiling.
	pos := venue.NewPositionSet()
	pos.SetShares(venue.RITC, 100_000) // gross 200000
	pos.SetShares(venue.BULL, -40_000)
	pos.SetShares(venue.BEAR, -40_000) // gross 280000 of a 300000 ceiling

	advisor.RunOnce(ctx, testQuotes(), pos)

	events := reporter.byKind(domain.EventRedemptionAdvised)
	if len(events) != 1 {
		t.Fatalf("published %d RedemptionAdvised events under gross pressure, want 1", len(events))
	}
}
