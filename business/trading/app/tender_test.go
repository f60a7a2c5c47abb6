package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	riskApp "github.com/rosiewang37/RITCxSmith/business/risk/app"
	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

func makeEvaluator(market *fakeMarket, reporter *recordReporter) *TenderEvaluator {
	limiter := riskApp.NewLimiter(riskApp.LimiterConfig{
		GrossCeiling: 300_000,
		NetCeiling:   200_000,
	})
	unwind := riskApp.NewUnwindController(riskApp.UnwindConfig{
		Trigger:             0.85,
		GrossCeiling:        300_000,
		Chunk:               1_000,
		MinPosition:         500,
		AggressiveThreshold: 2_000,
		MaxOrder:            10_000,
	})
	hedger := testHedger(market, newFakeClock(), reporter)
	return NewTenderEvaluator(market, limiter, unwind, hedger, reporter, testLogger(), TenderConfig{
		Margin:            decimal.RequireFromString("0.10"),
		LiquidationMargin: decimal.RequireFromString("0.25"),
	})
}

// deepBooks installs component books that absorb a 50000 share block.
// Selling 50000 BULL into the bids averages 9.98; selling 50000 BEAR
// averages 14.98, so the basket exit is worth 24.96 CAD per share.
func deepBooks(market *fakeMarket) {
	market.books[venue.BULL] = &venue.Book{
		Instrument: venue.BULL,
		Bids: []venue.Level{
			{Price: decimal.RequireFromString("10.00"), Quantity: 30_000},
			{Price: decimal.RequireFromString("9.95"), Quantity: 30_000},
		},
		Asks: []venue.Level{
			{Price: decimal.RequireFromString("10.02"), Quantity: 60_000},
		},
	}
	market.books[venue.BEAR] = &venue.Book{
		Instrument: venue.BEAR,
		Bids: []venue.Level{
			{Price: decimal.RequireFromString("15.00"), Quantity: 40_000},
			{Price: decimal.RequireFromString("14.90"), Quantity: 20_000},
		},
		Asks: []venue.Level{
			{Price: decimal.RequireFromString("15.02"), Quantity: 60_000},
		},
	}
}

func TestTenderEvaluator_Profit(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	deepBooks(market)
	evaluator := makeEvaluator(market, &recordReporter{})

	t.Run("buy_side_block", func(t *testing.T) {
		offer := venue.TenderOffer{
			ID:       1,
			Side:     venue.SideBuy,
			Price:    decimal.RequireFromString("18.50"),
			Quantity: 50_000,
		}

		profit, ok := evaluator.Profit(ctx, offer, market.quotes)
		if !ok {
			t.Fatal("Profit() ok = false, want true")
		}
		// Basket exit 24.96 less block cost 18.50 * 1.3310 = 24.6235.
		want := decimal.RequireFromString("0.3365")
		if !profit.Sub(want).Abs().LessThan(decimal.RequireFromString("0.000001")) {
			t.Errorf("profit = %s, want %s", profit, want)
		}
	})

	t.Run("sell_side_block", func(t *testing.T) {
		offer := venue.TenderOffer{
			ID:       2,
			Side:     venue.SideSell,
			Price:    decimal.RequireFromString("19.00"),
			Quantity: 50_000,
		}

		profit, ok := evaluator.Profit(ctx, offer, market.quotes)
		if !ok {
			t.Fatal("Profit() ok = false, want true")
		}
		// Proceeds 19.00 * 1.3290 = 25.251 less basket cover 25.04.
		want := decimal.RequireFromString("0.211")
		if !profit.Sub(want).Abs().LessThan(decimal.RequireFromString("0.000001")) {
			t.Errorf("profit = %s, want %s", profit, want)
		}
	})

	t.Run("insufficient_depth", func(t *testing.T) {
		offer := venue.TenderOffer{
			ID:       3,
			Side:     venue.SideBuy,
			Price:    decimal.RequireFromString("18.50"),
			Quantity: 100_000,
		}

		if _, ok := evaluator.Profit(ctx, offer, market.quotes); ok {
			t.Error("Profit() ok = true for a block beyond visible depth")
		}
	})
}

func TestTenderEvaluator_SellBlockHandCalculation(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	market.quotes[venue.USD] = venue.NewQuote(venue.USD,
		decimal.RequireFromString("1.349"), decimal.RequireFromString("1.351"))
	market.books[venue.BULL] = &venue.Book{
		Instrument: venue.BULL,
		Bids:       []venue.Level{{Price: decimal.RequireFromString("10.03"), Quantity: 5_000}},
		Asks:       []venue.Level{{Price: decimal.RequireFromString("10.05"), Quantity: 5_000}},
	}
	market.books[venue.BEAR] = &venue.Book{
		Instrument: venue.BEAR,
		Bids:       []venue.Level{{Price: decimal.RequireFromString("9.53"), Quantity: 5_000}},
		Asks:       []venue.Level{{Price: decimal.RequireFromString("9.55"), Quantity: 5_000}},
	}
	reporter := &recordReporter{}
	evaluator := makeEvaluator(market, reporter)

	offer := venue.TenderOffer{
		ID:       11,
		Side:     venue.SideSell,
		Price:    decimal.RequireFromString("19.00"),
		Quantity: 2_000,
	}

	// Proceeds 19.00 * 1.349 = 25.631 less the 19.60 basket cover.
	profit, ok := evaluator.Profit(ctx, offer, market.quotes)
	if !ok {
		t.Fatal("Profit() ok = false, want true")
	}
	want := decimal.RequireFromString("6.031")
	if !profit.Sub(want).Abs().LessThan(decimal.RequireFromString("0.000001")) {
		t.Errorf("profit = %s, want %s", profit, want)
	}

	// Profit clears the margin, so the block is taken.
	market.tenders = []venue.TenderOffer{offer}
	evaluator.ProcessAll(ctx, market.quotes, market.positions)
	if len(market.accepted) != 1 {
		t.Errorf("accepted = %v, want the block accepted", market.accepted)
	}
}

func TestTenderEvaluator_ProcessAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		price      string
		ritc       int64
		wantAccept bool
		wantHedges bool
	}{
		{
			name:       "profitable_block_accepted_and_hedged",
			price:      "18.50", // profit 0.3365
			wantAccept: true,
			wantHedges: true,
		},
		{
			name:  "thin_profit_skipped",
			price: "18.70", // profit ~0.0703, under the margin
		},
		{
			name:  "breaches_limits_profit_below_liquidation_skipped",
			price: "18.60", // profit ~0.2034, over margin but under liquidation
			ritc:  130_000, // buying 50000 more breaches the gross ceiling
		},
		{
			name:       "breaches_limits_wide_profit_makes_room",
			price:      "18.50", // profit 0.3365, over the liquidation margin
			ritc:       130_000,
			wantAccept: true,
			wantHedges: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := newFakeMarket()
			deepBooks(market)
			market.positions.SetShares(venue.RITC, tt.ritc)
			market.tenders = []venue.TenderOffer{{
				ID:       7,
				Side:     venue.SideBuy,
				Price:    decimal.RequireFromString(tt.price),
				Quantity: 50_000,
			}}
			reporter := &recordReporter{}
			evaluator := makeEvaluator(market, reporter)

			evaluator.ProcessAll(ctx, market.quotes, market.positions)

			if tt.wantAccept != (len(market.accepted) == 1) {
				t.Fatalf("accepted = %v, want accept %v", market.accepted, tt.wantAccept)
			}
			events := reporter.byKind(domain.EventTenderAccepted)
			if tt.wantAccept && len(events) != 1 {
				t.Errorf("published %d TenderAccepted events, want 1", len(events))
			}

			if !tt.wantHedges {
				return
			}

			// A buy-side block is hedged by selling the currency notional
			// and both components at the block size.
			var usdTotal, bullTotal, bearTotal int64
			for _, o := range market.submittedFor(venue.USD) {
				if o.Side != venue.SideSell {
					t.Errorf("currency hedge side = %s, want SELL", o.Side)
				}
				usdTotal += o.Quantity
			}
			for _, o := range market.submittedFor(venue.BULL) {
				if o.Side == venue.SideSell {
					bullTotal += o.Quantity
				}
			}
			for _, o := range market.submittedFor(venue.BEAR) {
				if o.Side == venue.SideSell {
					bearTotal += o.Quantity
				}
			}
			if usdTotal != 925_000 { // 18.50 * 50000
				t.Errorf("currency hedged = %d, want 925000", usdTotal)
			}
			if bullTotal < 50_000 || bearTotal < 50_000 {
				t.Errorf("component hedges = %d/%d, want at least 50000 each", bullTotal, bearTotal)
			}
		})
	}
}

func TestTenderEvaluator_MakeRoomFlattens(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	deepBooks(market)
	market.positions.SetShares(venue.RITC, 130_000)
	market.tenders = []venue.TenderOffer{{
		ID:       9,
		Side:     venue.SideBuy,
		Price:    decimal.RequireFromString("18.50"),
		Quantity: 50_000,
	}}
	reporter := &recordReporter{}
	evaluator := makeEvaluator(market, reporter)

	evaluator.ProcessAll(ctx, market.quotes, market.positions)

	// The existing composite position must be flattened before acceptance,
	// split into chunks the venue will accept.
	var flattened int64
	for _, o := range market.submittedFor(venue.RITC) {
		if o.Side != venue.SideSell {
			continue
		}
		if o.Quantity > 10_000 {
			t.Errorf("make-room order quantity = %d, exceeds the per-order cap", o.Quantity)
		}
		flattened += o.Quantity
	}
	if flattened != 130_000 {
		t.Errorf("make-room flattened %d composite shares, want 130000", flattened)
	}
	if len(market.accepted) != 1 {
		t.Errorf("accepted = %v, want the block accepted after flattening", market.accepted)
	}
}
