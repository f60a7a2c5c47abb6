package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

func makeRebalancer(market *fakeMarket, reporter *recordReporter) *CurrencyRebalancer {
	hedger := testHedger(market, newFakeClock(), reporter)
	return NewCurrencyRebalancer(hedger, reporter, testLogger(), RebalanceConfig{
		DriftTolerance: decimal.NewFromInt(2_000),
	})
}

func TestCurrencyRebalancer_Drift(t *testing.T) {
	market := newFakeMarket()
	rebalancer := makeRebalancer(market, &recordReporter{})

	// RITC mid is 18.80. Long 10000 composite targets -188000 USD; a
	// 52000 balance leaves 240000 to sell.
	pos := venue.NewPositionSet()
	pos.SetShares(venue.RITC, 10_000)
	pos.SetCash(venue.USD, decimal.NewFromInt(52_000))

	drift := rebalancer.Drift(market.quotes, pos)
	if !drift.Equal(decimal.NewFromInt(-240_000)) {
		t.Errorf("Drift = %s, want -240000", drift)
	}
}

func TestCurrencyRebalancer_SentinelQuoteStandsDown(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	market.quotes[venue.RITC] = venue.EmptyQuote(venue.RITC)
	reporter := &recordReporter{}
	rebalancer := makeRebalancer(market, reporter)

	// A sentinel mid near 5e11 would otherwise read as astronomical drift.
	pos := venue.NewPositionSet()
	pos.SetShares(venue.RITC, 12_000)

	if rebalancer.RunOnce(ctx, market.quotes, pos) {
		t.Fatal("RunOnce fired a correction against a sentinel composite quote")
	}
	if orders := market.submittedFor(venue.USD); len(orders) != 0 {
		t.Errorf("submitted %d currency orders, want none", len(orders))
	}
}

func TestCurrencyRebalancer_RunOnce(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		ritc     int64
		usdCash  string
		wantFire bool
		wantSide venue.Side
		wantQty  int64
	}{
		{
			name:     "drift_beyond_tolerance_sells",
			ritc:     10_000,
			usdCash:  "52000",
			wantFire: true,
			wantSide: venue.SideSell,
			wantQty:  240_000,
		},
		{
			name:     "short_composite_buys_usd",
			ritc:     -10_000,
			usdCash:  "0",
			wantFire: true,
			wantSide: venue.SideBuy,
			wantQty:  188_000,
		},
		{
			name:    "drift_inside_tolerance_holds",
			ritc:    100,
			usdCash: "-1900", // drift 20, well inside the band
		},
		{
			name:    "drift_exactly_at_tolerance_holds",
			ritc:    0,
			usdCash: "2000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := newFakeMarket()
			reporter := &recordReporter{}
			rebalancer := makeRebalancer(market, reporter)

			pos := venue.NewPositionSet()
			pos.SetShares(venue.RITC, tt.ritc)
			pos.SetCash(venue.USD, decimal.RequireFromString(tt.usdCash))

			fired := rebalancer.RunOnce(ctx, market.quotes, pos)
			if fired != tt.wantFire {
				t.Fatalf("RunOnce() = %v, want %v", fired, tt.wantFire)
			}

			orders := market.submittedFor(venue.USD)
			if !tt.wantFire {
				if len(orders) != 0 {
					t.Errorf("submitted %d orders, want none", len(orders))
				}
				return
			}

			var total int64
			for _, o := range orders {
				if o.Side != tt.wantSide {
					t.Errorf("order side = %s, want %s", o.Side, tt.wantSide)
				}
				total += o.Quantity
			}
			if total != tt.wantQty {
				t.Errorf("total corrected = %d, want %d", total, tt.wantQty)
			}

			events := reporter.byKind(domain.EventRebalanceExecuted)
			if len(events) != 1 {
				t.Errorf("published %d RebalanceExecuted events, want 1", len(events))
			}
		})
	}
}
