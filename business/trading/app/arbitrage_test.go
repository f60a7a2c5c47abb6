package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	riskApp "github.com/rosiewang37/RITCxSmith/business/risk/app"
	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

func makeExecutor(market *fakeMarket, reporter *recordReporter, limiter *riskApp.Limiter) *ArbitrageExecutor {
	sizing := NewSizingPolicy([]domain.Tier{
		{Edge: decimal.RequireFromString("0.04"), Quantity: 1_000},
		{Edge: decimal.RequireFromString("0.08"), Quantity: 3_000},
		{Edge: decimal.RequireFromString("0.15"), Quantity: 6_000},
		{Edge: decimal.RequireFromString("0.25"), Quantity: 10_000},
	}, 10_000)
	hedger := testHedger(market, newFakeClock(), reporter)
	return NewArbitrageExecutor(market, limiter, NewEdgeCalculator(), sizing, hedger, reporter, testLogger())
}

func defaultLimiter() *riskApp.Limiter {
	return riskApp.NewLimiter(riskApp.LimiterConfig{
		GrossCeiling: 300_000,
		NetCeiling:   200_000,
	})
}

func TestArbitrageExecutor_TightMarketNoTrade(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	reporter := &recordReporter{}
	executor := makeExecutor(market, reporter, defaultLimiter())

	// The default quotes price the composite flush with the basket; both
	// directions lose the spread.
	fired := executor.RunOnce(ctx, market.quotes, venue.NewPositionSet())
	if fired {
		t.Error("RunOnce() fired in a tight market")
	}
	if len(market.orders) != 0 {
		t.Errorf("submitted %d orders, want none", len(market.orders))
	}
}

func TestArbitrageExecutor_CompositeCheap(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	// Composite offered at 18.50 USD: 18.50 * 1.3310 = 24.6235 CAD against
	// basket bids worth 24.98, an edge of 0.3565 landing in the top tier.
	market.quotes[venue.RITC] = venue.NewQuote(venue.RITC,
		decimal.RequireFromString("18.40"), decimal.RequireFromString("18.50"))
	reporter := &recordReporter{}
	executor := makeExecutor(market, reporter, defaultLimiter())

	fired := executor.RunOnce(ctx, market.quotes, venue.NewPositionSet())
	if !fired {
		t.Fatal("RunOnce() did not fire on a wide cheap edge")
	}

	// Cheap direction: buy the composite, sell the basket.
	checkLeg := func(inst venue.Instrument, side venue.Side) {
		t.Helper()
		legs := market.submittedFor(inst)
		if len(legs) != 1 && inst != venue.USD {
			t.Fatalf("%s legs = %d, want 1", inst, len(legs))
		}
		for _, o := range legs {
			if o.Side != side || o.Style != venue.StyleMarket {
				t.Errorf("%s leg = %s %s, want MARKET %s", inst, o.Style, o.Side, side)
			}
			if inst != venue.USD && o.Quantity != 10_000 {
				t.Errorf("%s leg quantity = %d, want 10000", inst, o.Quantity)
			}
		}
	}
	checkLeg(venue.RITC, venue.SideBuy)
	checkLeg(venue.BULL, venue.SideSell)
	checkLeg(venue.BEAR, venue.SideSell)

	// Buying the composite spends USD; the hedge sells the notional back.
	var usdTotal int64
	for _, o := range market.submittedFor(venue.USD) {
		if o.Side != venue.SideSell {
			t.Errorf("currency hedge side = %s, want SELL", o.Side)
		}
		usdTotal += o.Quantity
	}
	if usdTotal != 185_000 { // 18.50 * 10000
		t.Errorf("currency hedged = %d, want 185000", usdTotal)
	}

	events := reporter.byKind(domain.EventArbExecuted)
	if len(events) != 1 {
		t.Fatalf("published %d ArbExecuted events, want 1", len(events))
	}
	if events[0].Side != venue.SideBuy || events[0].Quantity != 10_000 {
		t.Errorf("event = %s x%d, want BUY x10000", events[0].Side, events[0].Quantity)
	}
}

func TestArbitrageExecutor_CompositeRich(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	// Composite bid at 19.00 USD: 19.00 * 1.3290 = 25.251 CAD against
	// basket asks worth 25.02, an edge of 0.231 sizing to 6000.
	market.quotes[venue.RITC] = venue.NewQuote(venue.RITC,
		decimal.RequireFromString("19.00"), decimal.RequireFromString("19.10"))
	reporter := &recordReporter{}
	executor := makeExecutor(market, reporter, defaultLimiter())

	fired := executor.RunOnce(ctx, market.quotes, venue.NewPositionSet())
	if !fired {
		t.Fatal("RunOnce() did not fire on a rich edge")
	}

	ritcLegs := market.submittedFor(venue.RITC)
	if len(ritcLegs) != 1 || ritcLegs[0].Side != venue.SideSell || ritcLegs[0].Quantity != 6_000 {
		t.Fatalf("composite leg = %+v, want SELL 6000", ritcLegs)
	}
	for _, inst := range []venue.Instrument{venue.BULL, venue.BEAR} {
		legs := market.submittedFor(inst)
		if len(legs) != 1 || legs[0].Side != venue.SideBuy {
			t.Errorf("%s leg = %+v, want BUY", inst, legs)
		}
	}

	// Selling the composite earns USD; the hedge buys the notional back.
	usdLegs := market.submittedFor(venue.USD)
	if len(usdLegs) != 1 || usdLegs[0].Side != venue.SideBuy || usdLegs[0].Quantity != 114_000 {
		t.Errorf("currency hedge = %+v, want BUY 114000", usdLegs) // 19.00 * 6000
	}
}

func TestArbitrageExecutor_LimiterBlocks(t *testing.T) {
	ctx := context.Background()
	market := newFakeMarket()
	market.quotes[venue.RITC] = venue.NewQuote(venue.RITC,
		decimal.RequireFromString("18.40"), decimal.RequireFromString("18.50"))
	reporter := &recordReporter{}
	executor := makeExecutor(market, reporter, defaultLimiter())

	// Already long 145000 composite: gross 290k, buying 10000 more
	// projects to 310k and no reduction rule applies.
	pos := venue.NewPositionSet()
	pos.SetShares(venue.RITC, 145_000)

	if executor.RunOnce(ctx, market.quotes, pos) {
		t.Error("RunOnce() fired through a limiter denial")
	}
	if len(market.orders) != 0 {
		t.Errorf("submitted %d orders, want none", len(market.orders))
	}
}
