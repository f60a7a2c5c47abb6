package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

func makeQuotes(bullBid, bullAsk, bearBid, bearAsk, ritcBid, ritcAsk, usdBid, usdAsk string) venue.QuoteSet {
	return venue.QuoteSet{
		venue.BULL: venue.NewQuote(venue.BULL, decimal.RequireFromString(bullBid), decimal.RequireFromString(bullAsk)),
		venue.BEAR: venue.NewQuote(venue.BEAR, decimal.RequireFromString(bearBid), decimal.RequireFromString(bearAsk)),
		venue.RITC: venue.NewQuote(venue.RITC, decimal.RequireFromString(ritcBid), decimal.RequireFromString(ritcAsk)),
		venue.USD:  venue.NewQuote(venue.USD, decimal.RequireFromString(usdBid), decimal.RequireFromString(usdAsk)),
	}
}

func TestComputeEdges(t *testing.T) {
	tests := []struct {
		name      string
		quotes    venue.QuoteSet
		wantCheap string
		wantRich  string
	}{
		{
			name: "composite_cheap",
			// Basket bids sum to 25.00; composite ask 18.50 * 1.33 = 24.605.
			quotes:    makeQuotes("10.00", "10.02", "15.00", "15.02", "18.40", "18.50", "1.32", "1.33"),
			wantCheap: "0.395",
			wantRich:  "-0.752", // 18.40*1.32 - 25.04
		},
		{
			name: "composite_rich",
			// Composite bid 19.20 * 1.32 = 25.344; basket asks sum to 25.04.
			quotes:    makeQuotes("10.00", "10.02", "15.00", "15.02", "19.20", "19.30", "1.32", "1.33"),
			wantCheap: "-0.669", // 25.00 - 19.30*1.33
			wantRich:  "0.304",
		},
		{
			name: "currency_premium_blocks_cheap_entry",
			// Basket bids sum to 19.50 against a composite ask of
			// 19.45 * 1.351 = 26.27695; buying the composite is deeply
			// unprofitable even though the basket looks rich.
			quotes:    makeQuotes("10.00", "10.02", "9.50", "9.52", "19.40", "19.45", "1.350", "1.351"),
			wantCheap: "-6.777",
			wantRich:  "6.650", // 19.40*1.350 - 19.54
		},
		{
			name: "tight_market_no_edge",
			// Composite mid matches the basket; both edges eat the spread.
			quotes:    makeQuotes("10.00", "10.02", "15.00", "15.02", "18.80", "18.84", "1.3290", "1.3310"),
			wantCheap: "-0.076", // 25.00 - 18.84*1.3310
			wantRich:  "-0.055", // 18.80*1.3290 - 25.04
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := ComputeEdges(tt.quotes)

			if pair.Cheap.Direction != CompositeCheap || pair.Rich.Direction != CompositeRich {
				t.Fatal("edge directions mislabeled")
			}

			wantCheap := decimal.RequireFromString(tt.wantCheap)
			wantRich := decimal.RequireFromString(tt.wantRich)
			if pair.Cheap.PerShare.Sub(wantCheap).Abs().GreaterThan(decimal.RequireFromString("0.001")) {
				t.Errorf("cheap edge = %s, want ~%s", pair.Cheap.PerShare, wantCheap)
			}
			if pair.Rich.PerShare.Sub(wantRich).Abs().GreaterThan(decimal.RequireFromString("0.001")) {
				t.Errorf("rich edge = %s, want ~%s", pair.Rich.PerShare, wantRich)
			}
		})
	}
}

func TestEdgePair_Best(t *testing.T) {
	pos := decimal.RequireFromString("0.10")
	neg := decimal.RequireFromString("-0.10")

	tests := []struct {
		name     string
		cheap    decimal.Decimal
		rich     decimal.Decimal
		wantDir  Direction
		wantNone bool
	}{
		{name: "cheap_only", cheap: pos, rich: neg, wantDir: CompositeCheap},
		{name: "rich_only", cheap: neg, rich: pos, wantDir: CompositeRich},
		{name: "both_positive_cheap_wins", cheap: pos, rich: pos, wantDir: CompositeCheap},
		{name: "neither", cheap: neg, rich: neg, wantNone: true},
		{name: "zero_is_not_positive", cheap: decimal.Zero, rich: neg, wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := EdgePair{
				Cheap: Edge{Direction: CompositeCheap, PerShare: tt.cheap},
				Rich:  Edge{Direction: CompositeRich, PerShare: tt.rich},
			}
			best, ok := pair.Best()
			if tt.wantNone {
				if ok {
					t.Errorf("Best() = %s, want none", best.Direction)
				}
				return
			}
			if !ok || best.Direction != tt.wantDir {
				t.Errorf("Best() = %s ok=%v, want %s", best.Direction, ok, tt.wantDir)
			}
		})
	}
}

func TestComputeEdges_ScalesLinearly(t *testing.T) {
	base := makeQuotes("10.00", "10.02", "15.00", "15.02", "18.40", "18.50", "1.32", "1.33")
	factor := decimal.NewFromInt(3)

	// Scale every security price; the currency conversion is a pure
	// numeraire and stays fixed.
	scaled := make(venue.QuoteSet, len(base))
	for inst, q := range base {
		if inst == venue.USD {
			scaled[inst] = q
			continue
		}
		scaled[inst] = venue.NewQuote(inst, q.Bid.Mul(factor), q.Ask.Mul(factor))
	}

	basePair := ComputeEdges(base)
	scaledPair := ComputeEdges(scaled)

	if !scaledPair.Cheap.PerShare.Equal(basePair.Cheap.PerShare.Mul(factor)) {
		t.Errorf("cheap edge scaled to %s, want %s",
			scaledPair.Cheap.PerShare, basePair.Cheap.PerShare.Mul(factor))
	}
	if !scaledPair.Rich.PerShare.Equal(basePair.Rich.PerShare.Mul(factor)) {
		t.Errorf("rich edge scaled to %s, want %s",
			scaledPair.Rich.PerShare, basePair.Rich.PerShare.Mul(factor))
	}
}

func BenchmarkComputeEdges(b *testing.B) {
	quotes := makeQuotes("10.00", "10.02", "15.00", "15.02", "18.40", "18.50", "1.32", "1.33")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeEdges(quotes)
	}
}

func TestComputeEdges_BrokenBookNeverTriggers(t *testing.T) {
	// Missing composite ask prices any buy prohibitively high; missing
	// bids price any sell at zero. Neither direction may look attractive.
	quotes := venue.QuoteSet{
		venue.BULL: venue.NewQuote(venue.BULL, decimal.RequireFromString("10.00"), decimal.RequireFromString("10.02")),
		venue.BEAR: venue.NewQuote(venue.BEAR, decimal.RequireFromString("15.00"), decimal.RequireFromString("15.02")),
		venue.RITC: venue.NewQuote(venue.RITC, decimal.Zero, decimal.Zero),
		venue.USD:  venue.NewQuote(venue.USD, decimal.RequireFromString("1.32"), decimal.RequireFromString("1.33")),
	}

	pair := ComputeEdges(quotes)
	if _, ok := pair.Best(); ok {
		t.Error("broken composite book produced a tradable edge")
	}
}
