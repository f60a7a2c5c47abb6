package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

func makePositions(bull, bear, ritc int64) *venue.PositionSet {
	pos := venue.NewPositionSet()
	pos.SetShares(venue.BULL, bull)
	pos.SetShares(venue.BEAR, bear)
	pos.SetShares(venue.RITC, ritc)
	return pos
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		bull      int64
		bear      int64
		ritc      int64
		usdCash   string
		wantGross int64
		wantNet   int64
	}{
		{
			name: "flat_book",
		},
		{
			name:      "composite_counts_double",
			ritc:      50_000,
			wantGross: 100_000,
			wantNet:   100_000,
		},
		{
			name:      "hedged_book_nets_to_zero",
			bull:      100_000,
			bear:      100_000,
			ritc:      -100_000,
			wantGross: 400_000,
			wantNet:   0,
		},
		{
			name:      "currency_is_exempt",
			bull:      10_000,
			usdCash:   "5000000",
			wantGross: 10_000,
			wantNet:   10_000,
		},
		{
			name:      "short_components",
			bull:      -30_000,
			bear:      -20_000,
			wantGross: 50_000,
			wantNet:   -50_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := makePositions(tt.bull, tt.bear, tt.ritc)
			if tt.usdCash != "" {
				pos.SetCash(venue.USD, decimal.RequireFromString(tt.usdCash))
			}

			exp := Compute(pos)
			if exp.Gross != tt.wantGross {
				t.Errorf("Gross = %d, want %d", exp.Gross, tt.wantGross)
			}
			if exp.Net != tt.wantNet {
				t.Errorf("Net = %d, want %d", exp.Net, tt.wantNet)
			}
		})
	}
}

func TestComputeCash(t *testing.T) {
	quotes := venue.QuoteSet{
		venue.BULL: venue.NewQuote(venue.BULL, decimal.RequireFromString("9.99"), decimal.RequireFromString("10.01")),
		venue.BEAR: venue.NewQuote(venue.BEAR, decimal.RequireFromString("14.99"), decimal.RequireFromString("15.01")),
		venue.RITC: venue.NewQuote(venue.RITC, decimal.RequireFromString("24.99"), decimal.RequireFromString("25.01")),
		venue.USD:  venue.NewQuote(venue.USD, decimal.RequireFromString("1.32"), decimal.RequireFromString("1.34")),
	}

	pos := makePositions(10_000, -10_000, 2_000)
	pos.SetCash(venue.USD, decimal.RequireFromString("-100000"))

	// BULL: 10000 * 10.00 = 100000 CAD
	// BEAR: 10000 * 15.00 = 150000 CAD
	// RITC: 2000 * 25.00 * 1.33 = 66500 CAD (USD-quoted, through the USD mid)
	// USD cash: 100000 * 1.33 = 133000 CAD
	want := decimal.RequireFromString("449500")

	got := ComputeCash(pos, quotes).Gross
	if !got.Equal(want) {
		t.Errorf("ComputeCash Gross = %s, want %s", got, want)
	}
}
