package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func makeTable() TierTable {
	// Deliberately unsorted input; the table must sort itself.
	return NewTierTable([]Tier{
		{Edge: decimal.RequireFromString("0.15"), Quantity: 6_000},
		{Edge: decimal.RequireFromString("0.04"), Quantity: 1_000},
		{Edge: decimal.RequireFromString("0.25"), Quantity: 10_000},
		{Edge: decimal.RequireFromString("0.08"), Quantity: 3_000},
	})
}

func TestTierTable_SizeFor(t *testing.T) {
	table := makeTable()

	tests := []struct {
		name string
		edge string
		want int64
	}{
		{name: "below_floor", edge: "0.03", want: 0},
		{name: "zero_edge", edge: "0", want: 0},
		{name: "negative_edge", edge: "-0.10", want: 0},
		{name: "exactly_on_floor", edge: "0.04", want: 1_000},
		{name: "between_tiers", edge: "0.10", want: 3_000},
		{name: "exactly_on_tier", edge: "0.15", want: 6_000},
		{name: "top_tier", edge: "0.25", want: 10_000},
		{name: "above_top_tier", edge: "0.90", want: 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.SizeFor(decimal.RequireFromString(tt.edge))
			if got != tt.want {
				t.Errorf("SizeFor(%s) = %d, want %d", tt.edge, got, tt.want)
			}
		})
	}
}

func TestTierTable_Monotonic(t *testing.T) {
	table := makeTable()

	// A wider edge never sizes smaller.
	prev := int64(0)
	for _, edge := range []string{"0.01", "0.04", "0.08", "0.15", "0.25", "0.50"} {
		size := table.SizeFor(decimal.RequireFromString(edge))
		if size < prev {
			t.Fatalf("SizeFor(%s) = %d, smaller than previous %d", edge, size, prev)
		}
		prev = size
	}
}
