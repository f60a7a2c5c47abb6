package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	venue "github.com/rosiewang37/RITCxSmith/business/venue/domain"
)

// EdgeCalculator derives both directional edges each cycle and records
// them for observability.
type EdgeCalculator struct {
	cheapEdge metric.Float64Gauge
	richEdge  metric.Float64Gauge
}

// NewEdgeCalculator creates an EdgeCalculator.
func NewEdgeCalculator() *EdgeCalculator {
	meter := otel.Meter("trading/edge")
	cheap, _ := meter.Float64Gauge("trading_edge_composite_cheap",
		metric.WithDescription("Per-share CAD edge buying the composite against the basket"))
	rich, _ := meter.Float64Gauge("trading_edge_composite_rich",
		metric.WithDescription("Per-share CAD edge selling the composite against the basket"))
	return &EdgeCalculator{cheapEdge: cheap, richEdge: rich}
}

// Compute derives both edges from the cycle's quote snapshot.
func (c *EdgeCalculator) Compute(ctx context.Context, quotes venue.QuoteSet) domain.EdgePair {
	pair := domain.ComputeEdges(quotes)

	cheapF, _ := pair.Cheap.PerShare.Float64()
	richF, _ := pair.Rich.PerShare.Float64()
	c.cheapEdge.Record(ctx, cheapF)
	c.richEdge.Record(ctx, richF)

	return pair
}
