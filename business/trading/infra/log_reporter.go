package infra

import (
	"context"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
)

// LogReporter forwards engine events to the structured log. Used for
// headless runs where styled console output would pollute collectors.
type LogReporter struct {
	logger logger.LoggerInterface
}

// NewLogReporter creates a LogReporter.
func NewLogReporter(log logger.LoggerInterface) *LogReporter {
	return &LogReporter{logger: log}
}

// Publish logs one event.
func (r *LogReporter) Publish(ctx context.Context, event domain.Event) {
	r.logger.Info(ctx, "engine event",
		"event_id", event.ID,
		"kind", string(event.Kind),
		"ticker", event.Instrument.Ticker(),
		"side", string(event.Side),
		"quantity", event.Quantity,
		"price", event.Price.String(),
		"edge", event.Edge.String(),
		"detail", event.Detail,
	)
}
