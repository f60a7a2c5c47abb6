// Package risk implements the exposure and limits bounded context.
package risk

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rosiewang37/RITCxSmith/business/risk/app"
	riskDI "github.com/rosiewang37/RITCxSmith/business/risk/di"
	"github.com/rosiewang37/RITCxSmith/internal/config"
	"github.com/rosiewang37/RITCxSmith/internal/di"
	"github.com/rosiewang37/RITCxSmith/internal/monolith"
)

// Module implements the risk bounded context.
type Module struct{}

// RegisterServices registers all risk services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, riskDI.Limiter, func(sr di.ServiceRegistry) *app.Limiter {
		cfg := sr.Get("config").(*config.Config)
		return app.NewLimiter(app.LimiterConfig{
			GrossCeiling:     cfg.Risk.GrossCeiling,
			NetCeiling:       cfg.Risk.NetCeiling,
			CashGrossCeiling: decimal.NewFromFloat(cfg.Risk.CashGrossCeiling),
		})
	})

	di.RegisterToken(c, riskDI.UnwindController, func(sr di.ServiceRegistry) *app.UnwindController {
		cfg := sr.Get("config").(*config.Config)
		return app.NewUnwindController(app.UnwindConfig{
			Trigger:             cfg.Risk.UnwindTrigger,
			GrossCeiling:        cfg.Risk.GrossCeiling,
			Chunk:               cfg.Risk.UnwindChunk,
			MinPosition:         cfg.Risk.UnwindMinPosition,
			AggressiveThreshold: cfg.Risk.AggressiveThreshold,
			MaxOrder:            cfg.Trading.MaxOrderShares,
		})
	})

	return nil
}

// Startup initializes the risk module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "risk module started",
		"gross_ceiling", mono.Config().Risk.GrossCeiling,
		"net_ceiling", mono.Config().Risk.NetCeiling,
		"unwind_trigger", mono.Config().Risk.UnwindTrigger,
	)
	return nil
}
