// Package venue implements the exchange boundary bounded context.
package venue

import (
	"context"

	"github.com/rosiewang37/RITCxSmith/business/venue/app"
	venueDI "github.com/rosiewang37/RITCxSmith/business/venue/di"
	"github.com/rosiewang37/RITCxSmith/business/venue/domain"
	"github.com/rosiewang37/RITCxSmith/business/venue/infra/rit"
	"github.com/rosiewang37/RITCxSmith/internal/config"
	"github.com/rosiewang37/RITCxSmith/internal/di"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
	"github.com/rosiewang37/RITCxSmith/internal/monolith"
)

// Module implements the venue bounded context.
type Module struct{}

// RegisterServices registers all venue services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Gateway (RIT REST adapter) - private dependency
	di.RegisterToken(c, venueDI.Gateway, func(sr di.ServiceRegistry) app.Gateway {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := rit.NewClient(rit.ClientConfig{
			BaseURL:           cfg.Venue.BaseURL,
			APIKey:            cfg.Venue.APIKey,
			Timeout:           cfg.Venue.RequestTimeout,
			RequestsPerSecond: cfg.Venue.RequestsPerSecond,
			RequestBurst:      cfg.Venue.RequestBurst,
		}, log)
		if err != nil {
			panic("failed to create rit client: " + err.Error())
		}
		return client
	})

	// Register MarketService (public - exposed to other modules)
	di.RegisterToken(c, venueDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewMarketService(venueDI.GetGateway(sr), log)
	})

	return nil
}

// Startup initializes the venue module and verifies venue reachability.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	market := venueDI.GetMarketService(mono.Services())
	state := market.TickStatus(ctx)
	if state.Status != domain.StatusActive {
		log.Warn(ctx, "venue not active at startup", "status", string(state.Status))
	}

	log.Info(ctx, "venue module started", "tick", state.Tick, "status", string(state.Status))
	return nil
}
