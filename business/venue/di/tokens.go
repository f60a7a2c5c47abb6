// Package di contains dependency injection tokens for the venue context.
package di

import (
	"github.com/rosiewang37/RITCxSmith/business/venue/app"
	"github.com/rosiewang37/RITCxSmith/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("venue.MarketService")
)

// Private dependency tokens - internal to venue module
var (
	Gateway = di.NewToken[app.Gateway]("venue:gateway")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetGateway(c di.ServiceRegistry) app.Gateway {
	return di.GetToken(c, Gateway)
}
