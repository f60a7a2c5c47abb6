// Package di contains dependency injection tokens for the risk context.
package di

import (
	"github.com/rosiewang37/RITCxSmith/business/risk/app"
	"github.com/rosiewang37/RITCxSmith/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Limiter          = di.NewToken[*app.Limiter]("risk.Limiter")
	UnwindController = di.NewToken[*app.UnwindController]("risk.UnwindController")
)

// Helper functions for type-safe access
func GetLimiter(c di.ServiceRegistry) *app.Limiter {
	return di.GetToken(c, Limiter)
}

func GetUnwindController(c di.ServiceRegistry) *app.UnwindController {
	return di.GetToken(c, UnwindController)
}
