// Package di contains dependency injection tokens for the trading context.
package di

import (
	"github.com/rosiewang37/RITCxSmith/business/trading/app"
	"github.com/rosiewang37/RITCxSmith/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Engine = di.NewToken[*app.Engine]("trading.Engine")
)

// Private dependency tokens - internal to trading module
var (
	Reporter   = di.NewToken[app.Reporter]("trading:reporter")
	Clock      = di.NewToken[app.Clock]("trading:clock")
	Edges      = di.NewToken[*app.EdgeCalculator]("trading:edges")
	Sizing     = di.NewToken[*app.SizingPolicy]("trading:sizing")
	Hedger     = di.NewToken[*app.HedgeExecutor]("trading:hedger")
	Arbitrage  = di.NewToken[*app.ArbitrageExecutor]("trading:arbitrage")
	Tenders    = di.NewToken[*app.TenderEvaluator]("trading:tenders")
	Rebalancer = di.NewToken[*app.CurrencyRebalancer]("trading:rebalancer")
	Safety     = di.NewToken[*app.SafetyHedger]("trading:safety")
	Converter  = di.NewToken[*app.ConverterAdvisor]("trading:converter")
)

// Helper functions for type-safe access
func GetEngine(c di.ServiceRegistry) *app.Engine {
	return di.GetToken(c, Engine)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}

func GetHedger(c di.ServiceRegistry) *app.HedgeExecutor {
	return di.GetToken(c, Hedger)
}
