// Package trading implements the arbitrage and hedging bounded context.
package trading

import (
	"context"
	"os"

	"github.com/shopspring/decimal"

	riskDI "github.com/rosiewang37/RITCxSmith/business/risk/di"
	"github.com/rosiewang37/RITCxSmith/business/trading/app"
	tradingDI "github.com/rosiewang37/RITCxSmith/business/trading/di"
	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
	"github.com/rosiewang37/RITCxSmith/business/trading/infra"
	venueDI "github.com/rosiewang37/RITCxSmith/business/venue/di"
	"github.com/rosiewang37/RITCxSmith/internal/config"
	"github.com/rosiewang37/RITCxSmith/internal/di"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
	"github.com/rosiewang37/RITCxSmith/internal/monolith"
)

// Module implements the trading bounded context.
type Module struct{}

// RegisterServices registers all trading services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, tradingDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		cfg := sr.Get("config").(*config.Config)
		if cfg.App.Environment == "development" {
			return infra.NewConsoleReporter(os.Stdout)
		}
		return infra.NewLogReporter(sr.Get("logger").(logger.LoggerInterface))
	})

	di.RegisterToken(c, tradingDI.Clock, func(sr di.ServiceRegistry) app.Clock {
		return app.SystemClock{}
	})

	di.RegisterToken(c, tradingDI.Edges, func(sr di.ServiceRegistry) *app.EdgeCalculator {
		return app.NewEdgeCalculator()
	})

	di.RegisterToken(c, tradingDI.Sizing, func(sr di.ServiceRegistry) *app.SizingPolicy {
		cfg := sr.Get("config").(*config.Config)
		tiers := make([]domain.Tier, 0, len(cfg.Trading.Tiers))
		for _, t := range cfg.Trading.Tiers {
			tiers = append(tiers, domain.Tier{
				Edge:     decimal.NewFromFloat(t.Edge),
				Quantity: t.Quantity,
			})
		}
		return app.NewSizingPolicy(tiers, cfg.Trading.MaxOrderShares)
	})

	di.RegisterToken(c, tradingDI.Hedger, func(sr di.ServiceRegistry) *app.HedgeExecutor {
		cfg := sr.Get("config").(*config.Config)
		return app.NewHedgeExecutor(
			venueDI.GetMarketService(sr),
			di.GetToken(sr, tradingDI.Clock),
			di.GetToken(sr, tradingDI.Reporter),
			sr.Get("logger").(logger.LoggerInterface),
			app.HedgeConfig{
				MaxOrderShares:   cfg.Trading.MaxOrderShares,
				MaxOrderCurrency: cfg.Trading.MaxOrderCurrencyDecimal(),
				Retries:          cfg.Trading.HedgeRetries,
				Backoff:          cfg.Trading.HedgeBackoff,
			},
		)
	})

	di.RegisterToken(c, tradingDI.Arbitrage, func(sr di.ServiceRegistry) *app.ArbitrageExecutor {
		return app.NewArbitrageExecutor(
			venueDI.GetMarketService(sr),
			riskDI.GetLimiter(sr),
			di.GetToken(sr, tradingDI.Edges),
			di.GetToken(sr, tradingDI.Sizing),
			di.GetToken(sr, tradingDI.Hedger),
			di.GetToken(sr, tradingDI.Reporter),
			sr.Get("logger").(logger.LoggerInterface),
		)
	})

	di.RegisterToken(c, tradingDI.Tenders, func(sr di.ServiceRegistry) *app.TenderEvaluator {
		cfg := sr.Get("config").(*config.Config)
		return app.NewTenderEvaluator(
			venueDI.GetMarketService(sr),
			riskDI.GetLimiter(sr),
			riskDI.GetUnwindController(sr),
			di.GetToken(sr, tradingDI.Hedger),
			di.GetToken(sr, tradingDI.Reporter),
			sr.Get("logger").(logger.LoggerInterface),
			app.TenderConfig{
				Margin:            cfg.Trading.TenderMarginDecimal(),
				LiquidationMargin: cfg.Trading.LiquidationMarginDecimal(),
			},
		)
	})

	di.RegisterToken(c, tradingDI.Rebalancer, func(sr di.ServiceRegistry) *app.CurrencyRebalancer {
		cfg := sr.Get("config").(*config.Config)
		return app.NewCurrencyRebalancer(
			di.GetToken(sr, tradingDI.Hedger),
			di.GetToken(sr, tradingDI.Reporter),
			sr.Get("logger").(logger.LoggerInterface),
			app.RebalanceConfig{
				DriftTolerance: cfg.Trading.DriftToleranceDecimal(),
			},
		)
	})

	di.RegisterToken(c, tradingDI.Safety, func(sr di.ServiceRegistry) *app.SafetyHedger {
		cfg := sr.Get("config").(*config.Config)
		return app.NewSafetyHedger(
			di.GetToken(sr, tradingDI.Hedger),
			sr.Get("logger").(logger.LoggerInterface),
			app.SafetyConfig{
				Threshold:          cfg.Trading.SafetyThreshold,
				ComponentTolerance: cfg.Trading.ComponentTolerance,
				MaxOrderShares:     cfg.Trading.MaxOrderShares,
			},
		)
	})

	di.RegisterToken(c, tradingDI.Converter, func(sr di.ServiceRegistry) *app.ConverterAdvisor {
		cfg := sr.Get("config").(*config.Config)
		return app.NewConverterAdvisor(
			di.GetToken(sr, tradingDI.Reporter),
			app.ConverterConfig{
				BlockSize:    cfg.Trading.ConverterBlock,
				FeeUSD:       decimal.NewFromFloat(cfg.Trading.ConverterFeeUSD),
				GrossCeiling: cfg.Risk.GrossCeiling,
			},
		)
	})

	di.RegisterToken(c, tradingDI.Engine, func(sr di.ServiceRegistry) *app.Engine {
		cfg := sr.Get("config").(*config.Config)
		return app.NewEngine(
			venueDI.GetMarketService(sr),
			riskDI.GetUnwindController(sr),
			di.GetToken(sr, tradingDI.Safety),
			di.GetToken(sr, tradingDI.Tenders),
			di.GetToken(sr, tradingDI.Arbitrage),
			di.GetToken(sr, tradingDI.Rebalancer),
			di.GetToken(sr, tradingDI.Converter),
			di.GetToken(sr, tradingDI.Reporter),
			di.GetToken(sr, tradingDI.Clock),
			sr.Get("logger").(logger.LoggerInterface),
			app.EngineConfig{
				CycleInterval: cfg.Trading.CycleInterval,
			},
		)
	})

	return nil
}

// Startup initializes the trading module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "trading module started",
		"tiers", len(mono.Config().Trading.Tiers),
		"tender_margin", mono.Config().Trading.TenderMargin,
		"cycle_interval", mono.Config().Trading.CycleInterval.String(),
	)
	return nil
}
