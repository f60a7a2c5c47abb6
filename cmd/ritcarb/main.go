// Package main is the entry point for the ETF arbitrage engine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rosiewang37/RITCxSmith/business/risk"
	"github.com/rosiewang37/RITCxSmith/business/trading"
	tradingDI "github.com/rosiewang37/RITCxSmith/business/trading/di"
	"github.com/rosiewang37/RITCxSmith/business/venue"
	venueDI "github.com/rosiewang37/RITCxSmith/business/venue/di"
	"github.com/rosiewang37/RITCxSmith/internal/apm"
	"github.com/rosiewang37/RITCxSmith/internal/config"
	"github.com/rosiewang37/RITCxSmith/internal/health"
	"github.com/rosiewang37/RITCxSmith/internal/logger"
	"github.com/rosiewang37/RITCxSmith/internal/metrics"
	"github.com/rosiewang37/RITCxSmith/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ritcarb %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	log.Info(ctx, "starting ETF arbitrage engine",
		"version", version,
		"environment", cfg.App.Environment,
		"venue", cfg.Venue.BaseURL,
	)

	// Initialize observability if enabled
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin")

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.NewPrometheusConfig()),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	// Start health check server
	healthServer := health.NewServer(8081, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", 8081)
	}
	defer healthServer.Stop(ctx)

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	// Define modules in dependency order
	modules := []monolith.Module{
		&venue.Module{},   // Must be first - provides market access
		&risk.Module{},    // Provides the limiter and unwind controller
		&trading.Module{}, // Depends on venue and risk
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	gateway := venueDI.GetGateway(mono.Services())
	healthServer.RegisterCheck("venue", func(ctx context.Context) (bool, string) {
		if _, err := gateway.CaseState(ctx); err != nil {
			return false, err.Error()
		}
		return true, ""
	})

	engine := tradingDI.GetEngine(mono.Services())
	log.Info(ctx, "all modules started, entering trading loop")

	// Blocks until the context is cancelled or the case leaves ACTIVE.
	if err := engine.Run(ctx); err != nil {
		return err
	}

	log.Info(ctx, "trading loop finished, shutting down")
	return nil
}
