// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Venue     VenueConfig     `mapstructure:"venue"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Trading   TradingConfig   `mapstructure:"trading"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// VenueConfig holds RIT exchange adapter configuration.
type VenueConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RequestBurst      int           `mapstructure:"request_burst"`
}

// RiskConfig holds exposure ceilings and unwind thresholds.
// Ceilings are expressed in multiplier-weighted shares: the composite
// instrument counts double against both gross and net.
type RiskConfig struct {
	GrossCeiling        int64   `mapstructure:"gross_ceiling"`
	NetCeiling          int64   `mapstructure:"net_ceiling"`
	CashGrossCeiling    float64 `mapstructure:"cash_gross_ceiling"`
	UnwindTrigger       float64 `mapstructure:"unwind_trigger"`
	UnwindChunk         int64   `mapstructure:"unwind_chunk"`
	UnwindMinPosition   int64   `mapstructure:"unwind_min_position"`
	AggressiveThreshold int64   `mapstructure:"aggressive_threshold"`
}

// SizeTier maps a minimum per-share edge (CAD) to an order quantity.
type SizeTier struct {
	Edge     float64 `mapstructure:"edge"`
	Quantity int64   `mapstructure:"quantity"`
}

// TradingConfig holds arbitrage, tender and hedging parameters.
type TradingConfig struct {
	Tiers        []SizeTier `mapstructure:"tiers"`
	TenderMargin float64    `mapstructure:"tender_margin"`
	// LiquidationMargin must exceed TenderMargin: it is the profit needed
	// to justify flattening the existing book to make room for a block.
	LiquidationMargin  float64       `mapstructure:"liquidation_margin"`
	DriftTolerance     float64       `mapstructure:"drift_tolerance"`
	ComponentTolerance int64         `mapstructure:"component_tolerance"`
	SafetyThreshold    int64         `mapstructure:"safety_threshold"`
	MaxOrderShares     int64         `mapstructure:"max_order_shares"`
	MaxOrderCurrency   float64       `mapstructure:"max_order_currency"`
	HedgeRetries       int           `mapstructure:"hedge_retries"`
	HedgeBackoff       time.Duration `mapstructure:"hedge_backoff"`
	CycleInterval      time.Duration `mapstructure:"cycle_interval"`
	ConverterBlock     int64         `mapstructure:"converter_block"`
	ConverterFeeUSD    float64       `mapstructure:"converter_fee_usd"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// TenderMarginDecimal returns the tender margin as decimal.Decimal.
func (c *TradingConfig) TenderMarginDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TenderMargin)
}

// LiquidationMarginDecimal returns the liquidation margin as decimal.Decimal.
func (c *TradingConfig) LiquidationMarginDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.LiquidationMargin)
}

// DriftToleranceDecimal returns the currency drift tolerance as decimal.Decimal.
func (c *TradingConfig) DriftToleranceDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.DriftTolerance)
}

// MaxOrderCurrencyDecimal returns the currency per-order cap as decimal.Decimal.
func (c *TradingConfig) MaxOrderCurrencyDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MaxOrderCurrency)
}

// CashGrossCeilingDecimal returns the cash-notional ceiling as decimal.Decimal.
func (c *RiskConfig) CashGrossCeilingDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.CashGrossCeiling)
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("RITC")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "RITC_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "RITC_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "RITC_LOG_LEVEL", "LOG_LEVEL")

	// Venue
	v.BindEnv("venue.base_url", "RITC_VENUE_URL", "RIT_API_URL")
	v.BindEnv("venue.api_key", "RITC_API_KEY", "API_KEY")

	// Risk
	v.BindEnv("risk.gross_ceiling", "RITC_GROSS_CEILING")
	v.BindEnv("risk.net_ceiling", "RITC_NET_CEILING")
	v.BindEnv("risk.unwind_trigger", "RITC_UNWIND_TRIGGER")

	// Trading
	v.BindEnv("trading.tender_margin", "RITC_TENDER_MARGIN")
	v.BindEnv("trading.drift_tolerance", "RITC_DRIFT_TOLERANCE")
	v.BindEnv("trading.cycle_interval", "RITC_CYCLE_INTERVAL")

	// Telemetry
	v.BindEnv("telemetry.enabled", "RITC_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "RITC_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "RITC_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "ritcarb")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Venue defaults (RIT client runs locally during the case)
	v.SetDefault("venue.base_url", "http://localhost:9999/v1")
	v.SetDefault("venue.request_timeout", "2s")
	v.SetDefault("venue.requests_per_second", 20.0)
	v.SetDefault("venue.request_burst", 5)

	// Risk defaults (case limits: 300k gross / 200k net, composite counts 2x)
	v.SetDefault("risk.gross_ceiling", 300_000)
	v.SetDefault("risk.net_ceiling", 200_000)
	v.SetDefault("risk.cash_gross_ceiling", 10_000_000.0)
	v.SetDefault("risk.unwind_trigger", 0.85)
	v.SetDefault("risk.unwind_chunk", 1_000)
	v.SetDefault("risk.unwind_min_position", 500)
	v.SetDefault("risk.aggressive_threshold", 2_000)

	// Trading defaults
	v.SetDefault("trading.tiers", []map[string]interface{}{
		{"edge": 0.04, "quantity": 1_000},
		{"edge": 0.08, "quantity": 3_000},
		{"edge": 0.15, "quantity": 6_000},
		{"edge": 0.25, "quantity": 10_000},
	})
	v.SetDefault("trading.tender_margin", 0.10)
	v.SetDefault("trading.liquidation_margin", 0.25)
	v.SetDefault("trading.drift_tolerance", 2_000.0)
	v.SetDefault("trading.component_tolerance", 50)
	v.SetDefault("trading.safety_threshold", 2_000)
	v.SetDefault("trading.max_order_shares", 10_000)
	v.SetDefault("trading.max_order_currency", 2_500_000.0)
	v.SetDefault("trading.hedge_retries", 5)
	v.SetDefault("trading.hedge_backoff", "50ms")
	v.SetDefault("trading.cycle_interval", "200ms")
	v.SetDefault("trading.converter_block", 10_000)
	v.SetDefault("trading.converter_fee_usd", 1_500.0)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "ritcarb")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Venue.BaseURL == "" {
		return fmt.Errorf("venue.base_url is required")
	}
	if c.Venue.APIKey == "" {
		return fmt.Errorf("venue.api_key is required")
	}
	if c.Risk.GrossCeiling <= 0 {
		return fmt.Errorf("risk.gross_ceiling must be positive")
	}
	if c.Risk.NetCeiling <= 0 {
		return fmt.Errorf("risk.net_ceiling must be positive")
	}
	if c.Risk.UnwindTrigger <= 0 || c.Risk.UnwindTrigger >= 1 {
		return fmt.Errorf("risk.unwind_trigger must be in (0, 1): %v", c.Risk.UnwindTrigger)
	}
	if len(c.Trading.Tiers) < 4 {
		return fmt.Errorf("trading.tiers requires at least 4 tiers, got %d", len(c.Trading.Tiers))
	}
	for i, t := range c.Trading.Tiers {
		if t.Edge <= 0 || t.Quantity <= 0 {
			return fmt.Errorf("trading.tiers[%d]: edge and quantity must be positive", i)
		}
		if t.Quantity > c.Trading.MaxOrderShares {
			return fmt.Errorf("trading.tiers[%d]: quantity %d exceeds max_order_shares %d",
				i, t.Quantity, c.Trading.MaxOrderShares)
		}
	}
	if c.Trading.DriftTolerance <= 0 {
		// A zero band causes constant micro-corrections that bleed the spread.
		return fmt.Errorf("trading.drift_tolerance must be positive")
	}
	if c.Trading.HedgeRetries <= 0 {
		return fmt.Errorf("trading.hedge_retries must be positive")
	}
	if c.Trading.LiquidationMargin <= c.Trading.TenderMargin {
		return fmt.Errorf("trading.liquidation_margin must exceed tender_margin")
	}
	return nil
}
