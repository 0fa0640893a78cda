package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// ChainConfig selects the single chain the tracker works on.
type ChainConfig struct {
	Identifier string `yaml:"identifier"` // key in the network registry, e.g. "pulsechain"
}

// MoralisConfig holds Moralis API specific configurations.
type MoralisConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	PageLimit            int    `yaml:"pageLimit"`
	MaxPages             int    `yaml:"maxPages"`
	RateLimit            int    `yaml:"rateLimit"` // requests per second, 0 disables pacing
	BurstLimit           int    `yaml:"burstLimit"`
}

// DEXScreenerConfig holds DEXScreener API specific configurations.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	ChartBaseURL         string `yaml:"chartBaseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
}

// PortfolioConfig holds configuration for the PnL pipeline.
type PortfolioConfig struct {
	DustThreshold         float64 `yaml:"dustThreshold"`
	TimezoneOffsetMinutes *int    `yaml:"timezoneOffsetMinutes"` // pointer so an explicit 0 (UTC) survives defaults
	MaxConcurrentRequests int     `yaml:"maxConcurrentRequests"`
	RequestTimeoutMillis  int64   `yaml:"requestTimeoutMillis"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Chain       ChainConfig       `yaml:"chain"`
	Moralis     MoralisConfig     `yaml:"moralis"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Portfolio   PortfolioConfig   `yaml:"portfolio"`
	Swagger     SwaggerConfig     `yaml:"swagger"`
}

const (
	defaultServerPort            = "8080"
	defaultChainIdentifier       = "pulsechain"
	defaultMoralisBaseURL        = "https://deep-index.moralis.io/api/v2.2"
	defaultDEXScreenerBaseURL    = "https://api.dexscreener.com"
	defaultDEXScreenerChartURL   = "https://dexscreener.com"
	defaultRequestTimeoutMillis  = 10000
	defaultPageLimit             = 100
	defaultDustThreshold         = 0.000001
	defaultTimezoneOffsetMinutes = 7 * 60 // WIB
	defaultMaxConcurrentRequests = 5
)

// Load reads the YAML configuration file from the given path and unmarshals it.
// A missing file is not an error: defaults and environment overrides still apply,
// so the service can run from environment variables alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides lets operators inject the provider key at deploy time without touching the YAML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Moralis.APIKey, "MORALIS_API_KEY")
	setStr(&cfg.Moralis.BaseURL, "MORALIS_BASE_URL")
	setStr(&cfg.DEXScreener.BaseURL, "DEXSCREENER_BASE_URL")
	setStr(&cfg.Chain.Identifier, "PNL_CHAIN")
	setStr(&cfg.Server.Port, "PNL_SERVER_PORT")
	setStr(&cfg.Logging.Level, "PNL_LOG_LEVEL")
	if v := os.Getenv("PNL_TIMEZONE_OFFSET_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Portfolio.TimezoneOffsetMinutes = &n
		} else {
			logrus.Warnf("Ignoring invalid PNL_TIMEZONE_OFFSET_MINUTES=%q: %v", v, err)
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 120
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Chain.Identifier == "" {
		cfg.Chain.Identifier = defaultChainIdentifier
		logrus.Infof("chain.identifier not set, defaulting to %s", cfg.Chain.Identifier)
	}
	cfg.Chain.Identifier = strings.ToLower(strings.TrimSpace(cfg.Chain.Identifier))

	if cfg.Moralis.BaseURL == "" {
		cfg.Moralis.BaseURL = defaultMoralisBaseURL
	}
	if cfg.Moralis.RequestTimeoutMillis <= 0 {
		cfg.Moralis.RequestTimeoutMillis = defaultRequestTimeoutMillis
	}
	if cfg.Moralis.PageLimit <= 0 {
		cfg.Moralis.PageLimit = defaultPageLimit
	}
	if cfg.Moralis.MaxPages <= 0 {
		cfg.Moralis.MaxPages = 1
	}
	// No default for APIKey: a missing key is reported per request.

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = defaultDEXScreenerBaseURL
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.ChartBaseURL == "" {
		cfg.DEXScreener.ChartBaseURL = defaultDEXScreenerChartURL
	}
	if cfg.DEXScreener.RequestTimeoutMillis <= 0 {
		cfg.DEXScreener.RequestTimeoutMillis = defaultRequestTimeoutMillis
	}

	if cfg.Portfolio.DustThreshold <= 0 {
		cfg.Portfolio.DustThreshold = defaultDustThreshold
	}
	if cfg.Portfolio.TimezoneOffsetMinutes == nil {
		offset := defaultTimezoneOffsetMinutes
		cfg.Portfolio.TimezoneOffsetMinutes = &offset
		logrus.Infof("portfolio.timezoneOffsetMinutes not set, defaulting to %d", offset)
	}
	if cfg.Portfolio.MaxConcurrentRequests <= 0 {
		cfg.Portfolio.MaxConcurrentRequests = defaultMaxConcurrentRequests
	}
	if cfg.Portfolio.RequestTimeoutMillis <= 0 {
		cfg.Portfolio.RequestTimeoutMillis = 30000
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	offset := c.TimezoneOffset()
	if offset <= -24*60 || offset >= 24*60 {
		return fmt.Errorf("portfolio.timezoneOffsetMinutes must be within (-1440, 1440), got %d", offset)
	}
	if c.Moralis.APIKey == "" {
		logrus.Warn("Moralis API key is not configured; portfolio requests will fail until MORALIS_API_KEY is set")
	}
	return nil
}

// TimezoneOffset returns the configured "today" offset in minutes.
func (c *Config) TimezoneOffset() int {
	if c.Portfolio.TimezoneOffsetMinutes == nil {
		return defaultTimezoneOffsetMinutes
	}
	return *c.Portfolio.TimezoneOffsetMinutes
}

func setStr(dst *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*dst = v
	}
}
