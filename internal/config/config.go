// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Viewer() ViewerConfig
	Preload() PreloadConfig
	Network() NetworkConfig
	Listing() ListingConfig
	Pricing() PricingConfig

	// Viewer Setters
	SetViewerDebug(bool)
	SetViewerHotspotTolerance(int)

	// Preload Setters
	SetPreloadConcurrency(int)
	SetPreloadFetchTimeout(time.Duration)

	// Listing Setters
	SetListingFrames([]string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	ViewerCfg  ViewerConfig  `mapstructure:"viewer" yaml:"viewer"`
	PreloadCfg PreloadConfig `mapstructure:"preload" yaml:"preload"`
	NetworkCfg NetworkConfig `mapstructure:"network" yaml:"network"`
	ListingCfg ListingConfig `mapstructure:"listing" yaml:"listing"`
	PricingCfg PricingConfig `mapstructure:"pricing" yaml:"pricing"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Viewer() ViewerConfig   { return c.ViewerCfg }
func (c *Config) Preload() PreloadConfig { return c.PreloadCfg }
func (c *Config) Network() NetworkConfig { return c.NetworkCfg }
func (c *Config) Listing() ListingConfig { return c.ListingCfg }
func (c *Config) Pricing() PricingConfig { return c.PricingCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetViewerDebug(b bool)           { c.ViewerCfg.Debug = b }
func (c *Config) SetViewerHotspotTolerance(n int) { c.ViewerCfg.HotspotTolerance = n }

func (c *Config) SetPreloadConcurrency(n int) { c.PreloadCfg.Concurrency = n }
func (c *Config) SetPreloadFetchTimeout(d time.Duration) {
	c.PreloadCfg.FetchTimeout = d
}

func (c *Config) SetListingFrames(frames []string) { c.ListingCfg.Frames = frames }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ViewerConfig tunes the 360 viewer interaction.
type ViewerConfig struct {
	HotspotTolerance int     `mapstructure:"hotspot_tolerance" yaml:"hotspot_tolerance"`
	Sensitivity      float64 `mapstructure:"sensitivity" yaml:"sensitivity"`
	Debug            bool    `mapstructure:"debug" yaml:"debug"`
}

// PreloadConfig controls how frame images are fetched before interaction.
type PreloadConfig struct {
	Concurrency    int           `mapstructure:"concurrency" yaml:"concurrency"`
	RateLimit      float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
	MaxImageBytes  int64         `mapstructure:"max_image_bytes" yaml:"max_image_bytes"`
	DecodeMetadata bool          `mapstructure:"decode_metadata" yaml:"decode_metadata"`
}

// NetworkConfig tunes the HTTP client used for frame downloads.
type NetworkConfig struct {
	Timeout               time.Duration `mapstructure:"timeout" yaml:"timeout"`
	DialTimeout           time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	TLSHandshakeTimeout   time.Duration `mapstructure:"tls_handshake_timeout" yaml:"tls_handshake_timeout"`
	ResponseHeaderTimeout time.Duration `mapstructure:"response_header_timeout" yaml:"response_header_timeout"`
	MaxConnsPerHost       int           `mapstructure:"max_conns_per_host" yaml:"max_conns_per_host"`
	ForceHTTP2            bool          `mapstructure:"force_http2" yaml:"force_http2"`
	IgnoreTLSErrors       bool          `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	UserAgent             string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// ListingConfig describes the vehicle on the page and its 360 sequence.
type ListingConfig struct {
	Model        string          `mapstructure:"model" yaml:"model"`
	Year         int             `mapstructure:"year" yaml:"year"`
	Mileage      string          `mapstructure:"mileage" yaml:"mileage"`
	Price        string          `mapstructure:"price" yaml:"price"`
	FuelType     string          `mapstructure:"fuel_type" yaml:"fuel_type"`
	Transmission string          `mapstructure:"transmission" yaml:"transmission"`
	SoldOut      bool            `mapstructure:"sold_out" yaml:"sold_out"`
	BaseDir      string          `mapstructure:"base_dir" yaml:"base_dir"`
	Frames       []string        `mapstructure:"frames" yaml:"frames"`
	Hotspots     []HotspotConfig `mapstructure:"hotspots" yaml:"hotspots"`
}

// HotspotConfig is a hotspot as written in the config file.
type HotspotConfig struct {
	ID          string  `mapstructure:"id" yaml:"id"`
	X           float64 `mapstructure:"x" yaml:"x"`
	Y           float64 `mapstructure:"y" yaml:"y"`
	Frame       int     `mapstructure:"frame" yaml:"frame"`
	Title       string  `mapstructure:"title" yaml:"title"`
	Description string  `mapstructure:"description" yaml:"description"`
}

// RangeConfig is an inclusive slider range with its starting value.
type RangeConfig struct {
	Min     int `mapstructure:"min" yaml:"min"`
	Max     int `mapstructure:"max" yaml:"max"`
	Default int `mapstructure:"default" yaml:"default"`
}

// PricingConfig parameterises the event price estimate.
type PricingConfig struct {
	BaseRate       float64     `mapstructure:"base_rate" yaml:"base_rate"`
	CurrencySymbol string      `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	Invites        RangeConfig `mapstructure:"invites" yaml:"invites"`
	Months         RangeConfig `mapstructure:"months" yaml:"months"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "spinview")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Viewer --
	v.SetDefault("viewer.hotspot_tolerance", 2)
	v.SetDefault("viewer.sensitivity", 1.0)
	v.SetDefault("viewer.debug", false)

	// -- Preload --
	v.SetDefault("preload.concurrency", 6)
	v.SetDefault("preload.rate_limit", 0.0)
	v.SetDefault("preload.fetch_timeout", "0s")
	v.SetDefault("preload.max_image_bytes", 16<<20)
	v.SetDefault("preload.decode_metadata", true)

	// -- Network --
	v.SetDefault("network.timeout", "0s")
	v.SetDefault("network.dial_timeout", "5s")
	v.SetDefault("network.tls_handshake_timeout", "5s")
	v.SetDefault("network.response_header_timeout", "10s")
	v.SetDefault("network.max_conns_per_host", 16)
	v.SetDefault("network.force_http2", true)
	v.SetDefault("network.ignore_tls_errors", false)
	v.SetDefault("network.user_agent", "spinview/1.0")

	// -- Listing --
	setListingDefaults(v)

	// -- Pricing --
	v.SetDefault("pricing.base_rate", 150.0)
	v.SetDefault("pricing.currency_symbol", "₹")
	v.SetDefault("pricing.invites.min", 10)
	v.SetDefault("pricing.invites.max", 500)
	v.SetDefault("pricing.invites.default", 50)
	v.SetDefault("pricing.months.min", 1)
	v.SetDefault("pricing.months.max", 24)
	v.SetDefault("pricing.months.default", 12)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.ViewerCfg.HotspotTolerance < 0 {
		return fmt.Errorf("viewer.hotspot_tolerance must not be negative")
	}
	if c.ViewerCfg.Sensitivity == 0 {
		return fmt.Errorf("viewer.sensitivity must be non-zero")
	}
	if c.PreloadCfg.Concurrency <= 0 {
		return fmt.Errorf("preload.concurrency must be a positive integer")
	}
	if c.PreloadCfg.RateLimit < 0 {
		return fmt.Errorf("preload.rate_limit must not be negative")
	}
	if c.PreloadCfg.FetchTimeout < 0 {
		return fmt.Errorf("preload.fetch_timeout must not be negative")
	}
	if c.PreloadCfg.MaxImageBytes <= 0 {
		return fmt.Errorf("preload.max_image_bytes must be a positive integer")
	}
	if err := c.ListingCfg.Validate(); err != nil {
		return fmt.Errorf("listing configuration invalid: %w", err)
	}
	if err := c.PricingCfg.Validate(); err != nil {
		return fmt.Errorf("pricing configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the listing has something to show. Hotspot anchors are
// checked against the frames when the viewer is built.
func (l *ListingConfig) Validate() error {
	if len(l.Frames) == 0 {
		return fmt.Errorf("frames must contain at least one image")
	}
	return nil
}

// Validate checks the pricing ranges.
func (p *PricingConfig) Validate() error {
	if p.BaseRate < 0 {
		return fmt.Errorf("base_rate must not be negative")
	}
	if err := p.Invites.validate("invites"); err != nil {
		return err
	}
	return p.Months.validate("months")
}

func (r RangeConfig) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s.min must not exceed %s.max", name, name)
	}
	if r.Default < r.Min || r.Default > r.Max {
		return fmt.Errorf("%s.default must be between %d and %d", name, r.Min, r.Max)
	}
	return nil
}
