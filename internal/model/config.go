package model

import "time"

// Config is the complete Mirror configuration.
// Field tags serve both the YAML config file and viper's env/flag binding.
type Config struct {
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Insight      InsightConfig      `yaml:"insight" mapstructure:"insight"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// CacheConfig controls memoization of analyses
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls batch analysis
type ConcurrencyConfig struct {
	Workers int           `yaml:"workers" mapstructure:"workers"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ServerConfig controls the HTTP service
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	TrustProxy      bool          `yaml:"trust_proxy" mapstructure:"trust_proxy"` // Take the client address from X-Forwarded-For / X-Real-IP
}

// RateLimitingConfig controls per-client request limits on the HTTP service
type RateLimitingConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	ClientTTL         time.Duration `yaml:"client_ttl" mapstructure:"client_ttl"` // Idle clients are forgotten after this
	Overrides         []ClientRate  `yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// ClientRate is a per-client rate limit that replaces the default
type ClientRate struct {
	Client            string  `yaml:"client" mapstructure:"client"` // Host or host:port
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// InsightConfig controls timeline and summary thresholds
type InsightConfig struct {
	RollingWindow       time.Duration `yaml:"rolling_window" mapstructure:"rolling_window"`
	VolatilityThreshold float64       `yaml:"volatility_threshold" mapstructure:"volatility_threshold"`
	ShiftThreshold      float64       `yaml:"shift_threshold" mapstructure:"shift_threshold"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
			Timeout: 5 * time.Minute,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		RateLimiting: RateLimitingConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			BurstSize:         10,
			ClientTTL:         10 * time.Minute,
		},
		Insight: InsightConfig{
			RollingWindow:       7 * 24 * time.Hour,
			VolatilityThreshold: 0.5,
			ShiftThreshold:      0.3,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
