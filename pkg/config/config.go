package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the address of the hosted event API
const DefaultBaseURL = "http://104.248.153.158/event-api/"

// Config holds all application configuration
type Config struct {
	App  AppConfig  `mapstructure:"app"`
	API  APIConfig  `mapstructure:"api"`
	Log  LogConfig  `mapstructure:"log"`
	OTel OTelConfig `mapstructure:"otel"`
	Stub StubConfig `mapstructure:"stub"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, staging, production
	Version     string `mapstructure:"version"`
	Locale      string `mapstructure:"locale"` // id, en
	PageSize    int    `mapstructure:"page_size"`
}

// APIConfig holds settings of the remote event API client
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Path           string        `mapstructure:"path"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// Endpoint returns the full URL of the single API endpoint
func (a *APIConfig) Endpoint() (string, error) {
	base, err := url.Parse(a.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(a.Path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid api path: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	OutputPath  string `mapstructure:"output_path"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	ServiceName   string  `mapstructure:"service_name"`
	CollectorAddr string  `mapstructure:"collector_addr"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// StubConfig holds settings of the local stub API server
type StubConfig struct {
	Host      string  `mapstructure:"host"`
	Port      int     `mapstructure:"port"`
	Seed      bool    `mapstructure:"seed"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second per client, 0 = unlimited
	Burst     int     `mapstructure:"burst"`
}

// Addr returns the stub server listen address
func (s *StubConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	return load(".env", false, nil)
}

// LoadWithPath loads configuration from a specific path
func LoadWithPath(path string) (*Config, error) {
	return load(path, true, nil)
}

// LoadWithFlags loads configuration and lets explicitly set flags win over env
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	return load(".env", false, flags)
}

func load(path string, required bool, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil && required {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// flagKeys maps CLI flag names to config keys
var flagKeys = map[string]string{
	"base-url":   "API_BASE_URL",
	"timeout":    "API_TIMEOUT",
	"locale":     "APP_LOCALE",
	"page-size":  "APP_PAGE_SIZE",
	"log-level":  "LOG_LEVEL",
	"host":       "STUB_HOST",
	"port":       "STUB_PORT",
	"seed":       "STUB_SEED",
	"rate-limit": "STUB_RATE_LIMIT",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "event-management")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_LOCALE", "id")
	v.SetDefault("APP_PAGE_SIZE", 5)

	// API defaults
	v.SetDefault("API_BASE_URL", DefaultBaseURL)
	v.SetDefault("API_PATH", "api.php")
	v.SetDefault("API_CONNECT_TIMEOUT", "30s")
	v.SetDefault("API_READ_TIMEOUT", "30s")
	v.SetDefault("API_WRITE_TIMEOUT", "30s")
	v.SetDefault("API_USER_AGENT", "eventctl/1.0")

	// Log defaults
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", true)
	v.SetDefault("LOG_OUTPUT_PATH", "stderr")

	// OTel defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "event-management")
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)

	// Stub server defaults
	v.SetDefault("STUB_HOST", "0.0.0.0")
	v.SetDefault("STUB_PORT", 8090)
	v.SetDefault("STUB_SEED", true)
	v.SetDefault("STUB_RATE_LIMIT", 0)
	v.SetDefault("STUB_BURST", 20)
}

func bindConfig(v *viper.Viper, cfg *Config) error {
	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.Version = v.GetString("APP_VERSION")
	cfg.App.Locale = normalizeLocale(v.GetString("APP_LOCALE"))
	cfg.App.PageSize = v.GetInt("APP_PAGE_SIZE")

	// API
	cfg.API.BaseURL = v.GetString("API_BASE_URL")
	cfg.API.Path = v.GetString("API_PATH")
	cfg.API.ConnectTimeout = v.GetDuration("API_CONNECT_TIMEOUT")
	cfg.API.ReadTimeout = v.GetDuration("API_READ_TIMEOUT")
	cfg.API.WriteTimeout = v.GetDuration("API_WRITE_TIMEOUT")
	cfg.API.UserAgent = v.GetString("API_USER_AGENT")

	// A single --timeout flag overrides all three timeouts
	if v.IsSet("API_TIMEOUT") {
		d := v.GetDuration("API_TIMEOUT")
		cfg.API.ConnectTimeout = d
		cfg.API.ReadTimeout = d
		cfg.API.WriteTimeout = d
	}

	// Log
	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Development = v.GetBool("LOG_DEVELOPMENT")
	cfg.Log.OutputPath = v.GetString("LOG_OUTPUT_PATH")

	// OTel
	cfg.OTel.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.OTel.ServiceName = v.GetString("OTEL_SERVICE_NAME")
	cfg.OTel.CollectorAddr = v.GetString("OTEL_COLLECTOR_ADDR")
	cfg.OTel.SampleRatio = v.GetFloat64("OTEL_SAMPLE_RATIO")

	// Stub
	cfg.Stub.Host = v.GetString("STUB_HOST")
	cfg.Stub.Port = v.GetInt("STUB_PORT")
	cfg.Stub.Seed = v.GetBool("STUB_SEED")
	cfg.Stub.RateLimit = v.GetFloat64("STUB_RATE_LIMIT")
	cfg.Stub.Burst = v.GetInt("STUB_BURST")

	return nil
}

// normalizeLocale lowercases the locale; anything other than en falls back to id
func normalizeLocale(locale string) string {
	if strings.ToLower(strings.TrimSpace(locale)) == "en" {
		return "en"
	}
	return "id"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if c.App.PageSize <= 0 {
		return fmt.Errorf("invalid page size: %d", c.App.PageSize)
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url: %q", c.API.BaseURL)
	}

	if c.API.Path == "" {
		return fmt.Errorf("api path is required")
	}

	if c.API.ConnectTimeout <= 0 || c.API.ReadTimeout <= 0 || c.API.WriteTimeout <= 0 {
		return fmt.Errorf("api timeouts must be positive")
	}

	if c.Stub.Port <= 0 || c.Stub.Port > 65535 {
		return fmt.Errorf("invalid stub port: %d", c.Stub.Port)
	}

	if c.Stub.RateLimit < 0 {
		return fmt.Errorf("invalid stub rate limit: %v", c.Stub.RateLimit)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
