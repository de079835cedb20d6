package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every storefront environment variable.
const EnvPrefix = "BREWLINE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names used directly by tests and bootstrap diagnostics.
const (
	EnvAppEnv              = "BREWLINE_APP_ENV"
	EnvPort                = "BREWLINE_APP_PORT"
	EnvRedisURL            = "BREWLINE_REDIS_URL"
	EnvSpreadsheetID       = "BREWLINE_SHEETS_SPREADSHEET_ID"
	EnvServiceAccountEmail = "BREWLINE_SHEETS_SERVICE_ACCOUNT_EMAIL"
	EnvPrivateKey          = "BREWLINE_SHEETS_PRIVATE_KEY"
	EnvStripeAPIKey        = "BREWLINE_STRIPE_API_KEY"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Sheets  SheetsConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Stripe  StripeConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BREWLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"BREWLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BREWLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BREWLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"BREWLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BREWLINE_REDIS_ADDR"`
	Password     string        `envconfig:"BREWLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BREWLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BREWLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BREWLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BREWLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BREWLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BREWLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SheetsConfig holds the service-account credentials for the spreadsheet
// that backs both the product catalog and the order ledger.
type SheetsConfig struct {
	SpreadsheetID       string `envconfig:"BREWLINE_SHEETS_SPREADSHEET_ID"`
	ServiceAccountEmail string `envconfig:"BREWLINE_SHEETS_SERVICE_ACCOUNT_EMAIL"`
	PrivateKey          string `envconfig:"BREWLINE_SHEETS_PRIVATE_KEY"`
	OrdersRange         string `envconfig:"BREWLINE_SHEETS_ORDERS_RANGE" default:"orders!A:M"`
}

// Configured reports whether all required credentials are present. Missing
// credentials are a configuration error surfaced at first use, never retried.
func (s SheetsConfig) Configured() bool {
	return strings.TrimSpace(s.SpreadsheetID) != "" &&
		strings.TrimSpace(s.ServiceAccountEmail) != "" &&
		strings.TrimSpace(s.PrivateKey) != ""
}

type CatalogConfig struct {
	Range    string        `envconfig:"BREWLINE_CATALOG_RANGE" default:"products!A:I"`
	CacheTTL time.Duration `envconfig:"BREWLINE_CATALOG_CACHE_TTL" default:"5m"`
}

type CartConfig struct {
	SessionCookie string        `envconfig:"BREWLINE_CART_SESSION_COOKIE" default:"bl_session"`
	TTL           time.Duration `envconfig:"BREWLINE_CART_TTL" default:"720h"`
}

type StripeConfig struct {
	APIKey   string `envconfig:"BREWLINE_STRIPE_API_KEY"`
	Env      string `envconfig:"BREWLINE_STRIPE_ENV" default:"test"`
	Currency string `envconfig:"BREWLINE_STRIPE_CURRENCY" default:"sgd"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BREWLINE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
