package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/partsdesk-backend/pkg/pagination"
)

type Config struct {
	App     AppConfig
	GCP     GCPConfig
	Sheets  SheetsConfig
	Catalog CatalogConfig
	Session SessionConfig
	Redis   RedisConfig
	Order   OrderConfig
	Limits  RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PARTSDESK_APP_ENV" required:"true"`
	Port         string   `envconfig:"PARTSDESK_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PARTSDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PARTSDESK_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PARTSDESK_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type GCPConfig struct {
	CredentialsJSON        string `envconfig:"PARTSDESK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PARTSDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type SheetsConfig struct {
	SpreadsheetID string        `envconfig:"PARTSDESK_SHEETS_SPREADSHEET_ID" required:"true"`
	Range         string        `envconfig:"PARTSDESK_SHEETS_RANGE" default:"A:D"`
	HeaderRows    int           `envconfig:"PARTSDESK_SHEETS_HEADER_ROWS" default:"1"`
	FetchTimeout  time.Duration `envconfig:"PARTSDESK_SHEETS_FETCH_TIMEOUT" default:"15s"`
}

type CatalogConfig struct {
	CacheTTL     time.Duration `envconfig:"PARTSDESK_CATALOG_CACHE_TTL" default:"10m"`
	FailureRetry time.Duration `envconfig:"PARTSDESK_CATALOG_FAILURE_RETRY" default:"30s"`
	PageSize     int           `envconfig:"PARTSDESK_CATALOG_PAGE_SIZE" default:"15"`
	AllOrigins   string        `envconfig:"PARTSDESK_CATALOG_ALL_ORIGINS" default:"ALL"`
	Locale       string        `envconfig:"PARTSDESK_CATALOG_LOCALE" default:"ar"`
}

type SessionConfig struct {
	Store        string        `envconfig:"PARTSDESK_SESSION_STORE" default:"memory"`
	TTL          time.Duration `envconfig:"PARTSDESK_SESSION_TTL" default:"24h"`
	CookieName   string        `envconfig:"PARTSDESK_SESSION_COOKIE" default:"partsdesk_session"`
	CookieSecure bool          `envconfig:"PARTSDESK_SESSION_COOKIE_SECURE" default:"false"`
}

// UsesRedis reports whether sessions live in redis.
func (s SessionConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(s.Store), SessionStoreRedis)
}

type RedisConfig struct {
	URL          string        `envconfig:"PARTSDESK_REDIS_URL"`
	Address      string        `envconfig:"PARTSDESK_REDIS_ADDR"`
	Password     string        `envconfig:"PARTSDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARTSDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARTSDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARTSDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARTSDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARTSDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARTSDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any redis endpoint was supplied.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type OrderConfig struct {
	BusinessName    string `envconfig:"PARTSDESK_ORDER_BUSINESS_NAME" default:"شركة المهندس لقطع غيار السيارات"`
	MessagingURL    string `envconfig:"PARTSDESK_ORDER_MESSAGING_URL" default:"https://wa.me"`
	RecipientNumber string `envconfig:"PARTSDESK_ORDER_RECIPIENT_NUMBER" required:"true"`
	Currency        string `envconfig:"PARTSDESK_ORDER_CURRENCY" default:"ج.م"`
	TimeLayout      string `envconfig:"PARTSDESK_ORDER_TIME_LAYOUT" default:"2006-01-02 15:04:05"`
	Timezone        string `envconfig:"PARTSDESK_ORDER_TIMEZONE" default:"Africa/Cairo"`
}

// Location resolves the configured timezone, falling back to UTC.
func (o OrderConfig) Location() *time.Location {
	if strings.TrimSpace(o.Timezone) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RateLimitConfig struct {
	Window       time.Duration `envconfig:"PARTSDESK_RATE_LIMIT_WINDOW" default:"1m"`
	RefreshLimit int           `envconfig:"PARTSDESK_RATE_LIMIT_REFRESH" default:"5"`
	OrderLimit   int           `envconfig:"PARTSDESK_RATE_LIMIT_ORDER" default:"20"`
}

func (c *Config) validate() error {
	if c.Session.UsesRedis() && !c.Redis.Configured() {
		return fmt.Errorf("%s=redis requires %s or %s", EnvSessionStore, EnvRedisURL, EnvRedisAddr)
	}
	store := strings.ToLower(strings.TrimSpace(c.Session.Store))
	if store != SessionStoreMemory && store != SessionStoreRedis {
		return fmt.Errorf("unsupported %s %q", EnvSessionStore, c.Session.Store)
	}
	if c.Catalog.PageSize <= 0 || c.Catalog.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("%s must be between 1 and %d, got %d", EnvCatalogPageSize, pagination.MaxPageSize, c.Catalog.PageSize)
	}
	if c.Sheets.HeaderRows < 0 {
		return errors.New("sheet header rows must not be negative")
	}
	return nil
}
