package config

// EnvPrefix is empty because every field tag carries the full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

const (
	EnvAppEnv           = "PARTSDESK_APP_ENV"
	EnvPort             = "PARTSDESK_APP_PORT"
	EnvLogLevel         = "PARTSDESK_LOG_LEVEL"
	EnvSpreadsheetID    = "PARTSDESK_SHEETS_SPREADSHEET_ID"
	EnvSheetsRange      = "PARTSDESK_SHEETS_RANGE"
	EnvCatalogCacheTTL  = "PARTSDESK_CATALOG_CACHE_TTL"
	EnvCatalogPageSize  = "PARTSDESK_CATALOG_PAGE_SIZE"
	EnvSessionStore     = "PARTSDESK_SESSION_STORE"
	EnvRedisURL         = "PARTSDESK_REDIS_URL"
	EnvRedisAddr        = "PARTSDESK_REDIS_ADDR"
	EnvRecipientNumber  = "PARTSDESK_ORDER_RECIPIENT_NUMBER"
	EnvOrderTimezone    = "PARTSDESK_ORDER_TIMEZONE"
	EnvSheetsHeaderRows = "PARTSDESK_SHEETS_HEADER_ROWS"
)
