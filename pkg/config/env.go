package config

// EnvPrefix is handed to envconfig. Tagged fields fall back to their literal tag name.
const EnvPrefix = "ELEX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

const (
	EnvAppEnv        = "ELEX_APP_ENV"
	EnvPort          = "ELEX_APP_PORT"
	EnvPublicOrigin  = "ELEX_PUBLIC_ORIGIN"
	EnvStorageDriver = "ELEX_STORAGE_DRIVER"
	EnvStorageDir    = "ELEX_STORAGE_FILE_DIR"
	EnvRedisURL      = "ELEX_REDIS_URL"
	EnvRedisAddr     = "ELEX_REDIS_ADDR"
	EnvDBDSN         = "ELEX_DB_DSN"
	EnvCartCurrency  = "ELEX_CART_CURRENCY"
	EnvCartLocale    = "ELEX_CART_LOCALE"
	EnvSessionSecret = "ELEX_SESSION_SECRET"
	EnvSessionTTL    = "ELEX_SESSION_TTL"
	EnvCORSOrigins   = "ELEX_CORS_ORIGINS"
)
