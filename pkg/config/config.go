package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	DB      DBConfig
	Cart    CartConfig
	Session SessionConfig
	CORS    CORSConfig
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
	Env          string `envconfig:"ELEX_APP_ENV" required:"true"`
	Port         string `envconfig:"ELEX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ELEX_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"ELEX_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"ELEX_LOG_WARN_STACK" default:"false"`
	// PublicOrigin is the site origin quoted in order messages.
	PublicOrigin string `envconfig:"ELEX_PUBLIC_ORIGIN"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver  string `envconfig:"ELEX_STORAGE_DRIVER" default:"memory"`
	FileDir string `envconfig:"ELEX_STORAGE_FILE_DIR" default:"var/carts"`
}

// NormalizedDriver returns the lower-cased storage driver name.
func (s StorageConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

type RedisConfig struct {
	URL          string        `envconfig:"ELEX_REDIS_URL"`
	Address      string        `envconfig:"ELEX_REDIS_ADDR"`
	Password     string        `envconfig:"ELEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ELEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ELEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELEX_REDIS_WRITE_TIMEOUT" default:"5s"`
	CartTTL      time.Duration `envconfig:"ELEX_REDIS_CART_TTL" default:"720h"`
}

type DBConfig struct {
	DSN         string `envconfig:"ELEX_DB_DSN"`
	AutoMigrate bool   `envconfig:"ELEX_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"ELEX_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ELEX_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ELEX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ELEX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type CartConfig struct {
	StorageKey    string        `envconfig:"ELEX_CART_STORAGE_KEY" default:"elex_cart"`
	Currency      string        `envconfig:"ELEX_CART_CURRENCY" default:"SAR"`
	Locale        string        `envconfig:"ELEX_CART_LOCALE" default:"ar"`
	IdleTTL       time.Duration `envconfig:"ELEX_CART_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"ELEX_CART_SWEEP_INTERVAL" default:"5m"`
}

type SessionConfig struct {
	Secret     string        `envconfig:"ELEX_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"ELEX_SESSION_ISSUER" default:"elex-storefront"`
	TTL        time.Duration `envconfig:"ELEX_SESSION_TTL" default:"720h"`
	CookieName string        `envconfig:"ELEX_SESSION_COOKIE" default:"elex_cart_session"`
	Secure     bool          `envconfig:"ELEX_SESSION_COOKIE_SECURE" default:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ELEX_CORS_ORIGINS" default:"http://localhost:8080,http://localhost:5173"`
}

func (c *Config) validate() error {
	switch c.Storage.NormalizedDriver() {
	case StorageMemory, StorageFile:
	case StorageRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
	case StorageSQLite, StoragePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the %s storage driver", EnvDBDSN, c.Storage.NormalizedDriver())
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, c.Storage.Driver)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	return nil
}
