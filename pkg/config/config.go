package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Store         StoreConfig
	Redis         RedisConfig
	Password      PasswordConfig
	Auth          AuthConfig
	AuthRateLimit AuthRateLimitConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Password.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env            string        `envconfig:"UNIVERSE_APP_ENV" default:"dev"`
	Name           string        `envconfig:"UNIVERSE_APP_NAME" default:"UniVerse API"`
	Port           string        `envconfig:"UNIVERSE_APP_PORT" default:"8000"`
	LogLevel       string        `envconfig:"UNIVERSE_LOG_LEVEL" default:"info"`
	LogFormat      string        `envconfig:"UNIVERSE_LOG_FORMAT" default:"json"`
	LogWarnStack   bool          `envconfig:"UNIVERSE_LOG_WARN_STACK" default:"false"`
	RequestTimeout time.Duration `envconfig:"UNIVERSE_REQUEST_TIMEOUT" default:"15s"`
	CORSOrigins    []string      `envconfig:"UNIVERSE_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig describes the document store connection. URL and Name keep the
// DATABASE_URL / DATABASE_NAME names the deployment already exports.
type StoreConfig struct {
	Driver         string        `envconfig:"UNIVERSE_STORE_DRIVER" default:"mongo"`
	URL            string        `envconfig:"DATABASE_URL"`
	Name           string        `envconfig:"DATABASE_NAME"`
	ConnectTimeout time.Duration `envconfig:"UNIVERSE_STORE_CONNECT_TIMEOUT" default:"10s"`
	MaxPoolSize    uint64        `envconfig:"UNIVERSE_STORE_MAX_POOL_SIZE" default:"100"`
	MaxOpenConns   int           `envconfig:"UNIVERSE_STORE_MAX_OPEN_CONNS" default:"20"`
}

// Configured reports whether enough settings exist to open a store.
func (s StoreConfig) Configured() bool {
	switch s.normalizedDriver() {
	case StoreDriverMemory:
		return true
	case StoreDriverMongo:
		return s.URL != "" && s.Name != ""
	default:
		return s.URL != ""
	}
}

// DriverName returns the lower-cased driver identifier.
func (s StoreConfig) DriverName() string {
	return s.normalizedDriver()
}

func (s StoreConfig) normalizedDriver() string {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		return StoreDriverMongo
	}
	return driver
}

func (s StoreConfig) validate() error {
	switch s.normalizedDriver() {
	case StoreDriverMongo, StoreDriverSQLite, StoreDriverPostgres, StoreDriverMemory:
		return nil
	}
	return fmt.Errorf("unsupported %s %q", EnvStoreDriver, s.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"UNIVERSE_REDIS_URL"`
	Address      string        `envconfig:"UNIVERSE_REDIS_ADDR"`
	Password     string        `envconfig:"UNIVERSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"UNIVERSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"UNIVERSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"UNIVERSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"UNIVERSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"UNIVERSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"UNIVERSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether redis-backed features should be wired.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type PasswordConfig struct {
	Scheme           string `envconfig:"UNIVERSE_PASSWORD_SCHEME" default:"sha256"`
	ArgonMemoryKB    int    `envconfig:"UNIVERSE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"UNIVERSE_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"UNIVERSE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"UNIVERSE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"UNIVERSE_ARGON_KEY_LEN" default:"32"`
}

func (p PasswordConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(p.Scheme)) {
	case "", PasswordSchemeSHA256, PasswordSchemeArgon2id:
		return nil
	}
	return fmt.Errorf("unsupported %s %q", EnvPasswordScheme, p.Scheme)
}

type AuthConfig struct {
	SessionTTL         time.Duration `envconfig:"UNIVERSE_SESSION_TTL" default:"168h"`
	ExposePasswordHash bool          `envconfig:"UNIVERSE_AUTH_EXPOSE_PASSWORD_HASH" default:"false"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"UNIVERSE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentifierLimit  int           `envconfig:"UNIVERSE_AUTH_RATE_LIMIT_LOGIN_IDENTIFIER_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"UNIVERSE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow          time.Duration `envconfig:"UNIVERSE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupIdentifierLimit int           `envconfig:"UNIVERSE_AUTH_RATE_LIMIT_SIGNUP_IDENTIFIER_LIMIT" default:"3"`
	SignupIPLimit         int           `envconfig:"UNIVERSE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"UNIVERSE_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"UNIVERSE_METRICS_PATH" default:"/metrics"`
}
