package config

// EnvPrefix namespaces every UNIVERSE_* variable processed by envconfig.
const EnvPrefix = "UNIVERSE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

const (
	PasswordSchemeSHA256   = "sha256"
	PasswordSchemeArgon2id = "argon2id"
)

const (
	EnvAppEnv         = "UNIVERSE_APP_ENV"
	EnvStoreDriver    = "UNIVERSE_STORE_DRIVER"
	EnvStoreURL       = "DATABASE_URL"
	EnvStoreName      = "DATABASE_NAME"
	EnvPasswordScheme = "UNIVERSE_PASSWORD_SCHEME"
	EnvRedisURL       = "UNIVERSE_REDIS_URL"
)
