package config

// EnvPrefix is empty: the service reads the platform-standard variable names directly.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	SeedFailureIgnore    = "ignore"
	SeedFailurePropagate = "propagate"
)

const (
	EnvAppEnv            = "APP_ENV"
	EnvNodeEnv           = "NODE_ENV"
	EnvPort              = "PORT"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvDBDriver          = "DB_DRIVER"
	EnvRedisURL          = "REDIS_URL"
	EnvSessionTTL        = "SESSION_TTL"
	EnvDefaultTenantID   = "DEFAULT_TENANT_ID"
	EnvSeedFailurePolicy = "MIGRATE_SEED_FAILURE_POLICY"
	EnvBootstrapPassword = "BOOTSTRAP_ADMIN_PASSWORD"
	EnvCORSOrigins       = "CORS_ALLOWED_ORIGINS"
)
