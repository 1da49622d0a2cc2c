package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Tenant        TenantConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Migrate       MigrateConfig
	Bootstrap     BootstrapConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.App.NodeEnv); err != nil {
		return nil, err
	}
	if err := cfg.Migrate.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" default:"dev"`
	NodeEnv      string `envconfig:"NODE_ENV"`
	Port         string `envconfig:"PORT" default:"10000"`
	Version      string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// IsProd reports production from either APP_ENV or the legacy NODE_ENV switch.
func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.NodeEnv, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DATABASE_URL"`
	Driver string `envconfig:"DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite engine.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1h"`
}

type TenantConfig struct {
	DefaultID int64 `envconfig:"DEFAULT_TENANT_ID" default:"1"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"false"`
}

type MigrateConfig struct {
	SeedFailurePolicy string `envconfig:"MIGRATE_SEED_FAILURE_POLICY" default:"ignore"`
	Dir               string `envconfig:"MIGRATE_DIR"`
}

func (m MigrateConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(m.SeedFailurePolicy)) {
	case SeedFailureIgnore, SeedFailurePropagate:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q", EnvSeedFailurePolicy, SeedFailureIgnore, SeedFailurePropagate)
}

type BootstrapConfig struct {
	AdminUsername string `envconfig:"BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
	AdminFullName string `envconfig:"BOOTSTRAP_ADMIN_FULL_NAME" default:"Administrador"`
	DemoProducts  bool   `envconfig:"BOOTSTRAP_DEMO_PRODUCTS" default:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// ensureDSN validates the connection string. Production deployments (NODE_ENV=production)
// connect over TLS without certificate verification, which maps to sslmode=require.
func (db *DBConfig) ensureDSN(nodeEnv string) error {
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDatabaseURL)
	}
	if db.IsSQLite() {
		return nil
	}
	if !strings.EqualFold(nodeEnv, AppEnvProd) {
		return nil
	}

	u, err := url.Parse(db.DSN)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvDatabaseURL, err)
	}
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
		db.DSN = u.String()
	}
	return nil
}
