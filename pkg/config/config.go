package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
	Pagination   PaginationConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODTRACE_APP_ENV" required:"true"`
	Port         string `envconfig:"FOODTRACE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FOODTRACE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODTRACE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FOODTRACE_DB_DSN"`
	Driver string `envconfig:"FOODTRACE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FOODTRACE_DB_HOST"`
	Port     int    `envconfig:"FOODTRACE_DB_PORT" default:"5432"`
	User     string `envconfig:"FOODTRACE_DB_USER"`
	Password string `envconfig:"FOODTRACE_DB_PASSWORD"`
	Name     string `envconfig:"FOODTRACE_DB_NAME"`
	SSLMode  string `envconfig:"FOODTRACE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODTRACE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FOODTRACE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FOODTRACE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODTRACE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODTRACE_REDIS_URL"`
	Address      string        `envconfig:"FOODTRACE_REDIS_ADDR"`
	Password     string        `envconfig:"FOODTRACE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODTRACE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODTRACE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODTRACE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODTRACE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODTRACE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODTRACE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FOODTRACE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FOODTRACE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FOODTRACE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FOODTRACE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FOODTRACE_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"FOODTRACE_IDEMPOTENCY_TTL" default:"24h"`
}

type PaginationConfig struct {
	DefaultLimit int `envconfig:"FOODTRACE_PAGE_DEFAULT_LIMIT" default:"10"`
	MaxLimit     int `envconfig:"FOODTRACE_PAGE_MAX_LIMIT" default:"100"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
