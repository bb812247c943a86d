package config

// EnvPrefix scopes every envconfig lookup for this service.
const EnvPrefix = "FOODTRACE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "FOODTRACE_APP_ENV"
	EnvPort       = "FOODTRACE_APP_PORT"
	EnvDBDSN      = "FOODTRACE_DB_DSN"
	EnvDBHost     = "FOODTRACE_DB_HOST"
	EnvDBUser     = "FOODTRACE_DB_USER"
	EnvDBName     = "FOODTRACE_DB_NAME"
	EnvRedisURL   = "FOODTRACE_REDIS_URL"
	EnvJWTSecret  = "FOODTRACE_JWT_SECRET"
	EnvJWTIssuer  = "FOODTRACE_JWT_ISSUER"
	EnvJWTExpMins = "FOODTRACE_JWT_EXPIRATION_MINUTES"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
