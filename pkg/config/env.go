package config

// EnvPrefix is handed to envconfig; every field below carries an explicit name.
const EnvPrefix = "GELATO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "GELATO_APP_ENV"
	EnvPort     = "GELATO_APP_PORT"
	EnvTimeZone = "GELATO_APP_TIMEZONE"

	EnvDBDSN  = "GELATO_DB_DSN"
	EnvDBHost = "GELATO_DB_HOST"
	EnvDBUser = "GELATO_DB_USER"
	EnvDBName = "GELATO_DB_NAME"

	EnvRedisURL = "GELATO_REDIS_URL"

	EnvJWTSecret              = "GELATO_JWT_SECRET"
	EnvJWTIssuer              = "GELATO_JWT_ISSUER"
	EnvJWTExpMins             = "GELATO_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "GELATO_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
