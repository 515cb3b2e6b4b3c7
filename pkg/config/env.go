package config

const (
	EnvPrefix = "BOREALIS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "BOREALIS_APP_ENV"
	EnvPort      = "BOREALIS_APP_PORT"
	EnvDBDSN     = "BOREALIS_DB_DSN"
	EnvDBHost    = "BOREALIS_DB_HOST"
	EnvDBUser    = "BOREALIS_DB_USER"
	EnvDBName    = "BOREALIS_DB_NAME"
	EnvRedisURL  = "BOREALIS_REDIS_URL"
	EnvJWTSecret = "BOREALIS_JWT_SECRET"
	EnvJWTIssuer = "BOREALIS_JWT_ISSUER"
	EnvJWTExp    = "BOREALIS_JWT_EXPIRATION_MINUTES"
	EnvCORS      = "BOREALIS_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
