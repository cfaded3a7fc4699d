package config

const (
	EnvPrefix = "CAMPUSMART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:campusmart.db?cache=shared&_foreign_keys=on"
)

const (
	EnvAppEnv                 = "CAMPUSMART_APP_ENV"
	EnvPort                   = "CAMPUSMART_APP_PORT"
	EnvLogLevel               = "CAMPUSMART_LOG_LEVEL"
	EnvDBDSN                  = "CAMPUSMART_DB_DSN"
	EnvDBDriver               = "CAMPUSMART_DB_DRIVER"
	EnvDBHost                 = "CAMPUSMART_DB_HOST"
	EnvDBPort                 = "CAMPUSMART_DB_PORT"
	EnvDBUser                 = "CAMPUSMART_DB_USER"
	EnvDBPassword             = "CAMPUSMART_DB_PASSWORD"
	EnvDBName                 = "CAMPUSMART_DB_NAME"
	EnvRedisURL               = "CAMPUSMART_REDIS_URL"
	EnvJWTSecret              = "CAMPUSMART_JWT_SECRET"
	EnvJWTIssuer              = "CAMPUSMART_JWT_ISSUER"
	EnvJWTExpMins             = "CAMPUSMART_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "CAMPUSMART_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite              = "CAMPUSMART_USE_SQLITE"
	EnvGCPProjectID           = "CAMPUSMART_GCP_PROJECT_ID"
	EnvGCSBucket              = "CAMPUSMART_GCS_BUCKET_NAME"
	EnvPubSubOrdersTopic      = "CAMPUSMART_PUBSUB_ORDERS_TOPIC"
	EnvCheckoutCurrency       = "CAMPUSMART_CHECKOUT_CURRENCY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
