package config

const (
	// EnvPrefix is intentionally empty; every field names its env var in full.
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "INLINE_DB_DSN"
	EnvDBHost = "INLINE_DB_HOST"
	EnvDBUser = "INLINE_DB_USER"
	EnvDBName = "INLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
