package config

const (
	// EnvPrefix is the envconfig prefix for every variable the service reads.
	EnvPrefix = "GARAGE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "GARAGE_DB_DSN"
	EnvDBHost = "GARAGE_DB_HOST"
	EnvDBUser = "GARAGE_DB_USER"
	EnvDBName = "GARAGE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
