package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "procureflow"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PROCUREFLOW_DB_DSN"
	EnvDBHost = "PROCUREFLOW_DB_HOST"
	EnvDBUser = "PROCUREFLOW_DB_USER"
	EnvDBName = "PROCUREFLOW_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
