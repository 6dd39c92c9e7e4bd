package config

const (
	// EnvPrefix is the envconfig prefix shared by every binary.
	EnvPrefix = "FIELDCRM"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
