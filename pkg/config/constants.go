package config

const (
	// EnvPrefix is empty because every envconfig tag already carries the
	// WANDERSTAY_ prefix.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
