package config

type Config interface {
	EnvConfig
	HTTPConfig
	StorageConfig
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetDataFolder() string
	GetRedisAddr() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	HTTP
	Storage
}

func New() Config {
	return mainConfig{}
}
