package config

import "os"

const (
	apiURLEnvVar    = "API_URL"
	appNameVar      = "APP_NAME"
	folderEnvVar    = "FOLDER"
	redisAddrEnvVar = "REDIS_ADDR"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the base URL of the storefront REST API
// (e.g., "https://shop.example.com"). All endpoint paths are relative to it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "http://localhost:8000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Storefront Client")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

// GetRedisAddr returns the Redis address used for cross-process credential
// change broadcasts. Empty means broadcasts stay in-process.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrEnvVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
