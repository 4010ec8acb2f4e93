package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by parseEnv.
const (
	EnvDatabaseDSN   = "WEPOST_DATABASE_DSN"
	EnvAdminPassword = "WEPOST_ADMIN_PASSWORD"
	EnvLogLevel      = "WEPOST_LOG_LEVEL"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over .env entries (godotenv never overwrites existing ones).
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvAdminPassword); ok {
		config.AdminPassword = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		config.LogLevel = v
	}
}
