package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/wepost/internal/flagx"
)

// JsonConfig mirrors Config for JSON unmarshalling. It is an intermediate
// DTO: after unmarshalling, only the fields present in the file are copied
// into the runtime Config.
type JsonConfig struct {
	DatabaseDSN   *string `json:"database_dsn"`
	AdminPassword *string `json:"admin_password"`
	LogLevel      *string `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// Callers that parse command-line flags themselves (the cobra layer) pass
// the path explicitly; when jsonConfigFile is empty, the -c/-config flags
// are read from os.Args instead. If no path is found either way, no JSON
// file is loaded. If the file cannot be read or contains invalid JSON, the
// function panics: a broken config file should stop the process before it
// touches the database.
func parseJson(config *Config, jsonConfigFile string) {
	if jsonConfigFile == "" {
		jsonConfigFile = flagx.JsonConfigFlags()
	}

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.AdminPassword != nil {
		config.AdminPassword = *c.AdminPassword
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
