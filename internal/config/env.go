package config

import (
	"os"
	"strings"
)

const (
	EnvStoreDriver = "TASKLEDGER_STORE_DRIVER"
	EnvStorePath   = "TASKLEDGER_STORE_PATH"
	EnvStoreFormat = "TASKLEDGER_STORE_FORMAT"
	EnvLocale      = "TASKLEDGER_LOCALE"
	EnvLogLevel    = "TASKLEDGER_LOG_LEVEL"
)

// ApplyEnv overrides cfg with any TASKLEDGER_* variables that are set.
func ApplyEnv(cfg *Config) {
	if val := getEnv(EnvStoreDriver); val != "" {
		cfg.Store.Driver = val
		if getEnv(EnvStorePath) == "" {
			cfg.Store.Path = ""
		}
	}
	if val := getEnv(EnvStorePath); val != "" {
		cfg.Store.Path = val
	}
	if val := getEnv(EnvStoreFormat); val != "" {
		cfg.Store.Format = val
	}
	if val := getEnv(EnvLocale); val != "" {
		cfg.Tasks.Locale = val
	}
	if val := getEnv(EnvLogLevel); val != "" {
		cfg.Log.Level = val
	}
	cfg.ApplyDefaults()
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
