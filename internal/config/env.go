package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKBOARD_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	track := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	envString := func(key, field string, target *string) {
		if v := os.Getenv(key); v != "" {
			*target = v
			track(field)
		}
	}
	envInt := func(key, field string, target *int) {
		if v := os.Getenv(key); v != "" {
			if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*target = i
				track(field)
			}
		}
	}
	envBool := func(key, field string, target *bool) {
		if v := os.Getenv(key); v != "" {
			*target = boolFromString(v)
			track(field)
		}
	}

	envString("TASKBOARD_API_URL", "api_url", &cfg.APIURL)
	envInt("TASKBOARD_TIMEOUT", "request_timeout_seconds", &cfg.RequestTimeoutSeconds)
	envInt("TASKBOARD_TOAST_SECONDS", "toast_seconds", &cfg.ToastSeconds)

	// Logging configuration
	envString("TASKBOARD_LOG_DIR", "log_dir", &cfg.LogDir)
	envString("TASKBOARD_LOG_LEVEL", "log_level", &cfg.LogLevel)
	envString("TASKBOARD_LOG_FORMAT", "log_format", &cfg.LogFormat)
	envBool("TASKBOARD_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	envBool("TASKBOARD_LOG_CALLER", "log_caller", &cfg.LogCaller)

	envString("TASKBOARD_SERVE_ADDR", "serve_addr", &cfg.ServeAddr)
	envString("TASKBOARD_CATEGORIZER", "categorizer", &cfg.Categorizer)
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
