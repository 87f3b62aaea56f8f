package config

import "time"

// RequestTimeout returns the per-request timeout for the API client.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeout * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ToastDuration returns how long a notification stays on screen.
func (c *Config) ToastDuration() time.Duration {
	if c.ToastSeconds <= 0 {
		return DefaultToastSeconds * time.Second
	}
	return time.Duration(c.ToastSeconds) * time.Second
}

// Value returns the display value of a config field by its TOML name.
func (c *Config) Value(field string) any {
	switch field {
	case "api_url":
		return c.APIURL
	case "request_timeout_seconds":
		return c.RequestTimeoutSeconds
	case "toast_seconds":
		return c.ToastSeconds
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return c.LogTimestamps
	case "log_caller":
		return c.LogCaller
	case "serve_addr":
		return c.ServeAddr
	case "categorizer":
		return c.Categorizer
	}
	return nil
}
