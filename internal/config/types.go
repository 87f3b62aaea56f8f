package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultAPIURL         = "http://localhost:8000"
	DefaultRequestTimeout = 10
	DefaultToastSeconds   = 3
	DefaultLogDir         = "~/.taskboard/logs"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultServeAddr      = ":8000"
	DefaultCategorizer    = "keyword"
)

// Config holds the full configuration for taskboard.
type Config struct {
	// Remote task service
	APIURL                string `toml:"api_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`

	// Interactive board
	ToastSeconds int `toml:"toast_seconds"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Development server
	ServeAddr   string `toml:"serve_addr"`
	Categorizer string `toml:"categorizer"`
}
