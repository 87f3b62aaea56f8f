package config

import (
	"flag"
)

// parseFlags defines the global flags on fs and parses args. Only flags
// present on the command line override earlier layers.
// If sources is non-nil, it tracks the source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskboard", flag.ContinueOnError)
	}

	var (
		apiURL, logDir, logLevel, logFormat string
		serveAddr, categorizer              string
		timeout, toastSeconds               int
		logTimestamps, logCaller            bool
	)

	fs.StringVar(&apiURL, "api-url", cfg.APIURL, "Task service URL")
	fs.IntVar(&timeout, "timeout", cfg.RequestTimeoutSeconds, "Request timeout (seconds)")
	fs.IntVar(&toastSeconds, "toast-seconds", cfg.ToastSeconds, "Notification display time (seconds)")
	fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Run log directory")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&serveAddr, "addr", cfg.ServeAddr, "Development server listen address")
	fs.StringVar(&categorizer, "categorizer", cfg.Categorizer, "Development server categorizer (keyword, pattern)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"api-url":        "api_url",
		"timeout":        "request_timeout_seconds",
		"toast-seconds":  "toast_seconds",
		"log-dir":        "log_dir",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
		"addr":           "serve_addr",
		"categorizer":    "categorizer",
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "api-url":
			cfg.APIURL = apiURL
		case "timeout":
			cfg.RequestTimeoutSeconds = timeout
		case "toast-seconds":
			cfg.ToastSeconds = toastSeconds
		case "log-dir":
			cfg.LogDir = logDir
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		case "addr":
			cfg.ServeAddr = serveAddr
		case "categorizer":
			cfg.Categorizer = categorizer
		}
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})

	return nil
}
