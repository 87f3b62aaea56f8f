package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskboard configuration file
# Values can be overridden by environment variables or CLI flags

# Task service root (TASKBOARD_API_URL)
api_url = "http://localhost:8000"

# Per-request timeout in seconds
request_timeout_seconds = 10

# How long notifications stay on screen (seconds)
toast_seconds = 3

# Run log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.taskboard/logs"

# Logging: debug, info, warn, error
log_level = "info"
# Log format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# Development server (taskboard serve)
serve_addr = ":8000"
# Categorization strategy: keyword or pattern
categorizer = "keyword"
`
}
