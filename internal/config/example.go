package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskline configuration file
# Values can be overridden by environment variables (TASKLINE_*) or CLI flags

# Task file (relative to the working directory, supports ~ expansion)
data_file = "tasks.txt"

# Skip malformed lines in the task file instead of refusing to start.
# Skipped lines are reported as warnings and dropped on the next save.
skip_invalid_lines = false

# Name the assistant uses in its greeting
bot_name = "Taskline"

# Logging: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = false
log_caller = false

# Write logs to a file instead of stderr
# log_file = "~/.taskline/taskline.log"
`
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
