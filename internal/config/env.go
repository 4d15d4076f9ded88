package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvDataFile      = "TASKLINE_DATA_FILE"
	EnvSkipInvalid   = "TASKLINE_SKIP_INVALID"
	EnvBotName       = "TASKLINE_BOT_NAME"
	EnvLogLevel      = "TASKLINE_LOG_LEVEL"
	EnvLogFormat     = "TASKLINE_LOG_FORMAT"
	EnvLogTimestamps = "TASKLINE_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKLINE_LOG_CALLER"
	EnvLogFile       = "TASKLINE_LOG_FILE"
)

// envBinding ties an environment variable to a config field.
type envBinding struct {
	name  string
	field string
	str   func(*Config) *string
	flag  func(*Config) *bool
}

func envBindings() []envBinding {
	return []envBinding{
		{name: EnvDataFile, field: "data_file", str: func(c *Config) *string { return &c.DataFile }},
		{name: EnvSkipInvalid, field: "skip_invalid_lines", flag: func(c *Config) *bool { return &c.SkipInvalidLines }},
		{name: EnvBotName, field: "bot_name", str: func(c *Config) *string { return &c.BotName }},
		{name: EnvLogLevel, field: "log_level", str: func(c *Config) *string { return &c.LogLevel }},
		{name: EnvLogFormat, field: "log_format", str: func(c *Config) *string { return &c.LogFormat }},
		{name: EnvLogTimestamps, field: "log_timestamps", flag: func(c *Config) *bool { return &c.LogTimestamps }},
		{name: EnvLogCaller, field: "log_caller", flag: func(c *Config) *bool { return &c.LogCaller }},
		{name: EnvLogFile, field: "log_file", str: func(c *Config) *string { return &c.LogFile }},
	}
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	for _, b := range envBindings() {
		v, ok := os.LookupEnv(b.name)
		if !ok || v == "" {
			continue
		}
		if b.str != nil {
			*b.str(cfg) = v
		} else {
			parsed, err := boolFromString(v)
			if err != nil {
				return fmt.Errorf("%s: %w", b.name, err)
			}
			*b.flag(cfg) = parsed
		}
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
