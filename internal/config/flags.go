package config

import (
	"flag"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"file":           "data_file",
	"skip-invalid":   "skip_invalid_lines",
	"name":           "bot_name",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-file":       "log_file",
}

// RegisterFlags defines the configuration flags on fs, bound to cfg.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	// Storage
	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "Path to the task file")
	fs.BoolVar(&cfg.SkipInvalidLines, "skip-invalid", cfg.SkipInvalidLines, "Skip malformed task lines instead of failing")

	// Assistant
	fs.StringVar(&cfg.BotName, "name", cfg.BotName, "Assistant name shown in the greeting")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr")
}

// parseFlags defines and parses CLI flags.
// If sources is non-nil, explicitly set flags are recorded as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskline", flag.ContinueOnError)
	}

	RegisterFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
