package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding (console, json).
	Format string `mapstructure:"format" default:"console"`
	// File is an optional log file written in addition to stderr.
	File string `mapstructure:"file" default:""`
}
