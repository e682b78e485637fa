package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "HDKIT_HOME"
	EnvOutputFormat = "HDKIT_OUTPUT_FORMAT"
	EnvVerbose      = "HDKIT_VERBOSE"
	EnvLogLevel     = "HDKIT_LOG_LEVEL"
	EnvLogFile      = "HDKIT_LOG_FILE"
	EnvMnemonicLang = "HDKIT_MNEMONIC_LANG"
	EnvMaxDepth     = "HDKIT_MAX_DEPTH"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}

	if v := os.Getenv(EnvMnemonicLang); v != "" {
		cfg.Mnemonic.Language = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvMaxDepth); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			cfg.Derivation.MaxDepth = depth
		}
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
