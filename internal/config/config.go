// Package config provides configuration management for hdkit.
package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/hdkit/internal/fileutil"
	"github.com/mrz1836/hdkit/pkg/addr"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version    int                      `yaml:"version" json:"version"`
	Home       string                   `yaml:"home" json:"home"`
	Derivation DerivationConfig         `yaml:"derivation" json:"derivation"`
	Mnemonic   MnemonicConfig           `yaml:"mnemonic" json:"mnemonic"`
	Chains     map[string]ChainOverride `yaml:"chains,omitempty" json:"chains,omitempty"`
	Output     OutputConfig             `yaml:"output" json:"output"`
	Logging    LoggingConfig            `yaml:"logging" json:"logging"`
}

// DerivationConfig defines derivation path settings.
type DerivationConfig struct {
	MaxDepth    int    `yaml:"max_depth" json:"max_depth"`
	DefaultPath string `yaml:"default_path" json:"default_path"`
}

// MnemonicConfig defines legacy mnemonic settings.
type MnemonicConfig struct {
	Language string `yaml:"language" json:"language"`
}

// ChainOverride replaces built-in address options for one chain.
// NetVer is hex, e.g. "00" or "1cb8".
type ChainOverride struct {
	HRP          string `yaml:"hrp,omitempty" json:"hrp,omitempty"`
	NetVer       string `yaml:"net_ver,omitempty" json:"net_ver,omitempty"`
	WitnessVer   int    `yaml:"witness_ver,omitempty" json:"witness_ver,omitempty"`
	SkipChecksum bool   `yaml:"skip_checksum,omitempty" json:"skip_checksum,omitempty"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Color         string `yaml:"color" json:"color"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Load reads configuration from the specified file. Missing keys keep
// their defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kiterr.WithDetails(kiterr.ErrConfigNotFound, map[string]string{"path": path})
		}
		return nil, kiterr.Wrap(err, "read config")
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, kiterr.WithCause(
			kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{"path": path}),
			err,
		)
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// Validate checks the configuration for values the CLI cannot use.
func (c *Config) Validate() error {
	if c.Derivation.MaxDepth < 1 || c.Derivation.MaxDepth > MaxDerivationDepth {
		return invalid("derivation.max_depth", strconv.Itoa(c.Derivation.MaxDepth))
	}

	switch c.Output.DefaultFormat {
	case "text", "json", "auto":
	default:
		return invalid("output.default_format", c.Output.DefaultFormat)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "off", "none", "error", "info", "debug":
	default:
		return invalid("logging.level", c.Logging.Level)
	}

	if strings.TrimSpace(c.Mnemonic.Language) == "" {
		return invalid("mnemonic.language", c.Mnemonic.Language)
	}

	for name := range c.Chains {
		chain, err := addr.ParseChain(name)
		if err != nil {
			return invalid("chains", name)
		}
		if _, err := c.ChainConfig(chain); err != nil {
			return err
		}
	}
	return nil
}

// ChainConfig returns the address options for chain: built-in defaults with
// any configured override applied on top.
func (c *Config) ChainConfig(chain addr.Chain) (addr.ChainConfig, error) {
	base := addr.DefaultConfig(chain)
	o, ok := c.Chains[string(chain)]
	if !ok {
		return base, nil
	}

	override := addr.ChainConfig{HRP: o.HRP, SkipChecksum: o.SkipChecksum}
	if o.NetVer != "" {
		v, err := hex.DecodeString(strings.TrimPrefix(o.NetVer, "0x"))
		if err != nil || len(v) == 0 {
			return addr.ChainConfig{}, invalid("chains."+string(chain)+".net_ver", o.NetVer)
		}
		override.NetVer = v
	}
	if o.WitnessVer < 0 || o.WitnessVer > 16 {
		return addr.ChainConfig{}, invalid("chains."+string(chain)+".witness_ver", strconv.Itoa(o.WitnessVer))
	}
	override.WitnessVer = byte(o.WitnessVer)

	return override.Merge(base), nil
}

// DefaultHome returns the default hdkit home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hdkit"
	}
	return filepath.Join(home, ".hdkit")
}

func invalid(key, value string) error {
	return kiterr.WithDetails(kiterr.ErrConfigInvalid, map[string]string{
		"key":   key,
		"value": value,
	})
}
