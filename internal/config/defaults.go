package config

// MaxDerivationDepth is the largest depth a BIP32 extended key can record.
const MaxDerivationDepth = 255

// DefaultDerivationPath is the path used by `hdkit derive` when none is given.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

// DefaultMnemonicLanguage makes the decoder detect the language per phrase.
const DefaultMnemonicLanguage = "auto"

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.hdkit",
		Derivation: DerivationConfig{
			MaxDepth:    MaxDerivationDepth,
			DefaultPath: DefaultDerivationPath,
		},
		Mnemonic: MnemonicConfig{
			Language: DefaultMnemonicLanguage,
		},
		Chains: map[string]ChainOverride{},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
		},
	}
}
