package addr

import (
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Option names a chain configuration field.
type Option string

// Chain options.
const (
	OptionHRP          Option = "hrp"
	OptionNetVer       Option = "net_ver"
	OptionWitnessVer   Option = "witness_ver"
	OptionSkipChecksum Option = "skip_checksum"
)

// ChainConfig carries every option a chain may read. Each chain declares
// which of them it requires; the rest are ignored.
type ChainConfig struct {
	HRP          string // Bech32 human-readable part
	NetVer       []byte // Base58Check version prefix
	WitnessVer   byte   // Segwit witness version
	SkipChecksum bool   // Render EVM addresses without EIP-55 casing
}

// requiredOptions lists the options each chain cannot run without.
var requiredOptions = map[Chain][]Option{
	ChainP2PKH:    {OptionNetVer},
	ChainP2WPKH:   {OptionHRP},
	ChainAtom:     {OptionHRP},
	ChainKlingnet: {OptionHRP},
}

// RequiredOptions returns the options chain requires.
func RequiredOptions(chain Chain) []Option {
	return append([]Option(nil), requiredOptions[chain]...)
}

// DefaultConfig returns the mainnet options for chain.
func DefaultConfig(chain Chain) ChainConfig {
	switch chain {
	case ChainP2PKH:
		return ChainConfig{NetVer: []byte{0x00}}
	case ChainP2WPKH:
		return ChainConfig{HRP: "bc"}
	case ChainAtom:
		return ChainConfig{HRP: "cosmos"}
	case ChainKlingnet:
		return ChainConfig{HRP: "kgx"}
	default:
		return ChainConfig{}
	}
}

// Merge returns c with every zero field filled from base.
func (c ChainConfig) Merge(base ChainConfig) ChainConfig {
	if c.HRP == "" {
		c.HRP = base.HRP
	}
	if len(c.NetVer) == 0 {
		c.NetVer = base.NetVer
	}
	if c.WitnessVer == 0 {
		c.WitnessVer = base.WitnessVer
	}
	if !c.SkipChecksum {
		c.SkipChecksum = base.SkipChecksum
	}
	return c
}

func (c ChainConfig) has(opt Option) bool {
	switch opt {
	case OptionHRP:
		return c.HRP != ""
	case OptionNetVer:
		return len(c.NetVer) > 0
	case OptionWitnessVer, OptionSkipChecksum:
		return true
	default:
		return false
	}
}

// checkRequired fails with ErrMissingOption naming the first absent option.
func checkRequired(chain Chain, cfg ChainConfig) error {
	for _, opt := range requiredOptions[chain] {
		if !cfg.has(opt) {
			return kiterr.WithSuggestion(
				kiterr.WithDetails(kiterr.ErrMissingOption, map[string]string{
					"chain":  string(chain),
					"option": string(opt),
				}),
				"set chains."+string(chain)+"."+string(opt)+" in the config file",
			)
		}
	}
	return nil
}
