package cli

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/config"
	"github.com/mrz1836/hdkit/pkg/addr"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// chainFlags are the per-invocation chain option overrides shared by
// commands that build an address codec.
type chainFlags struct {
	chain        string
	hrp          string
	netVer       string
	witnessVer   int
	skipChecksum bool
	bare         bool
}

func (f *chainFlags) register(cmd *cobra.Command, defaultChain string) {
	fl := cmd.Flags()
	fl.StringVarP(&f.chain, "chain", "c", defaultChain, "address chain: "+chainList())
	fl.StringVar(&f.hrp, "hrp", "", "bech32 human-readable part")
	fl.StringVar(&f.netVer, "net-ver", "", "base58check version prefix in hex, e.g. 00 or 6f")
	fl.IntVar(&f.witnessVer, "witness-ver", -1, "segwit witness version (0-16)")
	fl.BoolVar(&f.skipChecksum, "skip-checksum", false, "emit EVM addresses in lowercase")
	fl.BoolVar(&f.bare, "bare", false, "ignore built-in and configured chain defaults")
	_ = cmd.RegisterFlagCompletionFunc("chain", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strings.Split(chainList(), ", "), cobra.ShellCompDirectiveNoFileComp
	})
}

// codec resolves the chain and builds its codec. Flags override the
// configured options, which override built-in defaults.
func (f *chainFlags) codec(cfg *config.Config) (addr.Codec, error) {
	chain, err := addr.ParseChain(strings.ToLower(strings.TrimSpace(f.chain)))
	if err != nil {
		return nil, kiterr.WithSuggestion(err, "supported chains: "+chainList())
	}

	override := addr.ChainConfig{HRP: f.hrp, SkipChecksum: f.skipChecksum}
	if f.netVer != "" {
		v, err := hex.DecodeString(strings.TrimPrefix(f.netVer, "0x"))
		if err != nil || len(v) == 0 {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"net_ver": f.netVer})
		}
		override.NetVer = v
	}
	if f.witnessVer >= 0 {
		if f.witnessVer > 16 {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{
				"witness_ver": strconv.Itoa(f.witnessVer),
			})
		}
		override.WitnessVer = byte(f.witnessVer)
	}

	if !f.bare {
		base, err := cfg.ChainConfig(chain)
		if err != nil {
			return nil, err
		}
		override = override.Merge(base)
	}

	return addr.NewEncoder(chain, override)
}

func chainList() string {
	chains := addr.Chains()
	names := make([]string, len(chains))
	for i, c := range chains {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
