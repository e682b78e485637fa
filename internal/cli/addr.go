package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/output"
	"github.com/mrz1836/hdkit/pkg/addr"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// AddressResult is the output of `hdkit addr encode`.
type AddressResult struct {
	Chain     string `json:"chain"`
	Curve     string `json:"curve"`
	PublicKey string `json:"public_key"`
	Address   string `json:"address"`
}

// Text implements output.Texter.
func (r AddressResult) Text(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Address)
	return err
}

// DecodedAddress is the output of `hdkit addr decode`.
type DecodedAddress struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
	Payload string `json:"payload"`
}

// Text implements output.Texter.
func (r DecodedAddress) Text(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Payload)
	return err
}

// ChainInfo describes one supported chain.
type ChainInfo struct {
	Chain    string   `json:"chain"`
	Curve    string   `json:"curve"`
	Required []string `json:"required,omitempty"`
}

// ChainList is the output of `hdkit addr chains`.
type ChainList []ChainInfo

// Text implements output.Texter.
func (l ChainList) Text(w io.Writer) error {
	tbl := output.NewTable("CHAIN", "CURVE", "REQUIRED")
	for _, c := range l {
		tbl.AddRow(c.Chain, c.Curve, strings.Join(c.Required, ","))
	}
	return tbl.Render(w)
}

func (a *app) addrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Encode and decode chain addresses",
	}
	cmd.AddCommand(a.addrEncodeCmd(), a.addrDecodeCmd(), addrChainsCmd())
	return cmd
}

func (a *app) addrEncodeCmd() *cobra.Command {
	var flags chainFlags
	cmd := &cobra.Command{
		Use:   "encode <public-key-hex>",
		Short: "Encode a public key as an address",
		Long: `Encode a hex public key as an address for the selected chain.

The key is validated against the chain's curve first. secp256k1 chains
accept 33-byte compressed, 65-byte uncompressed, or 64-byte prefix-less
keys; ed25519 chains accept the 32-byte point.`,
		Example: `  hdkit addr encode --chain eth 03c41826497a000dd077b3becc10bea5765651c30c37e7bd63ed8562f919720126
  hdkit addr encode --chain p2pkh --net-ver 6f 03c418...0126
  hdkit addr encode --chain solana d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetCmdContext(cmd)

			codec, err := flags.codec(c.Config)
			if err != nil {
				return err
			}

			raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(args[0]), "0x"))
			if err != nil {
				return kiterr.WithCause(
					kiterr.WithDetails(kiterr.ErrInvalidPublicKey, map[string]string{"reason": "not hex"}),
					err,
				)
			}

			encoded, err := codec.EncodeKey(addr.RawKey(raw))
			if err != nil {
				return err
			}

			c.Logger.Component("addr").Debug("encoded %d-byte key for %s", len(raw), codec.Chain())
			return c.Fmt.Print(AddressResult{
				Chain:     codec.Chain().String(),
				Curve:     codec.Curve().String(),
				PublicKey: hex.EncodeToString(raw),
				Address:   encoded,
			})
		},
	}
	flags.register(cmd, "")
	_ = cmd.MarkFlagRequired("chain")
	return cmd
}

func (a *app) addrDecodeCmd() *cobra.Command {
	var flags chainFlags
	cmd := &cobra.Command{
		Use:   "decode <address>",
		Short: "Decode an address to the payload it commits to",
		Long: `Decode an address and print the hex payload it commits to: the key
hash for hash-based chains, the raw key for ed25519 chains.`,
		Example: `  hdkit addr decode --chain p2wpkh bc1q8xth0ykvqf542ht0prckzp9ykq9zvu83ha5wvd`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetCmdContext(cmd)

			codec, err := flags.codec(c.Config)
			if err != nil {
				return err
			}

			payload, err := codec.DecodeAddr(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			return c.Fmt.Print(DecodedAddress{
				Chain:   codec.Chain().String(),
				Address: args[0],
				Payload: hex.EncodeToString(payload),
			})
		},
	}
	flags.register(cmd, "")
	_ = cmd.MarkFlagRequired("chain")
	return cmd
}

func addrChainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List supported chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)

			var list ChainList
			for _, chain := range addr.Chains() {
				codec, err := addr.NewEncoder(chain, addr.DefaultConfig(chain))
				if err != nil {
					return err
				}
				info := ChainInfo{Chain: chain.String(), Curve: codec.Curve().String()}
				for _, opt := range addr.RequiredOptions(chain) {
					info.Required = append(info.Required, string(opt))
				}
				list = append(list, info)
			}
			return c.Fmt.Print(list)
		},
	}
}
