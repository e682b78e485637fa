package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/secmem"
	"github.com/mrz1836/hdkit/internal/wallet"
	"github.com/mrz1836/hdkit/pkg/bip32path"
)

// XpubResult is the output of `hdkit derive --xpub-only`.
type XpubResult struct {
	Path string `json:"path"`
	Xpub string `json:"xpub"`
}

// Text implements output.Texter.
func (r XpubResult) Text(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Xpub)
	return err
}

// derivedAddress wraps wallet.Address with a text rendering.
type derivedAddress struct {
	*wallet.Address
}

// Text implements output.Texter.
func (r derivedAddress) Text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s  %s\n", r.Path, r.Address.Address)
	return err
}

// derivedList is the output of `hdkit derive --count N`.
type derivedList []*wallet.Address

// Text implements output.Texter.
func (l derivedList) Text(w io.Writer) error {
	for _, a := range l {
		if err := (derivedAddress{a}).Text(w); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) deriveCmd() *cobra.Command {
	var (
		flags         chainFlags
		pathArg       string
		fromXpub      string
		askPassphrase bool
		xpubOnly      bool
		count         int
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an address from a BIP39 mnemonic or an xpub",
		Long: `Walk a BIP32 path and encode the resulting public key.

The BIP39 mnemonic is read from stdin, or prompted for with echo disabled on
a terminal. With --xpub the walk starts from an extended public key instead,
and the path is relative to it and may not contain hardened elements.

With --count N the last path element is the first of N consecutive indices.

Only secp256k1 chains can be derived this way; ed25519 chains fail with a
wrong-curve error.`,
		Example: `  echo "abandon ... about" | hdkit derive --chain eth --path "m/44'/60'/0'/0/0"
  echo "abandon ... about" | hdkit derive --xpub-only --path "m/44'/60'/0'"
  hdkit derive --chain eth --xpub xpub6D... --path m/0/1
  echo "abandon ... about" | hdkit derive --chain p2wpkh --path "m/84'/0'/0'/0/0" --count 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)
			log := c.Logger.Component("derive")

			p := pathArg
			if p == "" {
				p = c.Config.Derivation.DefaultPath
			}
			path := bip32path.Parse(p)

			var (
				d   *wallet.Deriver
				err error
			)
			if fromXpub != "" {
				d, err = wallet.NewDeriverFromXpub(fromXpub, c.Config.Derivation.MaxDepth)
			} else {
				d, err = a.seedDeriver(cmd, askPassphrase, c.Config.Derivation.MaxDepth)
			}
			if err != nil {
				return err
			}

			if xpubOnly {
				xpub, err := d.AccountXpub(path)
				if err != nil {
					return err
				}
				return c.Fmt.Print(XpubResult{Path: path.String(), Xpub: xpub})
			}

			codec, err := flags.codec(c.Config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("count") {
				list, err := d.DeriveRange(path, count, codec)
				if err != nil {
					return err
				}
				log.Debug("derived %d %s addresses from %s", len(list), codec.Chain(), path)
				return c.Fmt.Print(derivedList(list))
			}

			res, err := d.DeriveAddress(path, codec)
			if err != nil {
				return err
			}

			log.Debug("derived %s address at %s", res.Chain, res.Path)
			return c.Fmt.Print(derivedAddress{res})
		},
	}

	flags.register(cmd, "eth")
	fl := cmd.Flags()
	fl.StringVarP(&pathArg, "path", "p", "", "derivation path (default from config)")
	fl.StringVar(&fromXpub, "xpub", "", "derive from this extended public key")
	fl.BoolVar(&askPassphrase, "passphrase", false, "read a BIP39 passphrase after the mnemonic")
	fl.BoolVar(&xpubOnly, "xpub-only", false, "print the extended public key at the path")
	fl.IntVarP(&count, "count", "n", 1, "number of consecutive addresses to derive")
	cmd.MarkFlagsMutuallyExclusive("xpub", "passphrase")
	cmd.MarkFlagsMutuallyExclusive("xpub-only", "count")

	return cmd
}

// seedDeriver reads a BIP39 mnemonic (and optional passphrase) and roots a
// deriver at its seed.
func (a *app) seedDeriver(cmd *cobra.Command, askPassphrase bool, maxDepth int) (*wallet.Deriver, error) {
	phrase, err := a.readSecret(cmd, "Enter BIP39 mnemonic: ")
	if err != nil {
		return nil, err
	}

	var passphrase string
	if askPassphrase {
		if passphrase, err = a.readSecret(cmd, "Enter passphrase: "); err != nil {
			return nil, err
		}
	}

	seed, err := wallet.MnemonicToSeed(phrase, passphrase)
	if err != nil {
		return nil, err
	}
	buf := secmem.Copy(seed)
	defer buf.Wipe()

	return wallet.NewDeriver(buf.Bytes(), maxDepth)
}
