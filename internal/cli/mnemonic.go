package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/hdkit/internal/config"
	"github.com/mrz1836/hdkit/internal/output"
	"github.com/mrz1836/hdkit/internal/secmem"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
	"github.com/mrz1836/hdkit/pkg/oldmnemonic"
)

// DecodedMnemonic is the output of `hdkit mnemonic decode`.
type DecodedMnemonic struct {
	Language  string `json:"language"`
	WordCount int    `json:"word_count"`
	Entropy   string `json:"entropy"`
}

// Text implements output.Texter.
func (r DecodedMnemonic) Text(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Entropy)
	return err
}

// EncodedMnemonic is the output of `hdkit mnemonic encode`.
type EncodedMnemonic struct {
	Language string   `json:"language"`
	Words    []string `json:"words"`
}

// Text implements output.Texter.
func (r EncodedMnemonic) Text(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(r.Words, " "))
	return err
}

// LanguageInfo describes one registered legacy word list.
type LanguageInfo struct {
	Language string `json:"language"`
	Words    int    `json:"words"`
}

// LanguageList is the output of `hdkit mnemonic languages`.
type LanguageList []LanguageInfo

// Text implements output.Texter.
func (l LanguageList) Text(w io.Writer) error {
	tbl := output.NewTable("LANGUAGE", "WORDS")
	for _, li := range l {
		tbl.AddRow(li.Language, strconv.Itoa(li.Words))
	}
	return tbl.Render(w)
}

func (a *app) mnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Decode and encode legacy Electrum mnemonics",
		Long: `Work with legacy (pre-2.0) Electrum mnemonics.

These phrases carry no checksum: every triple of words maps to 32 bits of
entropy. 12 words yield 16 bytes and 24 words yield 32 bytes.`,
	}
	cmd.AddCommand(a.mnemonicDecodeCmd(), a.mnemonicEncodeCmd(), mnemonicLanguagesCmd())
	return cmd
}

func (a *app) mnemonicDecodeCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a legacy mnemonic read from stdin",
		Long: `Decode a legacy mnemonic to its entropy. The phrase is read from stdin,
or prompted for with echo disabled on a terminal.

With --lang auto (the default) the language is detected from the words and
the command fails when no list, or more than one list, holds every word.`,
		Example: `  echo "powerful random nobody notice nothing important anyway look away hidden message over" | hdkit mnemonic decode
  hdkit mnemonic decode --lang english -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)
			log := c.Logger.Component("mnemonic")

			phrase, err := a.readSecret(cmd, "Enter legacy mnemonic: ")
			if err != nil {
				return err
			}

			dec, err := newLegacyDecoder(pickLanguage(lang, c.Config))
			if err != nil {
				return err
			}

			m := oldmnemonic.MnemonicFromString(phrase)
			entropy, err := dec.Decode(m)
			if err != nil {
				log.Debug("decode failed: %s", kiterr.Code(err))
				return err
			}
			wl, err := dec.DetectLanguage(m)
			if err != nil {
				return err
			}

			log.Debug("decoded %d words as %s", m.WordsCount(), wl.Language())
			return c.Fmt.Print(DecodedMnemonic{
				Language:  wl.Language().String(),
				WordCount: m.WordsCount(),
				Entropy:   hex.EncodeToString(entropy),
			})
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "word list language, or auto")
	return cmd
}

func (a *app) mnemonicEncodeCmd() *cobra.Command {
	var (
		lang   string
		random bool
		words  int
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode hex entropy read from stdin as a legacy mnemonic",
		Long: `Encode 16 or 32 bytes of hex entropy as a 12 or 24 word legacy
mnemonic. The entropy is read from stdin, or drawn from the system random
source with --random.`,
		Example: `  echo acb740e454c3134901d7c8f16497cc1c | hdkit mnemonic encode
  hdkit mnemonic encode --random --words 24`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)

			buf, err := a.readEntropy(cmd, random, words)
			if err != nil {
				return err
			}
			defer buf.Wipe()

			l := pickLanguage(lang, c.Config)
			if l == "" {
				l = oldmnemonic.LanguageEnglish
			}
			enc, err := oldmnemonic.NewEncoder(l)
			if err != nil {
				return err
			}
			m, err := enc.Encode(buf.Bytes())
			if err != nil {
				return err
			}

			return c.Fmt.Print(EncodedMnemonic{Language: l.String(), Words: m.Words()})
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "word list language")
	cmd.Flags().BoolVar(&random, "random", false, "generate fresh entropy instead of reading stdin")
	cmd.Flags().IntVar(&words, "words", oldmnemonic.WordCount12, "phrase length for --random: 12 or 24")
	return cmd
}

// readEntropy returns random entropy sized for words, or hex entropy read
// from stdin, in locked memory.
func (a *app) readEntropy(cmd *cobra.Command, random bool, words int) (*secmem.Buffer, error) {
	if random {
		if words != oldmnemonic.WordCount12 && words != oldmnemonic.WordCount24 {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidWordCount, map[string]string{
				"count": strconv.Itoa(words),
			})
		}
		buf, err := secmem.Random(words / 3 * 4)
		if err != nil {
			return nil, kiterr.WithCause(kiterr.ErrGeneral, err)
		}
		return buf, nil
	}

	input, err := a.readSecret(cmd, "Enter entropy (hex): ")
	if err != nil {
		return nil, err
	}
	entropy, err := hex.DecodeString(strings.TrimPrefix(input, "0x"))
	if err != nil {
		return nil, kiterr.WithCause(kiterr.ErrInvalidEntropy, err)
	}
	return secmem.Copy(entropy), nil
}

func mnemonicLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List registered legacy word lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := GetCmdContext(cmd)
			reg := oldmnemonic.DefaultRegistry()

			var list LanguageList
			for _, lang := range reg.Languages() {
				wl, err := reg.Get(lang)
				if err != nil {
					return err
				}
				list = append(list, LanguageInfo{Language: lang.String(), Words: wl.Len()})
			}
			return c.Fmt.Print(list)
		},
	}
}

// pickLanguage returns the flag value, falling back to the configured
// language. "" means auto-detect.
func pickLanguage(flag string, cfg *config.Config) oldmnemonic.Language {
	name := flag
	if name == "" {
		name = cfg.Mnemonic.Language
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == config.DefaultMnemonicLanguage {
		return ""
	}
	return oldmnemonic.Language(name)
}

func newLegacyDecoder(lang oldmnemonic.Language) (*oldmnemonic.Decoder, error) {
	if lang == "" {
		return oldmnemonic.NewAutoDecoder()
	}
	return oldmnemonic.NewDecoder(lang)
}
