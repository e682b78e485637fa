package oldmnemonic

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Mnemonic is an ordered sequence of normalized words.
type Mnemonic struct {
	words []string
}

// MnemonicFromString splits text on whitespace. The text is NFKD-normalized
// and lower-cased first, so compatibility characters that decompose into
// spaces also separate words.
func MnemonicFromString(s string) Mnemonic {
	return Mnemonic{words: strings.Fields(normalizeText(s))}
}

// MnemonicFromWords takes pre-tokenized words. Each word is normalized like
// MnemonicFromString does; empty entries are kept so the count is preserved.
func MnemonicFromWords(words []string) Mnemonic {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = normalizeWord(w)
	}
	return Mnemonic{words: out}
}

// Words returns a copy of the words.
func (m Mnemonic) Words() []string {
	return append([]string(nil), m.words...)
}

// WordsCount returns the number of words.
func (m Mnemonic) WordsCount() int {
	return len(m.words)
}

// String joins the words with single spaces.
func (m Mnemonic) String() string {
	return strings.Join(m.words, " ")
}

func normalizeText(s string) string {
	return strings.ToLower(norm.NFKD.String(s))
}

func normalizeWord(w string) string {
	return strings.TrimSpace(normalizeText(w))
}
