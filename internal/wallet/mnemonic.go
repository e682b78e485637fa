// Package wallet turns BIP39 phrases into seeds and walks BIP32 paths to
// the public keys the address encoders consume.
package wallet

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// MaxTypoDistance is the largest edit distance reported as a suggestion.
const MaxTypoDistance = 2

// NormalizeMnemonicInput lowercases a pasted phrase, strips list markers and
// commas, and collapses whitespace.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// ValidateMnemonic checks word count, words, and checksum of a BIP39 phrase.
func ValidateMnemonic(mnemonic string) error {
	normalized := NormalizeMnemonicInput(mnemonic)
	words := strings.Fields(normalized)

	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return kiterr.WithDetails(kiterr.ErrInvalidWordCount, map[string]string{
			"count": itoa(len(words)),
		})
	}

	for i, w := range words {
		if !IsValidWord(w) {
			err := kiterr.WithDetails(kiterr.ErrUnknownWord, map[string]string{
				"word":     w,
				"position": itoa(i + 1),
				"language": "bip39-english",
			})
			if s := SuggestWord(w); s != "" {
				err = kiterr.WithSuggestion(err, `did you mean "`+s+`"?`)
			}
			return err
		}
	}

	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		return kiterr.WithCause(kiterr.ErrInvalidChecksum, err)
	}
	return nil
}

// MnemonicToSeed validates a BIP39 phrase and stretches it to a 64-byte
// seed. The caller should zero the seed after use.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.NewSeed(NormalizeMnemonicInput(mnemonic), passphrase), nil
}

// IsValidWord reports whether word is in the BIP39 English list.
func IsValidWord(word string) bool {
	_, ok := bip39.GetWordIndex(strings.ToLower(word))
	return ok
}

// SuggestWord returns the closest BIP39 word within MaxTypoDistance, or "".
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	best, bestDist := "", math.MaxInt
	for _, word := range bip39.GetWordList() {
		d := levenshtein.ComputeDistance(input, word)
		if d == 0 {
			return word
		}
		if d < bestDist {
			best, bestDist = word, d
		}
	}

	if bestDist <= MaxTypoDistance {
		return best
	}
	return ""
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for ; n > 0; n /= 10 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
	}
	return string(digits)
}
