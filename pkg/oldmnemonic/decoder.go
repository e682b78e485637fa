// Package oldmnemonic decodes the legacy Electrum (v1) mnemonic scheme.
//
// Every three words carry one 32-bit big-endian chunk of entropy, computed
// from their positions p1, p2, p3 in an N-word list as
//
//	p1 + N*((p2-p1) mod N) + N*N*((p3-p2) mod N)
//
// The scheme has no checksum. Any phrase of a valid length whose words are
// all in the list decodes to some entropy, so a mistyped but valid word is
// not detected here.
package oldmnemonic

import (
	"encoding/binary"
	"math"
	"slices"
	"strconv"
	"strings"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Word counts the legacy scheme defines.
const (
	WordCount12 = 12
	WordCount24 = 24
)

const (
	wordsPerChunk = 3
	bytesPerChunk = 4
)

// ValidWordCounts returns the accepted phrase lengths.
func ValidWordCounts() []int {
	return []int{WordCount12, WordCount24}
}

// Option configures a Decoder or Encoder.
type Option func(*options)

type options struct {
	registry *Registry
}

// WithRegistry replaces the default registry of word lists.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

func buildOptions(opts []Option) options {
	o := options{registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decoder turns legacy phrases into entropy.
type Decoder struct {
	list  *WordList   // fixed language; nil when auto-detecting
	lists []*WordList // candidates for auto-detection
}

// NewDecoder returns a decoder bound to lang. It fails when the language is
// not registered or its word list does not load.
func NewDecoder(lang Language, opts ...Option) (*Decoder, error) {
	o := buildOptions(opts)
	wl, err := o.registry.Get(lang)
	if err != nil {
		return nil, err
	}
	return &Decoder{list: wl}, nil
}

// NewAutoDecoder returns a decoder that picks the language per phrase from
// every registered list.
func NewAutoDecoder(opts ...Option) (*Decoder, error) {
	o := buildOptions(opts)
	lists, err := o.registry.all()
	if err != nil {
		return nil, err
	}
	return &Decoder{lists: lists}, nil
}

// Language returns the fixed language, or "" for an auto-detecting decoder.
func (d *Decoder) Language() Language {
	if d.list == nil {
		return ""
	}
	return d.list.Language()
}

// DecodeString tokenizes s and decodes it.
func (d *Decoder) DecodeString(s string) ([]byte, error) {
	return d.Decode(MnemonicFromString(s))
}

// Decode returns wordCount/3*4 bytes of entropy.
func (d *Decoder) Decode(m Mnemonic) ([]byte, error) {
	if !slices.Contains(ValidWordCounts(), m.WordsCount()) {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidWordCount, map[string]string{
			"count": strconv.Itoa(m.WordsCount()),
		})
	}

	wl, err := d.DetectLanguage(m)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, m.WordsCount()/wordsPerChunk*bytesPerChunk)
	for i := 0; i < m.WordsCount(); i += wordsPerChunk {
		chunk, err := wordsToChunk(wl, m.words, i)
		if err != nil {
			return nil, err
		}
		out = binary.BigEndian.AppendUint32(out, chunk)
	}
	return out, nil
}

// DetectLanguage returns the word list m is written in. A fixed decoder
// returns its own list. An auto decoder needs exactly one list to hold
// every word.
func (d *Decoder) DetectLanguage(m Mnemonic) (*WordList, error) {
	if d.list != nil {
		return d.list, nil
	}

	var matches []*WordList
	for _, wl := range d.lists {
		if wl.ContainsAll(m.words) {
			matches = append(matches, wl)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, kiterr.WithDetails(kiterr.ErrLanguageNotFound, map[string]string{
			"candidates": strconv.Itoa(len(d.lists)),
		})
	default:
		names := make([]string, len(matches))
		for i, wl := range matches {
			names[i] = string(wl.Language())
		}
		return nil, kiterr.WithDetails(kiterr.ErrLanguageAmbiguous, map[string]string{
			"languages": strings.Join(names, ","),
		})
	}
}

// wordsToChunk decodes words[i:i+3] into one 32-bit value.
func wordsToChunk(wl *WordList, words []string, i int) (uint32, error) {
	n := uint64(wl.Len())

	var p [wordsPerChunk]uint64
	for j := range p {
		idx, ok := wl.Index(words[i+j])
		if !ok {
			return 0, unknownWord(wl, words[i+j], i+j)
		}
		p[j] = uint64(idx)
	}

	v := p[0] + n*((p[1]+n-p[0])%n) + n*n*((p[2]+n-p[1])%n)
	if v > math.MaxUint32 {
		return 0, kiterr.WithDetails(kiterr.ErrChunkOverflow, map[string]string{
			"words": strings.Join(words[i:i+wordsPerChunk], " "),
		})
	}
	return uint32(v), nil
}

func unknownWord(wl *WordList, word string, pos int) error {
	err := kiterr.WithDetails(kiterr.ErrUnknownWord, map[string]string{
		"word":     word,
		"position": strconv.Itoa(pos + 1),
		"language": string(wl.Language()),
	})
	if s := SuggestWord(wl, word); s != "" {
		err = kiterr.WithSuggestion(err, "did you mean "+strconv.Quote(s)+"?")
	}
	return err
}
