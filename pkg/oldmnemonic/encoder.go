package oldmnemonic

import (
	"encoding/binary"
	"strconv"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Encoder turns entropy into a legacy phrase. It is the inverse of Decoder.
type Encoder struct {
	list *WordList
}

// NewEncoder returns an encoder for lang.
func NewEncoder(lang Language, opts ...Option) (*Encoder, error) {
	o := buildOptions(opts)
	wl, err := o.registry.Get(lang)
	if err != nil {
		return nil, err
	}
	return &Encoder{list: wl}, nil
}

// Encode accepts 16 or 32 bytes of entropy and returns 12 or 24 words.
func (e *Encoder) Encode(entropy []byte) (Mnemonic, error) {
	wordCount := len(entropy) / bytesPerChunk * wordsPerChunk
	if len(entropy)%bytesPerChunk != 0 || (wordCount != WordCount12 && wordCount != WordCount24) {
		return Mnemonic{}, kiterr.WithDetails(kiterr.ErrInvalidEntropy, map[string]string{
			"length": strconv.Itoa(len(entropy)),
		})
	}

	n := uint32(e.list.Len())
	words := make([]string, 0, wordCount)
	for i := 0; i < len(entropy); i += bytesPerChunk {
		x := binary.BigEndian.Uint32(entropy[i:])
		w1 := x % n
		w2 := (x/n + w1) % n
		w3 := (x/n/n + w2) % n
		words = append(words, e.list.words[w1], e.list.words[w2], e.list.words[w3])
	}
	return Mnemonic{words: words}, nil
}
