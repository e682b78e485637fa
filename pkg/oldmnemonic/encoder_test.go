package oldmnemonic

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

func TestEncode_Vectors(t *testing.T) {
	t.Parallel()

	e, err := NewEncoder(LanguageEnglish)
	require.NoError(t, err)

	tests := []struct {
		entropy  string
		mnemonic string
	}{
		{"acb740e454c3134901d7c8f16497cc1c", "powerful random nobody notice nothing important anyway look away hidden message over"},
		{strings.Repeat("00", 16), repeat("like like like", 4)},
		{strings.Repeat("ff", 16), repeat("fail husband howl", 4)},
		{strings.Repeat("0123456789abcdef", 4), repeat("pleasure patience practice maybe creep hang", 4)},
	}

	for _, tt := range tests {
		t.Run(tt.entropy, func(t *testing.T) {
			t.Parallel()
			raw, err := hex.DecodeString(tt.entropy)
			require.NoError(t, err)

			m, err := e.Encode(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.mnemonic, m.String())
		})
	}
}

func TestEncode_InvalidEntropy(t *testing.T) {
	t.Parallel()

	e, err := NewEncoder(LanguageEnglish)
	require.NoError(t, err)

	for _, n := range []int{0, 4, 15, 17, 20, 24, 31, 33, 64} {
		_, err := e.Encode(make([]byte, n))
		require.ErrorIs(t, err, kiterr.ErrInvalidEntropy, "length %d", n)
	}

	_, err = NewEncoder("klingon")
	require.ErrorIs(t, err, kiterr.ErrUnknownLanguage)
}

// TestRoundTrip checks decode(encode(x)) == x for random entropy.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	e, err := NewEncoder(LanguageEnglish)
	require.NoError(t, err)
	d, err := NewAutoDecoder()
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.SampledFrom([]int{16, 32}).Draw(rt, "size")
		entropy := rapid.SliceOfN(rapid.Byte(), size, size).Draw(rt, "entropy")

		m, err := e.Encode(entropy)
		if err != nil {
			rt.Fatalf("encode: %v", err)
		}
		if m.WordsCount() != size/4*3 {
			rt.Fatalf("got %d words for %d bytes", m.WordsCount(), size)
		}

		got, err := d.DecodeString(m.String())
		if err != nil {
			rt.Fatalf("decode %q: %v", m, err)
		}
		if hex.EncodeToString(got) != hex.EncodeToString(entropy) {
			rt.Fatalf("round trip: got %x want %x", got, entropy)
		}
	})
}

func TestMnemonic(t *testing.T) {
	t.Parallel()

	m := MnemonicFromString("  Like LIKE\n like ")
	assert.Equal(t, 3, m.WordsCount())
	assert.Equal(t, "like like like", m.String())

	words := m.Words()
	words[0] = "changed"
	assert.Equal(t, "like", m.Words()[0])

	pre := MnemonicFromWords([]string{" Like", "", "x"})
	assert.Equal(t, []string{"like", "", "x"}, pre.Words())

	composed := MnemonicFromWords([]string{"caf\u00e9"})
	assert.Equal(t, "cafe\u0301", composed.Words()[0])
}
