package bip32path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

func TestHardenedHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(1<<31), HardenedOffset)
	assert.False(t, IsHardenedIndex(0))
	assert.False(t, IsHardenedIndex(HardenedOffset-1))
	assert.True(t, IsHardenedIndex(HardenedOffset))
	assert.True(t, IsHardenedIndex(0xFFFFFFFF))

	assert.Equal(t, HardenedOffset+44, HardenIndex(44))
	assert.Equal(t, HardenedOffset+44, HardenIndex(HardenIndex(44)))
	assert.Equal(t, uint32(44), UnhardenIndex(HardenIndex(44)))
	assert.Equal(t, uint32(44), UnhardenIndex(44))
}

func TestElement(t *testing.T) {
	t.Parallel()

	t.Run("zero value is invalid", func(t *testing.T) {
		t.Parallel()
		var e Element
		assert.False(t, e.IsValid())
		assert.False(t, e.IsHardened())
		assert.Equal(t, "?", e.String())
		_, err := e.Index()
		require.ErrorIs(t, err, kiterr.ErrInvalidPathElement)
	})

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		e := NewElement(7)
		assert.True(t, e.IsValid())
		assert.False(t, e.IsHardened())
		assert.Equal(t, "7", e.String())
	})

	t.Run("hardened", func(t *testing.T) {
		t.Parallel()
		e := NewElement(HardenIndex(60))
		assert.True(t, e.IsHardened())
		assert.Equal(t, "60'", e.String())
	})
}

func TestPath_Accessors(t *testing.T) {
	t.Parallel()

	p := NewPath(HardenIndex(44), HardenIndex(0), 5)
	require.Equal(t, 3, p.Len())
	assert.True(t, p.At(0).IsHardened())
	assert.False(t, p.At(2).IsHardened())
	assert.Equal(t, "m/44'/0'/5", p.String())

	var seen []uint32
	for i, e := range p.All() {
		idx, err := e.Index()
		require.NoError(t, err)
		assert.Equal(t, p.At(i), e)
		seen = append(seen, idx)
	}
	assert.Equal(t, []uint32{HardenIndex(44), HardenIndex(0), 5}, seen)

	count := 0
	for range p.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestPath_ElementsIsCopy(t *testing.T) {
	t.Parallel()

	p := NewPath(1, 2, 3)
	elems := p.Elements()
	elems[0] = InvalidElement()
	assert.True(t, p.IsValid())

	q := FromElements(elems...)
	elems[1] = InvalidElement()
	assert.Equal(t, []int{0}, q.InvalidPositions())
}

func TestPath_Append(t *testing.T) {
	t.Parallel()

	base := Parse("m/44'/60'/0'")
	child := base.Append(NewElement(0), NewElement(7))
	assert.Equal(t, 3, base.Len())
	assert.Equal(t, 5, child.Len())
	assert.Equal(t, "m/44'/60'/0'/0/7", child.String())

	bad := base.Append(InvalidElement())
	assert.False(t, bad.IsValid())
	assert.True(t, base.IsValid())
}

func TestPath_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, Parse("m/44'/0").Equal(Parse("44p/0")))
	assert.False(t, Parse("m/44'/0").Equal(Parse("m/44/0")))
	assert.False(t, Parse("m/0").Equal(Parse("m/0/0")))
	assert.True(t, Parse("").Equal(Path{}))
}

func TestPath_StringInvalid(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "m/44'/?/0", Parse("m/44'/abc/0").String())
	assert.Equal(t, "m", Parse("").String())
}
