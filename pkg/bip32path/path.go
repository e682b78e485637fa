// Package bip32path models BIP32 derivation paths such as m/44'/60'/0'/0/0.
//
// Parsing never fails outright. Segments that cannot be read as an index
// become invalid elements, so a caller can parse a batch of candidate paths
// and report every bad position at once. Reading the numeric value of an
// invalid element returns ErrInvalidPathElement.
package bip32path

import (
	"iter"
	"slices"
	"strconv"
	"strings"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Element is a single path component. The zero value is invalid.
type Element struct {
	index uint32
	valid bool
}

// NewElement returns a valid element holding index.
func NewElement(index uint32) Element {
	return Element{index: index, valid: true}
}

// InvalidElement returns an element that failed to parse.
func InvalidElement() Element {
	return Element{}
}

// IsValid reports whether the element holds an index.
func (e Element) IsValid() bool {
	return e.valid
}

// IsHardened reports whether the element is valid and in the hardened range.
func (e Element) IsHardened() bool {
	return e.valid && IsHardenedIndex(e.index)
}

// Index returns the raw index, including the hardened offset.
func (e Element) Index() (uint32, error) {
	if !e.valid {
		return 0, kiterr.ErrInvalidPathElement
	}
	return e.index, nil
}

// String renders the element the way it would appear in a path.
func (e Element) String() string {
	if !e.valid {
		return "?"
	}
	if IsHardenedIndex(e.index) {
		return strconv.FormatUint(uint64(UnhardenIndex(e.index)), 10) + "'"
	}
	return strconv.FormatUint(uint64(e.index), 10)
}

// Path is an ordered sequence of elements. Paths are values; methods that
// extend a path return a new one.
type Path struct {
	elems []Element
}

// NewPath builds a valid path from raw indices.
func NewPath(indices ...uint32) Path {
	elems := make([]Element, len(indices))
	for i, idx := range indices {
		elems[i] = NewElement(idx)
	}
	return Path{elems: elems}
}

// FromElements builds a path from already-parsed elements.
func FromElements(elems ...Element) Path {
	return Path{elems: slices.Clone(elems)}
}

// Len returns the number of elements.
func (p Path) Len() int {
	return len(p.elems)
}

// At returns the element at position i. It panics when i is out of range,
// like a slice index.
func (p Path) At(i int) Element {
	return p.elems[i]
}

// Elements returns a copy of the elements in order.
func (p Path) Elements() []Element {
	return slices.Clone(p.elems)
}

// All iterates over the elements with their positions.
func (p Path) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, e := range p.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// IsValid reports whether every element is valid. An empty path is valid.
func (p Path) IsValid() bool {
	for _, e := range p.elems {
		if !e.valid {
			return false
		}
	}
	return true
}

// InvalidPositions returns the zero-based positions of invalid elements.
func (p Path) InvalidPositions() []int {
	var out []int
	for i, e := range p.elems {
		if !e.valid {
			out = append(out, i)
		}
	}
	return out
}

// ToList returns the raw indices. It fails on the first invalid element.
func (p Path) ToList() ([]uint32, error) {
	out := make([]uint32, len(p.elems))
	for i, e := range p.elems {
		if !e.valid {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidPathElement, map[string]string{
				"position": strconv.Itoa(i),
			})
		}
		out[i] = e.index
	}
	return out, nil
}

// Append returns a new path with elems added at the end.
func (p Path) Append(elems ...Element) Path {
	out := make([]Element, 0, len(p.elems)+len(elems))
	out = append(out, p.elems...)
	out = append(out, elems...)
	return Path{elems: out}
}

// Equal reports whether both paths hold the same elements in the same order.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.elems, other.elems)
}

// String renders the path with a leading "m", e.g. m/44'/0'/0'/0/0.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString(masterChar)
	for _, e := range p.elems {
		sb.WriteByte('/')
		sb.WriteString(e.String())
	}
	return sb.String()
}
