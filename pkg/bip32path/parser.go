package bip32path

import (
	"strconv"
	"strings"
)

const (
	masterChar = "m"
	separator  = "/"
)

// hardenedMarkers are the only accepted hardened suffixes.
var hardenedMarkers = [...]string{"'", "p"}

// Parse reads a derivation path. A leading "m" segment and one trailing
// "/" are accepted and dropped. Parse never fails: unreadable segments
// become invalid elements, see Path.IsValid and Path.InvalidPositions.
func Parse(path string) Path {
	path = strings.TrimSuffix(path, separator)
	if path == "" {
		return Path{}
	}

	segments := strings.Split(path, separator)
	if segments[0] == masterChar {
		segments = segments[1:]
	}

	elems := make([]Element, len(segments))
	for i, seg := range segments {
		elems[i] = ParseElem(seg)
	}
	return Path{elems: elems}
}

// ParseElem reads a single path segment such as "44'", "0p" or "7".
// Surrounding whitespace is ignored. The index must be plain decimal digits;
// plain indices must fit in 32 bits and hardened ones below 2^31.
func ParseElem(segment string) Element {
	segment = strings.TrimSpace(segment)

	hardened := false
	for _, marker := range hardenedMarkers {
		if strings.HasSuffix(segment, marker) {
			segment = strings.TrimSuffix(segment, marker)
			hardened = true
			break
		}
	}

	if !isDigits(segment) {
		return InvalidElement()
	}

	value, err := strconv.ParseUint(segment, 10, 32)
	if err != nil {
		return InvalidElement()
	}

	index := uint32(value)
	if !hardened {
		return NewElement(index)
	}
	if IsHardenedIndex(index) {
		return InvalidElement()
	}
	return NewElement(HardenIndex(index))
}

// isDigits reports whether s is non-empty and only ASCII decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
