package bip32path

// HardenedOffset is the first hardened child index (2^31).
const HardenedOffset uint32 = 0x80000000

// IsHardenedIndex reports whether index lies in the hardened range.
func IsHardenedIndex(index uint32) bool {
	return index >= HardenedOffset
}

// HardenIndex returns the hardened form of index. Already-hardened indices
// are returned unchanged.
func HardenIndex(index uint32) uint32 {
	return index | HardenedOffset
}

// UnhardenIndex strips the hardened bit from index.
func UnhardenIndex(index uint32) uint32 {
	return index &^ HardenedOffset
}
