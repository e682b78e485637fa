// Package crypto collects the hash primitives used by the address encoders.
package crypto

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
	//nolint:gosec,staticcheck // G507,SA1019: RIPEMD160 required by Bitcoin-style addresses
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Hash160 computes RIPEMD160(SHA256(data)), the 20-byte key hash used by
// P2PKH, P2WPKH and Cosmos-style addresses.
//
//nolint:gosec // G406: RIPEMD160 usage required by address format
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// Keccak256 computes the legacy Keccak-256 hash used by EVM chains.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Blake3 computes the 32-byte BLAKE3 digest of data.
func Blake3(data []byte) [32]byte {
	return blake3.Sum256(data)
}
