package ecc

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1 key encodings.
const (
	Secp256k1CompressedLen   = 33
	Secp256k1UncompressedLen = 65
	secp256k1RawPointLen     = 64
)

// Secp256k1PublicKey is a public key on secp256k1.
type Secp256k1PublicKey struct {
	key *secp256k1.PublicKey
}

// NewSecp256k1PublicKey parses a compressed (33 bytes), uncompressed
// (65 bytes) or prefix-less X||Y (64 bytes) secp256k1 public key.
func NewSecp256k1PublicKey(raw []byte) (*Secp256k1PublicKey, error) {
	switch len(raw) {
	case Secp256k1CompressedLen, Secp256k1UncompressedLen:
	case secp256k1RawPointLen:
		prefixed := make([]byte, 0, Secp256k1UncompressedLen)
		prefixed = append(prefixed, secp256k1.PubKeyFormatUncompressed)
		raw = append(prefixed, raw...)
	default:
		return nil, invalidKey(CurveSecp256k1, lengthReason(len(raw)), nil)
	}

	key, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, invalidKey(CurveSecp256k1, "point is not on curve", err)
	}
	return &Secp256k1PublicKey{key: key}, nil
}

// Curve implements PublicKey.
func (*Secp256k1PublicKey) Curve() Curve {
	return CurveSecp256k1
}

// RawCompressed returns the 33-byte SEC1 compressed encoding.
func (k *Secp256k1PublicKey) RawCompressed() []byte {
	return k.key.SerializeCompressed()
}

// RawUncompressed returns the 65-byte SEC1 uncompressed encoding.
func (k *Secp256k1PublicKey) RawUncompressed() []byte {
	return k.key.SerializeUncompressed()
}

// Key exposes the underlying decred key.
func (k *Secp256k1PublicKey) Key() *secp256k1.PublicKey {
	return k.key
}
