package ecc

import (
	"bytes"

	"filippo.io/edwards25519"
)

// Ed25519KeyLen is the size of an encoded ed25519 public key.
const Ed25519KeyLen = 32

// ed25519KeyPrefix marks the 33-byte prefixed form some HD libraries emit.
const ed25519KeyPrefix = 0x00

// Ed25519PublicKey is a public key on edwards25519.
type Ed25519PublicKey struct {
	raw [Ed25519KeyLen]byte
}

// NewEd25519PublicKey parses a 32-byte ed25519 public key. The 33-byte form
// with a leading 0x00 byte is also accepted.
func NewEd25519PublicKey(raw []byte) (*Ed25519PublicKey, error) {
	if len(raw) == Ed25519KeyLen+1 && raw[0] == ed25519KeyPrefix {
		raw = raw[1:]
	}
	if len(raw) != Ed25519KeyLen {
		return nil, invalidKey(CurveEd25519, lengthReason(len(raw)), nil)
	}

	if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
		return nil, invalidKey(CurveEd25519, "point is not on curve", err)
	}

	k := &Ed25519PublicKey{}
	copy(k.raw[:], raw)
	return k, nil
}

// Curve implements PublicKey.
func (*Ed25519PublicKey) Curve() Curve {
	return CurveEd25519
}

// RawCompressed returns the 32-byte encoding.
func (k *Ed25519PublicKey) RawCompressed() []byte {
	return bytes.Clone(k.raw[:])
}

// RawUncompressed returns the 32-byte encoding; ed25519 has no separate
// uncompressed form.
func (k *Ed25519PublicKey) RawUncompressed() []byte {
	return bytes.Clone(k.raw[:])
}
