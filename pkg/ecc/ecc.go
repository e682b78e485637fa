// Package ecc wraps public keys in curve-bound handles. A handle can only be
// built from bytes that decode to a point on its curve, so encoders holding
// one never re-validate.
package ecc

import (
	"fmt"

	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Curve names an elliptic curve.
type Curve string

// Supported curves.
const (
	CurveSecp256k1 Curve = "secp256k1"
	CurveEd25519   Curve = "ed25519"
)

// String implements fmt.Stringer.
func (c Curve) String() string {
	return string(c)
}

// PublicKey is a validated public key bound to a curve.
// The byte slices returned are fresh copies.
type PublicKey interface {
	Curve() Curve
	RawCompressed() []byte
	RawUncompressed() []byte
}

// ParsePublicKey builds a handle for curve from raw bytes.
func ParsePublicKey(curve Curve, raw []byte) (PublicKey, error) {
	switch curve {
	case CurveSecp256k1:
		return NewSecp256k1PublicKey(raw)
	case CurveEd25519:
		return NewEd25519PublicKey(raw)
	default:
		return nil, kiterr.WithDetails(kiterr.ErrInvalidPublicKey, map[string]string{
			"curve": string(curve),
		})
	}
}

func invalidKey(curve Curve, reason string, cause error) error {
	err := kiterr.WithDetails(kiterr.ErrInvalidPublicKey, map[string]string{
		"curve":  string(curve),
		"reason": reason,
	})
	if cause != nil {
		err = kiterr.WithCause(err, cause)
	}
	return err
}

func lengthReason(n int) string {
	return fmt.Sprintf("unexpected length %d", n)
}
