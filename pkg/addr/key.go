package addr

import (
	"github.com/mrz1836/hdkit/pkg/ecc"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// KeyInput is a public key given either as raw bytes or as a typed handle.
// The zero value holds no key.
type KeyInput struct {
	raw   []byte
	typed ecc.PublicKey
}

// RawKey wraps encoded key bytes. They are parsed for the curve of the
// chain that consumes them.
func RawKey(b []byte) KeyInput {
	return KeyInput{raw: b}
}

// TypedKey wraps a validated key handle.
func TypedKey(k ecc.PublicKey) KeyInput {
	return KeyInput{typed: k}
}

// resolve returns a key handle on curve. A typed key on another curve is
// ErrWrongCurve; raw bytes that do not parse are ErrInvalidPublicKey.
func (k KeyInput) resolve(curve ecc.Curve) (ecc.PublicKey, error) {
	if k.typed != nil {
		if k.typed.Curve() != curve {
			return nil, kiterr.WithDetails(kiterr.ErrWrongCurve, map[string]string{
				"expected": string(curve),
				"actual":   string(k.typed.Curve()),
			})
		}
		return k.typed, nil
	}
	if len(k.raw) == 0 {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidPublicKey, map[string]string{
			"curve":  string(curve),
			"reason": "empty key",
		})
	}
	return ecc.ParsePublicKey(curve, k.raw)
}

func validateSecp256k1Key(k KeyInput) (ecc.PublicKey, error) {
	return k.resolve(ecc.CurveSecp256k1)
}

func validateEd25519Key(k KeyInput) (ecc.PublicKey, error) {
	return k.resolve(ecc.CurveEd25519)
}
