package addr

import (
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/mrz1836/hdkit/pkg/ecc"
)

// Solana encodes Solana addresses: the raw 32-byte ed25519 key in Base58.
type Solana struct{}

// NewSolana builds a Solana codec. Solana takes no options.
func NewSolana(cfg ChainConfig) (*Solana, error) {
	if err := checkRequired(ChainSolana, cfg); err != nil {
		return nil, err
	}
	return &Solana{}, nil
}

// Chain implements Codec.
func (*Solana) Chain() Chain { return ChainSolana }

// Curve implements Codec.
func (*Solana) Curve() ecc.Curve { return ecc.CurveEd25519 }

// EncodeKey implements Codec.
func (*Solana) EncodeKey(key KeyInput) (string, error) {
	pub, err := validateEd25519Key(key)
	if err != nil {
		return "", err
	}
	return base58.Encode(pub.RawCompressed()), nil
}

// DecodeAddr returns the 32-byte public key.
func (*Solana) DecodeAddr(address string) ([]byte, error) {
	raw := base58.Decode(address)
	if len(raw) == 0 {
		return nil, invalidAddress(ChainSolana, "not base58", nil)
	}
	pub, err := ecc.NewEd25519PublicKey(raw)
	if err != nil {
		return nil, invalidAddress(ChainSolana, "not an ed25519 key", err)
	}
	return pub.RawCompressed(), nil
}

// Algorand encodes Algorand addresses: base32 of the key followed by the
// last four bytes of its SHA-512/256 digest.
type Algorand struct{}

// NewAlgorand builds an Algorand codec. Algorand takes no options.
func NewAlgorand(cfg ChainConfig) (*Algorand, error) {
	if err := checkRequired(ChainAlgorand, cfg); err != nil {
		return nil, err
	}
	return &Algorand{}, nil
}

// Chain implements Codec.
func (*Algorand) Chain() Chain { return ChainAlgorand }

// Curve implements Codec.
func (*Algorand) Curve() ecc.Curve { return ecc.CurveEd25519 }

// EncodeKey implements Codec.
func (*Algorand) EncodeKey(key KeyInput) (string, error) {
	pub, err := validateEd25519Key(key)
	if err != nil {
		return "", err
	}
	var a types.Address
	copy(a[:], pub.RawCompressed())
	return a.String(), nil
}

// DecodeAddr returns the 32-byte public key.
func (*Algorand) DecodeAddr(address string) ([]byte, error) {
	a, err := types.DecodeAddress(address)
	if err != nil {
		return nil, invalidAddress(ChainAlgorand, "not an algorand address", err)
	}
	return a[:], nil
}
