package addr

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/mrz1836/hdkit/pkg/crypto"
	"github.com/mrz1836/hdkit/pkg/ecc"
)

// Klingnet encodes Klingnet addresses: BLAKE3 over the compressed key,
// truncated to 20 bytes, then Bech32 with the chain HRP.
type Klingnet struct {
	hrp string
}

// NewKlingnet builds a Klingnet codec. cfg.HRP is required.
func NewKlingnet(cfg ChainConfig) (*Klingnet, error) {
	if err := checkRequired(ChainKlingnet, cfg); err != nil {
		return nil, err
	}
	return &Klingnet{hrp: strings.ToLower(cfg.HRP)}, nil
}

// Chain implements Codec.
func (*Klingnet) Chain() Chain { return ChainKlingnet }

// Curve implements Codec.
func (*Klingnet) Curve() ecc.Curve { return ecc.CurveSecp256k1 }

// EncodeKey implements Codec.
func (e *Klingnet) EncodeKey(key KeyInput) (string, error) {
	pub, err := validateSecp256k1Key(key)
	if err != nil {
		return "", err
	}
	sum := crypto.Blake3(pub.RawCompressed())
	return bech32.EncodeFromBase256(e.hrp, sum[:Hash160Size])
}

// DecodeAddr returns the 20-byte truncated hash.
func (e *Klingnet) DecodeAddr(address string) ([]byte, error) {
	return decodeBech32Hash(ChainKlingnet, e.hrp, address)
}
