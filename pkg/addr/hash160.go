package addr

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/mrz1836/hdkit/pkg/crypto"
	"github.com/mrz1836/hdkit/pkg/ecc"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Hash160Size is the length of a RIPEMD160(SHA256) key hash.
const Hash160Size = 20

func keyHash160(k KeyInput) ([]byte, error) {
	pub, err := validateSecp256k1Key(k)
	if err != nil {
		return nil, err
	}
	return crypto.Hash160(pub.RawCompressed()), nil
}

// P2PKH encodes Base58Check pay-to-pubkey-hash addresses.
type P2PKH struct {
	netVer []byte
}

// NewP2PKH builds a P2PKH codec. cfg.NetVer is required and may be longer
// than one byte.
func NewP2PKH(cfg ChainConfig) (*P2PKH, error) {
	if err := checkRequired(ChainP2PKH, cfg); err != nil {
		return nil, err
	}
	return &P2PKH{netVer: bytes.Clone(cfg.NetVer)}, nil
}

// Chain implements Codec.
func (*P2PKH) Chain() Chain { return ChainP2PKH }

// Curve implements Codec.
func (*P2PKH) Curve() ecc.Curve { return ecc.CurveSecp256k1 }

// EncodeKey implements Codec.
func (e *P2PKH) EncodeKey(key KeyInput) (string, error) {
	h, err := keyHash160(key)
	if err != nil {
		return "", err
	}
	// CheckEncode takes one version byte; the rest of a longer prefix
	// travels at the head of the payload, which gives the same layout.
	payload := make([]byte, 0, len(e.netVer)-1+len(h))
	payload = append(payload, e.netVer[1:]...)
	payload = append(payload, h...)
	return base58.CheckEncode(payload, e.netVer[0]), nil
}

// DecodeAddr returns the 20-byte key hash.
func (e *P2PKH) DecodeAddr(address string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		if kiterr.Is(err, base58.ErrChecksum) {
			return nil, kiterr.WithDetails(kiterr.ErrInvalidChecksum, map[string]string{
				"chain": string(ChainP2PKH),
			})
		}
		return nil, invalidAddress(ChainP2PKH, "not base58check", err)
	}
	if version != e.netVer[0] || !bytes.HasPrefix(payload, e.netVer[1:]) {
		return nil, invalidAddress(ChainP2PKH, "network version mismatch", nil)
	}
	h := payload[len(e.netVer)-1:]
	if len(h) != Hash160Size {
		return nil, invalidAddress(ChainP2PKH, "unexpected payload length "+strconv.Itoa(len(h)), nil)
	}
	return h, nil
}

// P2WPKH encodes native segwit pay-to-witness-pubkey-hash addresses.
type P2WPKH struct {
	hrp        string
	witnessVer byte
}

// NewP2WPKH builds a P2WPKH codec. cfg.HRP is required; cfg.WitnessVer
// defaults to 0.
func NewP2WPKH(cfg ChainConfig) (*P2WPKH, error) {
	if err := checkRequired(ChainP2WPKH, cfg); err != nil {
		return nil, err
	}
	if cfg.WitnessVer > 16 {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{
			"option": string(OptionWitnessVer),
			"value":  strconv.Itoa(int(cfg.WitnessVer)),
		})
	}
	return &P2WPKH{hrp: strings.ToLower(cfg.HRP), witnessVer: cfg.WitnessVer}, nil
}

// Chain implements Codec.
func (*P2WPKH) Chain() Chain { return ChainP2WPKH }

// Curve implements Codec.
func (*P2WPKH) Curve() ecc.Curve { return ecc.CurveSecp256k1 }

// EncodeKey implements Codec.
func (e *P2WPKH) EncodeKey(key KeyInput) (string, error) {
	h, err := keyHash160(key)
	if err != nil {
		return "", err
	}
	conv, err := bech32.ConvertBits(h, 8, 5, true)
	if err != nil {
		return "", kiterr.Wrap(err, "convert witness program")
	}
	data := append([]byte{e.witnessVer}, conv...)
	if e.witnessVer == 0 {
		return bech32.Encode(e.hrp, data)
	}
	return bech32.EncodeM(e.hrp, data)
}

// DecodeAddr returns the 20-byte witness program.
func (e *P2WPKH) DecodeAddr(address string) ([]byte, error) {
	hrp, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return nil, invalidAddress(ChainP2WPKH, "not bech32", err)
	}
	if hrp != e.hrp {
		return nil, invalidAddress(ChainP2WPKH, "hrp mismatch", nil)
	}
	if len(data) == 0 || data[0] != e.witnessVer {
		return nil, invalidAddress(ChainP2WPKH, "witness version mismatch", nil)
	}
	want := bech32.Version0
	if e.witnessVer != 0 {
		want = bech32.VersionM
	}
	if version != want {
		return nil, invalidAddress(ChainP2WPKH, "wrong checksum variant", nil)
	}
	prog, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, invalidAddress(ChainP2WPKH, "bad witness program", err)
	}
	if len(prog) != Hash160Size {
		return nil, invalidAddress(ChainP2WPKH, "unexpected program length "+strconv.Itoa(len(prog)), nil)
	}
	return prog, nil
}

// Atom encodes Cosmos-style Bech32 account addresses.
type Atom struct {
	hrp string
}

// NewAtom builds an Atom codec. cfg.HRP is required.
func NewAtom(cfg ChainConfig) (*Atom, error) {
	if err := checkRequired(ChainAtom, cfg); err != nil {
		return nil, err
	}
	return &Atom{hrp: strings.ToLower(cfg.HRP)}, nil
}

// Chain implements Codec.
func (*Atom) Chain() Chain { return ChainAtom }

// Curve implements Codec.
func (*Atom) Curve() ecc.Curve { return ecc.CurveSecp256k1 }

// EncodeKey implements Codec.
func (e *Atom) EncodeKey(key KeyInput) (string, error) {
	h, err := keyHash160(key)
	if err != nil {
		return "", err
	}
	return bech32.EncodeFromBase256(e.hrp, h)
}

// DecodeAddr returns the 20-byte key hash.
func (e *Atom) DecodeAddr(address string) ([]byte, error) {
	return decodeBech32Hash(ChainAtom, e.hrp, address)
}

// decodeBech32Hash decodes a plain Bech32 string carrying a 20-byte hash.
func decodeBech32Hash(chain Chain, wantHRP, address string) ([]byte, error) {
	hrp, words, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return nil, invalidAddress(chain, "not bech32", err)
	}
	if hrp != wantHRP {
		return nil, invalidAddress(chain, "hrp mismatch", nil)
	}
	if version != bech32.Version0 {
		return nil, invalidAddress(chain, "wrong checksum variant", nil)
	}
	data, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return nil, invalidAddress(chain, "bad payload", err)
	}
	if len(data) != Hash160Size {
		return nil, invalidAddress(chain, "unexpected payload length "+strconv.Itoa(len(data)), nil)
	}
	return data, nil
}
