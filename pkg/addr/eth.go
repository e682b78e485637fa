package addr

import (
	"encoding/hex"
	"strings"

	"github.com/mrz1836/hdkit/pkg/crypto"
	"github.com/mrz1836/hdkit/pkg/ecc"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

const (
	ethAddressBytes = 20
	ethPrefix       = "0x"
)

// ETH encodes EVM addresses: the last 20 bytes of Keccak-256 over the
// uncompressed X||Y coordinates, with EIP-55 mixed-case checksum.
type ETH struct {
	skipChecksum bool
}

// NewETH builds an EVM codec. cfg.SkipChecksum renders lowercase addresses.
func NewETH(cfg ChainConfig) (*ETH, error) {
	if err := checkRequired(ChainETH, cfg); err != nil {
		return nil, err
	}
	return &ETH{skipChecksum: cfg.SkipChecksum}, nil
}

// Chain implements Codec.
func (*ETH) Chain() Chain { return ChainETH }

// Curve implements Codec.
func (*ETH) Curve() ecc.Curve { return ecc.CurveSecp256k1 }

// EncodeKey implements Codec.
func (e *ETH) EncodeKey(key KeyInput) (string, error) {
	pub, err := validateSecp256k1Key(key)
	if err != nil {
		return "", err
	}
	hash := crypto.Keccak256(pub.RawUncompressed()[1:])
	addrHex := hex.EncodeToString(hash[len(hash)-ethAddressBytes:])
	if e.skipChecksum {
		return ethPrefix + addrHex, nil
	}
	return ethPrefix + checksumHex(addrHex), nil
}

// DecodeAddr returns the 20-byte address. Mixed-case input must carry a
// valid EIP-55 checksum unless the codec skips checksums.
func (e *ETH) DecodeAddr(address string) ([]byte, error) {
	body, ok := strings.CutPrefix(address, ethPrefix)
	if !ok {
		return nil, invalidAddress(ChainETH, "missing 0x prefix", nil)
	}
	if len(body) != ethAddressBytes*2 {
		return nil, invalidAddress(ChainETH, "wrong length", nil)
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return nil, invalidAddress(ChainETH, "not hex", err)
	}
	if !e.skipChecksum && isMixedCase(body) && checksumHex(strings.ToLower(body)) != body {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidChecksum, map[string]string{
			"chain": string(ChainETH),
		})
	}
	return raw, nil
}

// checksumHex applies EIP-55 casing to a lowercase 40-char hex address.
func checksumHex(addrHex string) string {
	hash := crypto.Keccak256([]byte(addrHex))
	out := []byte(addrHex)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := hash[i/2] >> 4
		if i%2 == 1 {
			nibble = hash[i/2] & 0x0F
		}
		if nibble >= 8 {
			out[i] = c - 32
		}
	}
	return string(out)
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
