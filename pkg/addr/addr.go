// Package addr encodes public keys into chain addresses.
//
// Each chain family validates the key against the curve it requires, then
// runs its own hashing and encoding pipeline. Keys can be passed as raw
// bytes or as an already-validated ecc.PublicKey; see KeyInput. Chain
// options are fixed per chain and checked when the codec is built, so
// a missing option never surfaces halfway through encoding.
package addr

import (
	"sort"

	"github.com/mrz1836/hdkit/pkg/ecc"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// Chain identifies an address format.
type Chain string

// Supported chains.
const (
	ChainP2PKH    Chain = "p2pkh"
	ChainP2WPKH   Chain = "p2wpkh"
	ChainAtom     Chain = "atom"
	ChainETH      Chain = "eth"
	ChainKlingnet Chain = "klingnet"
	ChainSolana   Chain = "solana"
	ChainAlgorand Chain = "algorand"
)

// String implements fmt.Stringer.
func (c Chain) String() string {
	return string(c)
}

// Codec encodes keys into addresses for one chain and decodes them back to
// the payload the address commits to (key hash or raw key).
type Codec interface {
	Chain() Chain
	Curve() ecc.Curve
	EncodeKey(key KeyInput) (string, error)
	DecodeAddr(address string) ([]byte, error)
}

type constructor func(ChainConfig) (Codec, error)

var constructors = map[Chain]constructor{
	ChainP2PKH:    func(c ChainConfig) (Codec, error) { return NewP2PKH(c) },
	ChainP2WPKH:   func(c ChainConfig) (Codec, error) { return NewP2WPKH(c) },
	ChainAtom:     func(c ChainConfig) (Codec, error) { return NewAtom(c) },
	ChainETH:      func(c ChainConfig) (Codec, error) { return NewETH(c) },
	ChainKlingnet: func(c ChainConfig) (Codec, error) { return NewKlingnet(c) },
	ChainSolana:   func(c ChainConfig) (Codec, error) { return NewSolana(c) },
	ChainAlgorand: func(c ChainConfig) (Codec, error) { return NewAlgorand(c) },
}

// NewEncoder builds the codec for chain. Required options missing from cfg
// fail here with ErrMissingOption.
func NewEncoder(chain Chain, cfg ChainConfig) (Codec, error) {
	ctor, ok := constructors[chain]
	if !ok {
		return nil, kiterr.WithDetails(kiterr.ErrUnsupportedChain, map[string]string{
			"chain": string(chain),
		})
	}
	return ctor(cfg)
}

// Chains returns the supported chains in sorted order.
func Chains() []Chain {
	out := make([]Chain, 0, len(constructors))
	for c := range constructors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseChain resolves a chain name.
func ParseChain(name string) (Chain, error) {
	c := Chain(name)
	if _, ok := constructors[c]; !ok {
		return "", kiterr.WithDetails(kiterr.ErrUnsupportedChain, map[string]string{
			"chain": name,
		})
	}
	return c, nil
}

func invalidAddress(chain Chain, reason string, cause error) error {
	err := kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{
		"chain":  string(chain),
		"reason": reason,
	})
	if cause != nil {
		err = kiterr.WithCause(err, cause)
	}
	return err
}
