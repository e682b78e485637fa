package wallet

import (
	"encoding/hex"
	"strconv"

	"github.com/tyler-smith/go-bip32"

	"github.com/mrz1836/hdkit/pkg/addr"
	"github.com/mrz1836/hdkit/pkg/bip32path"
	"github.com/mrz1836/hdkit/pkg/ecc"
	kiterr "github.com/mrz1836/hdkit/pkg/errors"
)

// MaxDepth is the deepest path a BIP32 extended key can record.
const MaxDepth = 255

// MaxRange bounds the number of addresses DeriveRange produces per call.
const MaxRange = 1000

// Seed length bounds in bytes.
const (
	MinSeedLen = 16
	MaxSeedLen = 64
)

// Address is a derived address together with the key it was built from.
type Address struct {
	Path      string `json:"path"`
	Chain     string `json:"chain"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

// Deriver walks BIP32 paths from a master or extended public key.
type Deriver struct {
	root     *bip32.Key
	maxDepth int
}

// NewDeriver creates a deriver rooted at the master key for seed. A
// maxDepth of zero or less means MaxDepth.
func NewDeriver(seed []byte, maxDepth int) (*Deriver, error) {
	if len(seed) < MinSeedLen || len(seed) > MaxSeedLen {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{
			"seed_len": strconv.Itoa(len(seed)),
		})
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, kiterr.WithCause(kiterr.ErrInvalidInput, err)
	}
	return &Deriver{root: master, maxDepth: clampDepth(maxDepth)}, nil
}

// NewDeriverFromXpub creates a deriver rooted at a serialized extended
// public key. Only non-hardened paths can be walked from it.
func NewDeriverFromXpub(xpub string, maxDepth int) (*Deriver, error) {
	key, err := bip32.B58Deserialize(xpub)
	if err != nil {
		return nil, kiterr.WithCause(kiterr.ErrInvalidPublicKey, err)
	}
	if key.IsPrivate {
		return nil, kiterr.WithSuggestion(
			kiterr.WithDetails(kiterr.ErrInvalidPublicKey, map[string]string{"reason": "extended private key given"}),
			"pass the account xpub, not the xprv",
		)
	}
	return &Deriver{root: key, maxDepth: clampDepth(maxDepth)}, nil
}

func clampDepth(d int) int {
	if d <= 0 || d > MaxDepth {
		return MaxDepth
	}
	return d
}

// DeriveKey walks path from the root and returns the extended key.
func (d *Deriver) DeriveKey(path bip32path.Path) (*bip32.Key, error) {
	indices, err := path.ToList()
	if err != nil {
		return nil, err
	}
	if depth := int(d.root.Depth) + len(indices); depth > d.maxDepth {
		return nil, kiterr.WithDetails(kiterr.ErrPathTooDeep, map[string]string{
			"depth": strconv.Itoa(depth),
			"max":   strconv.Itoa(d.maxDepth),
		})
	}

	key := d.root
	for i, idx := range indices {
		key, err = key.NewChildKey(idx)
		if err != nil {
			return nil, kiterr.WithCause(
				kiterr.WithDetails(kiterr.ErrInvalidPath, map[string]string{
					"path":     path.String(),
					"position": strconv.Itoa(i),
				}),
				err,
			)
		}
	}
	return key, nil
}

// DerivePublicKey walks path and returns the secp256k1 public key at its end.
func (d *Deriver) DerivePublicKey(path bip32path.Path) (ecc.PublicKey, error) {
	key, err := d.DeriveKey(path)
	if err != nil {
		return nil, err
	}
	return ecc.ParsePublicKey(ecc.CurveSecp256k1, key.PublicKey().Key)
}

// DeriveAddress walks path and encodes the resulting key with codec.
// Codecs bound to another curve fail with a wrong-curve error.
func (d *Deriver) DeriveAddress(path bip32path.Path, codec addr.Codec) (*Address, error) {
	pub, err := d.DerivePublicKey(path)
	if err != nil {
		return nil, err
	}

	encoded, err := codec.EncodeKey(addr.TypedKey(pub))
	if err != nil {
		return nil, err
	}

	return &Address{
		Path:      path.String(),
		Chain:     codec.Chain().String(),
		Address:   encoded,
		PublicKey: hex.EncodeToString(pub.RawCompressed()),
	}, nil
}

// DeriveRange derives count addresses at consecutive indices, starting from
// the last element of path. The parent key is derived once. A hardened last
// element keeps every index in the range hardened.
func (d *Deriver) DeriveRange(path bip32path.Path, count int, codec addr.Codec) ([]*Address, error) {
	if count < 1 || count > MaxRange {
		return nil, kiterr.WithSuggestion(
			kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{"count": strconv.Itoa(count)}),
			"count must be between 1 and "+strconv.Itoa(MaxRange),
		)
	}
	if path.Len() == 0 {
		return nil, kiterr.WithSuggestion(kiterr.ErrInvalidPath, "the path needs at least one element to iterate")
	}

	elems := path.Elements()
	parentPath := bip32path.FromElements(elems[:len(elems)-1]...)
	start, err := elems[len(elems)-1].Index()
	if err != nil {
		return nil, kiterr.WithDetails(err, map[string]string{"position": strconv.Itoa(len(elems) - 1)})
	}

	limit := uint64(bip32path.HardenedOffset - 1)
	if bip32path.IsHardenedIndex(start) {
		limit = uint64(^uint32(0))
	}
	if uint64(start)+uint64(count)-1 > limit {
		return nil, kiterr.WithDetails(kiterr.ErrInvalidInput, map[string]string{
			"start": strconv.FormatUint(uint64(start), 10),
			"count": strconv.Itoa(count),
		})
	}

	if depth := int(d.root.Depth) + path.Len(); depth > d.maxDepth {
		return nil, kiterr.WithDetails(kiterr.ErrPathTooDeep, map[string]string{
			"depth": strconv.Itoa(depth),
			"max":   strconv.Itoa(d.maxDepth),
		})
	}
	parent, err := d.DeriveKey(parentPath)
	if err != nil {
		return nil, err
	}

	out := make([]*Address, 0, count)
	for i := range uint32(count) { //nolint:gosec // G115: count is bounded by MaxRange
		idx := start + i
		child, err := parent.NewChildKey(idx)
		if err != nil {
			return nil, kiterr.WithCause(
				kiterr.WithDetails(kiterr.ErrInvalidPath, map[string]string{
					"path":     path.String(),
					"position": strconv.Itoa(path.Len() - 1),
				}),
				err,
			)
		}
		pub, err := ecc.ParsePublicKey(ecc.CurveSecp256k1, child.PublicKey().Key)
		if err != nil {
			return nil, err
		}
		encoded, err := codec.EncodeKey(addr.TypedKey(pub))
		if err != nil {
			return nil, err
		}
		out = append(out, &Address{
			Path:      parentPath.Append(bip32path.NewElement(idx)).String(),
			Chain:     codec.Chain().String(),
			Address:   encoded,
			PublicKey: hex.EncodeToString(pub.RawCompressed()),
		})
	}
	return out, nil
}

// AccountXpub returns the serialized extended public key at path.
func (d *Deriver) AccountXpub(path bip32path.Path) (string, error) {
	key, err := d.DeriveKey(path)
	if err != nil {
		return "", err
	}
	return key.PublicKey().String(), nil
}

// ZeroBytes zeros out a byte slice.
func ZeroBytes(data []byte) {
	clear(data)
}
