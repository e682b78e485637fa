package secmem

import (
	"crypto/rand"
	"io"
)

// Reader is the entropy source for Random. Tests may replace it.
//
//nolint:gochecknoglobals // swappable for deterministic tests
var Reader io.Reader = rand.Reader

// Random returns a buffer holding n bytes read from Reader.
func Random(n int) (*Buffer, error) {
	b := New(n)
	if _, err := io.ReadFull(Reader, b.data); err != nil {
		b.Wipe()
		return nil, err
	}
	return b, nil
}
