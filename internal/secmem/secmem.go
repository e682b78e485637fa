// Package secmem holds seed and key material in page-locked memory that is
// wiped when released.
package secmem

import (
	"runtime"
	"sync"
)

// Buffer is a fixed-size byte buffer kept out of swap where the platform
// allows it. The contents are zeroed on Wipe or when the buffer is
// collected.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
}

// New allocates a zeroed buffer of size bytes. Locking is best effort; see
// Locked.
func New(size int) *Buffer {
	b := &Buffer{data: make([]byte, size)}
	b.locked = mlock(b.data)
	runtime.SetFinalizer(b, (*Buffer).Wipe)
	return b
}

// Copy moves src into a new buffer and zeroes src.
func Copy(src []byte) *Buffer {
	b := New(len(src))
	copy(b.data, src)
	clear(src)
	return b
}

// Bytes returns the live contents, or nil after Wipe. Callers must not
// retain the slice past Wipe.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the buffer size, 0 after Wipe.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the pages are locked in memory.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Wipe zeroes and unlocks the buffer. It is safe to call more than once.
func (b *Buffer) Wipe() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return
	}
	clear(b.data)
	if b.locked {
		munlock(b.data)
		b.locked = false
	}
	b.data = nil
	runtime.SetFinalizer(b, nil)
}
