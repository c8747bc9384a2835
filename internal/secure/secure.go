// Package secure holds key material in memory that is locked against
// swap where the OS allows it, and is explicitly zeroed rather than
// left for the garbage collector to reclaim whenever it likes.
package secure

import (
	"crypto/rand"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// drawnBytes is a process-wide count of bytes ever drawn via Random.
// It stands in for OS entropy-pool introspection (explicitly out of
// scope): WaitForEntropy polls this counter rather than any OS-level
// pool accounting.
var drawnBytes atomic.Int64

// Bytes wraps a sensitive byte slice: best-effort mlock, explicit
// zeroing on Destroy, and a finalizer as a backstop for callers that
// forget to call Destroy.
type Bytes struct {
	mu     sync.Mutex
	data   []byte
	locked bool
}

// New allocates size bytes of secure memory, zeroed.
func New(size int) *Bytes {
	data := make([]byte, size)
	b := &Bytes{data: data, locked: mlock(data)}
	runtime.SetFinalizer(b, func(b *Bytes) { b.Destroy() })
	return b
}

// FromSlice copies data into a new secure buffer. The caller remains
// responsible for zeroing its own copy of data.
func FromSlice(data []byte) *Bytes {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Random allocates n bytes of secure memory filled from a
// cryptographically secure random source.
func Random(n int) (*Bytes, error) {
	b := New(n)
	if _, err := io.ReadFull(rand.Reader, b.data); err != nil {
		b.Destroy()
		return nil, err
	}
	drawnBytes.Add(int64(n))
	return b, nil
}

// Bytes returns the underlying slice, or nil if Destroy has run.
func (b *Bytes) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the buffer length, or 0 after Destroy.
func (b *Bytes) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the buffer's memory was successfully
// mlocked.
func (b *Bytes) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Destroy zeros and unlocks the buffer. Safe to call more than once
// or concurrently.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return
	}
	for i := range b.data {
		b.data[i] = 0
	}
	if b.locked {
		munlock(b.data)
		b.locked = false
	}
	b.data = nil
	runtime.SetFinalizer(b, nil)
}

// Zero overwrites data in place with zero bytes. Used for plain
// ([]byte) buffers that were never wrapped in a Bytes, e.g. ephemeral
// intermediate values passed between pipeline steps.
func Zero(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
