package feed

import "sync"

// Buffer is an append-only, ordered sequence of items safe for concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	items []Item
}

// Append adds items to the tail in the given order.
func (b *Buffer) Append(items ...Item) {
	if len(items) == 0 {
		return
	}
	b.mu.Lock()
	b.items = append(b.items, items...)
	b.mu.Unlock()
}

// Snapshot returns the contents as of the call. The returned slice shares
// storage with the buffer and must not be modified; its capacity is clipped so
// appending to it never writes into the buffer.
func (b *Buffer) Snapshot() []Item {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.items)
	return b.items[:n:n]
}

// Len returns the number of items appended so far.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}
