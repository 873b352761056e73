package repository

import (
	"sync"

	"hydraulic_dashboard/internal/models"
)

// historyCapacity is how many readings the rolling buffer keeps.
const historyCapacity = 200

// ReadingBuffer is a capped in-memory buffer of recent readings, oldest
// first. Readings never touch disk: the whole history is discarded on
// restart or reset.
type ReadingBuffer struct {
	mu       sync.RWMutex
	buf      []models.Reading
	capacity int
}

var _ ReadingRepo = (*ReadingBuffer)(nil)

func NewReadingBuffer(capacity int) *ReadingBuffer {
	if capacity <= 0 {
		capacity = historyCapacity
	}
	return &ReadingBuffer{
		buf:      make([]models.Reading, 0, capacity),
		capacity: capacity,
	}
}

func (b *ReadingBuffer) Append(r models.Reading) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.buf) >= b.capacity {
		b.buf = b.buf[1:]
	}
	b.buf = append(b.buf, r)
}

// Recent returns up to n of the newest readings, oldest first. n <= 0 or
// n > len returns everything.
func (b *ReadingBuffer) Recent(n int) []models.Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n <= 0 || n > len(b.buf) {
		n = len(b.buf)
	}
	out := make([]models.Reading, n)
	copy(out, b.buf[len(b.buf)-n:])
	return out
}

func (b *ReadingBuffer) All() []models.Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Reading, len(b.buf))
	copy(out, b.buf)
	return out
}

func (b *ReadingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.buf)
}

func (b *ReadingBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = b.buf[:0]
}
