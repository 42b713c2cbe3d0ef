package security

import (
	"sync"

	audit "arbiter/pkg/platform/audit"
)

// RingBuffer holds pending security events. When full, the oldest event is
// dropped.
type RingBuffer struct {
	mu      sync.Mutex
	events  []audit.Event
	head    int
	count   int
	dropped int64
}

func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingBuffer{events: make([]audit.Event, capacity)}
}

func (b *RingBuffer) Enqueue(event audit.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.events)
	if b.count == capacity {
		b.head = (b.head + 1) % capacity
		b.count--
		b.dropped++
	}
	b.events[(b.head+b.count)%capacity] = event
	b.count++
}

// DequeueBatch removes up to n events, oldest first.
func (b *RingBuffer) DequeueBatch(n int) []audit.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	n = min(n, b.count)
	if n <= 0 {
		return nil
	}
	out := make([]audit.Event, n)
	for i := range out {
		out[i] = b.events[b.head]
		b.head = (b.head + 1) % len(b.events)
	}
	b.count -= n
	return out
}

func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *RingBuffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
