package logbus

import "sync"

// DefaultCapacity bounds the worker-to-UI channel.
const DefaultCapacity = 256

// Bus is a bounded, ordered hand-off from worker goroutines to the UI loop.
//
// Emit blocks while the channel is full. Once Close is called, pending and
// future Emit calls return immediately and the entry is dropped.
type Bus struct {
	ch     chan Entry
	done   chan struct{}
	closed sync.Once
}

// NewBus creates a bus. capacity <= 0 selects DefaultCapacity.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{
		ch:   make(chan Entry, capacity),
		done: make(chan struct{}),
	}
}

// Emit publishes an entry. Safe for concurrent use.
func (b *Bus) Emit(e Entry) {
	select {
	case <-b.done:
		return
	default:
	}

	select {
	case b.ch <- e:
	case <-b.done:
	}
}

// Entries is the receive side for the UI loop.
func (b *Bus) Entries() <-chan Entry {
	return b.ch
}

// Done is closed by Close.
func (b *Bus) Done() <-chan struct{} {
	return b.done
}

// Drain returns whatever is queued right now, up to max entries, without
// blocking. max <= 0 means no limit.
func (b *Bus) Drain(max int) []Entry {
	var out []Entry
	for max <= 0 || len(out) < max {
		select {
		case e := <-b.ch:
			out = append(out, e)
		default:
			return out
		}
	}
	return out
}

// Close releases blocked producers. The channel itself stays open so a late
// Emit can never panic.
func (b *Bus) Close() {
	b.closed.Do(func() { close(b.done) })
}
