package contactstore

import "sync"

const subBufferSize = 8

// bus fans snapshots out to subscribers without blocking the publisher.
type bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Snapshot
}

func newBus() *bus {
	return &bus{subs: make(map[int]chan Snapshot)}
}

func (b *bus) subscribe() (<-chan Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Snapshot, subBufferSize)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *bus) publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- snap:
		default:
			// slow subscriber
		}
	}
}

func (b *bus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
