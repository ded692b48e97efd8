// internal/events/bus.go
package events

import (
	"sync"

	"github.com/google/uuid"
)

// TransitionEvent is published on every state-machine move, after the move
// has been committed.
type TransitionEvent struct {
	Entity   string
	EntityID uuid.UUID
	From     string
	To       string
}

type Handler func(TransitionEvent)

// Bus is a minimal in-process publisher. Handlers run synchronously in
// publish order; they must not block.
type Bus struct {
	mtx      sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(e TransitionEvent) {
	b.mtx.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mtx.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
