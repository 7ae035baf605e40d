package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ Broadcaster = (*Memory)(nil)

// Bus is an in-process fan-out connecting Memory broadcasters. Each
// broadcaster stands in for one execution context; publishing through one
// delivers to every other broadcaster on the bus but never back to the
// publisher.
type Bus struct {
	members []*Memory
	lock    sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{}
}

// NewBroadcaster joins a new context to the bus.
func (b *Bus) NewBroadcaster() *Memory {
	m := &Memory{bus: b, origin: uuid.New().String()}
	b.lock.Lock()
	b.members = append(b.members, m)
	b.lock.Unlock()
	return m
}

func (b *Bus) dispatch(msg Message) {
	b.lock.RLock()
	members := make([]*Memory, len(b.members))
	copy(members, b.members)
	b.lock.RUnlock()

	for _, m := range members {
		m.deliver(msg)
	}
}

// Memory is a single context's handle on a Bus.
type Memory struct {
	bus      *Bus
	origin   string
	handlers map[int]Handler
	nextID   int
	lock     sync.Mutex
}

func (m *Memory) Publish(_ context.Context, event string) error {
	m.bus.dispatch(Message{Origin: m.origin, Event: event})
	return nil
}

func (m *Memory) Subscribe(handler Handler) func() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.handlers == nil {
		m.handlers = make(map[int]Handler)
	}
	id := m.nextID
	m.nextID++
	m.handlers[id] = handler

	return func() {
		m.lock.Lock()
		defer m.lock.Unlock()
		delete(m.handlers, id)
	}
}

func (m *Memory) deliver(msg Message) {
	if msg.Origin == m.origin {
		return
	}
	m.lock.Lock()
	handlers := make([]Handler, 0, len(m.handlers))
	for _, h := range m.handlers {
		handlers = append(handlers, h)
	}
	m.lock.Unlock()

	for _, h := range handlers {
		h(msg.Event)
	}
}
