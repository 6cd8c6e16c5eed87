package event

import (
	"sync"
)

// EventType identifies a class of domain event.
type EventType string

const (
	CallLogCreated EventType = "call_log.created"
	CallLogUpdated EventType = "call_log.updated"
	CallLogDeleted EventType = "call_log.deleted"
	LeadCreated    EventType = "lead.created"
	LeadDeleted    EventType = "lead.deleted"
	CompanyCreated EventType = "company.created"
)

// Handler consumes a single event payload.
type Handler func(payload any)

// Emitter is a synchronous in-process publish/subscribe hub. Emit invokes
// every subscriber inline, before returning to the caller, so cross-store
// side effects land within the same logical operation as the mutation that
// produced them.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewEmitter() *Emitter {
	return &Emitter{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers h for events of type t. Handlers run in subscription
// order.
func (e *Emitter) Subscribe(t EventType, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[t] = append(e.handlers[t], h)
}

// Emit dispatches payload to every handler subscribed to t.
func (e *Emitter) Emit(t EventType, payload any) {
	e.mu.RLock()
	handlers := e.handlers[t]
	e.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}
