// Package events implements the publish/subscribe fan-out that decouples
// the clock state machine from its observers (display, wireless link).
package events

import "sync"

// EventType represents the type of event
type EventType string

// Every observable state change the controller announces.
const (
	EventGameStarted  EventType = "GAME_STARTED"
	EventClockTick    EventType = "CLOCK_TICK"
	EventTurnSwitched EventType = "TURN_SWITCHED"
	EventTimeUp       EventType = "TIME_UP"
)

// Event represents an event in the system. Payload carries a
// read-only snapshot of the state at publish time.
type Event struct {
	Type    EventType
	Payload interface{}
}

// Handler is a function that processes events
type Handler func(event Event)

// Publisher is the central event publisher
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
	all         []Handler
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (p *Publisher) Subscribe(eventType EventType, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[eventType] = append(p.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every event type
func (p *Publisher) SubscribeAll(handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.all = append(p.all, handler)
}

// Publish broadcasts an event to all subscribers. Handlers run
// concurrently; a slow display must never hold up the clock.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	handlers := p.subscribers[event.Type]
	allHandlers := p.all
	p.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}

	for _, handler := range allHandlers {
		go handler(event)
	}
}
