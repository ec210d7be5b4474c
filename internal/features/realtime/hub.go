package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is the wire shape pushed to connected clients.
type Event struct {
	Type    string    `json:"type"`
	Topic   string    `json:"topic"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Subscriber is one websocket connection's view of a topic. Events arrive
// on C; a slow consumer has events dropped rather than blocking publishers.
type Subscriber struct {
	C     chan Event
	topic string
}

// Hub fans events out to websocket subscribers. Topics are either a user id
// (workspace changes) or a dashboard id (shared page changes).
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscriber]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		topics: map[string]map[*Subscriber]struct{}{},
		logger: logger,
	}
}

func (h *Hub) Subscribe(topic string) *Subscriber {
	sub := &Subscriber{C: make(chan Event, 16), topic: topic}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = map[*Subscriber]struct{}{}
	}
	h.topics[topic][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.topics[sub.topic]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
	close(sub.C)
}

// Publish delivers an event to every subscriber of the topic. Never blocks.
func (h *Hub) Publish(topic, eventType string, payload any) {
	event := Event{Type: eventType, Topic: topic, Payload: payload, At: time.Now()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[topic] {
		select {
		case sub.C <- event:
		default:
			h.logger.Debug("realtime subscriber lagging, event dropped",
				zap.String("topic", topic), zap.String("type", eventType))
		}
	}
}

// Subscribers reports how many connections are watching a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
