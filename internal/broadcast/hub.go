// Package broadcast is the in-process fan-out layer for live location
// streams. Subscribers attach to a topic (an order or a tow truck) and
// receive every payload published to it while connected; there is no replay.
package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type TopicKind string

const (
	TopicOrder TopicKind = "order"
	TopicTruck TopicKind = "truck"
)

type Topic struct {
	Kind TopicKind
	ID   uuid.UUID
}

func OrderTopic(id uuid.UUID) Topic {
	return Topic{Kind: TopicOrder, ID: id}
}

func TruckTopic(id uuid.UUID) Topic {
	return Topic{Kind: TopicTruck, ID: id}
}

// Publisher is what writers see: a one-way, best-effort publish.
type Publisher interface {
	Publish(topic Topic, payload any)
}

type Subscriber struct {
	ID   string
	Send chan []byte
}

func NewSubscriber() *Subscriber {
	return &Subscriber{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 16),
	}
}

type Hub struct {
	mu     sync.RWMutex
	topics map[Topic]map[string]*Subscriber
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[Topic]map[string]*Subscriber),
	}
}

func (h *Hub) Subscribe(topic Topic, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]*Subscriber)
		h.topics[topic] = subs
	}
	subs[sub.ID] = sub
}

func (h *Hub) Unsubscribe(topic Topic, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Publish marshals the payload once and hands it to every current subscriber
// of the topic. The send never blocks: a subscriber whose buffer is full
// misses the message.
func (h *Hub) Publish(topic Topic, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.topics[topic] {
		select {
		case sub.Send <- data:
		default:
		}
	}
}

// Subscribers returns the current subscriber count for a topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
