package server

import (
	"encoding/json"
	"sync"
)

// Event is the payload pushed to participant event streams.
type Event struct {
	Type          string  `json:"type"`
	Message       string  `json:"message,omitempty"`
	TeamName      string  `json:"teamName,omitempty"`
	QuestionIndex *int    `json:"questionIndex,omitempty"`
	Points        float64 `json:"points,omitempty"`
}

// Broker is an in-process pub/sub keyed by participant ID. Admin broadcasts
// fan out to every subscriber; a slow recipient is skipped, never blocking
// delivery to the others.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel receiving JSON-encoded events for the
// given participant.
func (b *Broker) Subscribe(participantID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[participantID] == nil {
		b.subs[participantID] = make(map[chan []byte]struct{})
	}
	b.subs[participantID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the participant's subscribers.
func (b *Broker) Unsubscribe(participantID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[participantID], ch)
	if len(b.subs[participantID]) == 0 {
		delete(b.subs, participantID)
	}
	b.mu.Unlock()
}

// Publish sends an event to one participant's subscribers.
func (b *Broker) Publish(participantID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[participantID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// Broadcast sends an event to the given participants.
func (b *Broker) Broadcast(participantIDs []string, event Event) {
	for _, id := range participantIDs {
		b.Publish(id, event)
	}
}
