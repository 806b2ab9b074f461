// Package conversation holds the per-session turn history.
package conversation

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// NoContext is the context text used before the first exchange
const NoContext = "No previous conversation context."

// DefaultContextWindow is how many recent exchanges feed a new turn
const DefaultContextWindow = 1

// Exchange is one committed user/assistant pair
type Exchange struct {
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is an append-only exchange history. Only Clear removes entries.
type Store struct {
	mu        sync.RWMutex
	exchanges []Exchange
	topic     string
}

// NewStore creates an empty history
func NewStore() *Store {
	return &Store{}
}

// Append commits an exchange at the end of the history
func (s *Store) Append(e Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, e)
}

// RecentContext renders the last n exchanges for prompt embedding.
// n <= 0 is treated as 1.
func (s *Store) RecentContext(n int) string {
	if n <= 0 {
		n = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.exchanges) == 0 {
		return NoContext
	}
	start := len(s.exchanges) - n
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, len(s.exchanges)-start)
	for _, e := range s.exchanges[start:] {
		lines = append(lines, fmt.Sprintf("User: %s\nMAYA: %s", e.Input, e.Output))
	}
	return strings.Join(lines, "\n")
}

// History returns a copy of every exchange, oldest first
func (s *Store) History() []Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// Len reports the number of committed exchanges
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exchanges)
}

// Clear empties the history and the current topic
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = nil
	s.topic = ""
}

// SetTopic records the current-topic pointer. The orchestrator sets it to the
// delegation decision of the last committed turn.
func (s *Store) SetTopic(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topic = topic
}

func (s *Store) Topic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topic
}
