package conversation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentContext_Empty(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "No previous conversation context.", s.RecentContext(1))
	assert.Equal(t, NoContext, s.RecentContext(5))
}

func TestRecentContext_Window(t *testing.T) {
	s := NewStore()
	s.Append(Exchange{Input: "q1", Output: "a1", Timestamp: time.Now()})
	s.Append(Exchange{Input: "q2", Output: "a2", Timestamp: time.Now()})
	s.Append(Exchange{Input: "q3", Output: "a3", Timestamp: time.Now()})

	tests := []struct {
		n    int
		want string
	}{
		{1, "User: q3\nMAYA: a3"},
		{0, "User: q3\nMAYA: a3"},
		{-2, "User: q3\nMAYA: a3"},
		{2, "User: q2\nMAYA: a2\nUser: q3\nMAYA: a3"},
		{10, "User: q1\nMAYA: a1\nUser: q2\nMAYA: a2\nUser: q3\nMAYA: a3"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, s.RecentContext(tt.n))
		})
	}
}

func TestHistory_IsCopyInOrder(t *testing.T) {
	s := NewStore()
	s.Append(Exchange{Input: "first"})
	s.Append(Exchange{Input: "second"})

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "first", h[0].Input)
	assert.Equal(t, "second", h[1].Input)

	h[0].Input = "mutated"
	assert.Equal(t, "first", s.History()[0].Input)
}

func TestClear_ResetsHistoryAndTopic(t *testing.T) {
	s := NewStore()
	s.Append(Exchange{Input: "q", Output: "a"})
	s.SetTopic("jazz")

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Topic())
	assert.Equal(t, NoContext, s.RecentContext(1))
}

func TestStore_ConcurrentReadersAndWriter(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Append(Exchange{Input: fmt.Sprintf("q%d", i)})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.RecentContext(DefaultContextWindow)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
