package assistant

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationStore_TrimOldestFirst(t *testing.T) {
	s := NewConversationStore(3)
	for i := 0; i < 5; i++ {
		s.Append("u1", HistoryMessage{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	h := s.Recent("u1", 0)
	assert.Len(t, h, 3)
	assert.Equal(t, "m2", h[0].Content)
	assert.Equal(t, "m4", h[2].Content)
}

func TestConversationStore_RecentWindow(t *testing.T) {
	s := NewConversationStore(20)
	for i := 0; i < 6; i++ {
		s.Append("u1", HistoryMessage{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	h := s.Recent("u1", 2)
	assert.Len(t, h, 2)
	assert.Equal(t, "m4", h[0].Content)
	assert.Equal(t, "m5", h[1].Content)

	assert.Empty(t, s.Recent("unknown", 5))
}

func TestConversationStore_PerUserIsolation(t *testing.T) {
	s := NewConversationStore(10)
	s.Append("u1", HistoryMessage{Role: "user", Content: "hello"})
	s.Append("u2", HistoryMessage{Role: "user", Content: "goodbye"})

	assert.Len(t, s.Recent("u1", 0), 1)
	assert.Len(t, s.Recent("u2", 0), 1)

	s.Clear("u1")
	assert.Empty(t, s.Recent("u1", 0))
	assert.Len(t, s.Recent("u2", 0), 1)
}

func TestConversationStore_ConcurrentAppends(t *testing.T) {
	s := NewConversationStore(20)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append("u1", HistoryMessage{Role: "user", Content: fmt.Sprintf("m%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Recent("u1", 0), 20)
}
