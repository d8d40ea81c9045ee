package assistant

import "sync"

// HistoryMessage is one prior exchange in a user's conversation.
type HistoryMessage struct {
	Role    string
	Content string
}

// ConversationStore holds a bounded per-user conversation history. It is
// injected into the dispatcher rather than held as package state. Append
// trims oldest-first under a single lock so concurrent messages cannot
// observe a history above the limit.
type ConversationStore struct {
	mu     sync.Mutex
	limit  int
	byUser map[string][]HistoryMessage
}

// NewConversationStore creates a store that keeps at most limit messages
// per user.
func NewConversationStore(limit int) *ConversationStore {
	if limit <= 0 {
		limit = 20
	}
	return &ConversationStore{limit: limit, byUser: make(map[string][]HistoryMessage)}
}

// Append records a message and evicts the oldest entries beyond the limit
// as one atomic update.
func (s *ConversationStore) Append(userID string, m HistoryMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.byUser[userID], m)
	if len(h) > s.limit {
		h = h[len(h)-s.limit:]
	}
	s.byUser[userID] = h
}

// Recent returns up to n most recent messages for the user, oldest first.
func (s *ConversationStore) Recent(userID string, n int) []HistoryMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.byUser[userID]
	if n > 0 && len(h) > n {
		h = h[len(h)-n:]
	}
	out := make([]HistoryMessage, len(h))
	copy(out, h)
	return out
}

// Clear drops a user's history.
func (s *ConversationStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}
