package repository

import (
	"context"
	"sync"
	"time"

	"neuratek-relay/internal/models"
)

type sessionLog struct {
	messages []models.Message
	lastSeen time.Time
}

// MemoryConversationRepo keeps sessions in process memory. It is the
// default store when no Redis URL is configured; sessions do not
// survive a restart.
type MemoryConversationRepo struct {
	mu       sync.Mutex
	sessions map[string]*sessionLog
	ttl      time.Duration
	maxTurns int
}

func NewMemoryConversationRepo(ttl time.Duration, maxTurns int) *MemoryConversationRepo {
	r := &MemoryConversationRepo{
		sessions: make(map[string]*sessionLog),
		ttl:      ttl,
		maxTurns: maxTurns,
	}

	// Cleanup goroutine
	if ttl > 0 {
		go func() {
			for {
				time.Sleep(ttl)
				r.mu.Lock()
				for id, s := range r.sessions {
					if time.Since(s.lastSeen) > ttl {
						delete(r.sessions, id)
					}
				}
				r.mu.Unlock()
			}
		}()
	}

	return r
}

func (r *MemoryConversationRepo) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if r.ttl > 0 && time.Since(s.lastSeen) > r.ttl {
		delete(r.sessions, sessionID)
		return nil, nil
	}

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (r *MemoryConversationRepo) Append(ctx context.Context, sessionID string, messages ...models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &sessionLog{}
		r.sessions[sessionID] = s
	}

	s.messages = append(s.messages, messages...)
	if r.maxTurns > 0 && len(s.messages) > r.maxTurns {
		s.messages = s.messages[len(s.messages)-r.maxTurns:]
	}
	s.lastSeen = time.Now()

	return nil
}
