package session

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/exam-portal/internal/models"
)

// MemoryStore keeps sessions in process. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]models.Session
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Create(ctx context.Context, principal models.Principal) (*models.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sess := models.Session{
		Token:     token,
		UserID:    principal.UserID,
		Email:     principal.Email,
		Name:      principal.Name,
		Role:      principal.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()
	return &sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, token)
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
