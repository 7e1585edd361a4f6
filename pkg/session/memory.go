package session

import (
	"context"
	"sync"
)

// MemoryStore is the default ledger: an append-only in-process list guarded
// by a mutex. Lifetime is the process lifetime; Clear empties it wholesale.
//
// The store holds its own copies and hands out copies: callers mutate their
// session freely between Update calls while readers serve a consistent
// snapshot, so a status poll during a running pipeline never races the
// pipeline's writes.
type MemoryStore struct {
	mu       sync.Mutex
	sessions []*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

// clone copies a session deeply enough to detach it from the caller: the
// steps slice gets its own backing array. The stage results are pointers to
// bundles that are never mutated once attached, so sharing them is safe.
func clone(s *Session) *Session {
	out := *s
	out.StepsCompleted = append([]string(nil), s.StepsCompleted...)
	return &out
}

func (m *MemoryStore) Append(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, clone(s))
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return clone(s), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) List(ctx context.Context) ([]*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, len(m.sessions))
	for i, s := range m.sessions {
		out[i] = clone(s)
	}
	return out, nil
}

func (m *MemoryStore) Update(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.sessions {
		if existing.ID == s.ID {
			m.sessions[i] = clone(s)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = nil
	return nil
}
