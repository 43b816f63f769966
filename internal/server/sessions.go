package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iw2rmb/doxx/document"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// Session is one editing session. Its snapshot only changes through Update,
// which serializes command batches.
type Session struct {
	ID      string
	Created time.Time

	mu  sync.Mutex
	doc document.Document
}

// Snapshot returns the current document.
func (s *Session) Snapshot() document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Update replaces the snapshot with the result of fn. When fn fails the
// snapshot is left as it was.
func (s *Session) Update(fn func(document.Document) (document.Document, error)) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.doc)
	if err != nil {
		return s.doc, err
	}
	s.doc = next
	return next, nil
}

// Store holds live sessions keyed by UUID.
type Store struct {
	mu       sync.RWMutex
	limit    int
	sessions map[string]*Session
}

// NewStore creates a store holding at most limit sessions; zero means no limit.
func NewStore(limit int) *Store {
	return &Store{limit: limit, sessions: make(map[string]*Session)}
}

func (st *Store) Create(d document.Document) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.limit > 0 && len(st.sessions) >= st.limit {
		return nil, ErrTooManySessions
	}
	s := &Session{
		ID:      uuid.New().String(),
		Created: time.Now(),
		doc:     d,
	}
	st.sessions[s.ID] = s
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
