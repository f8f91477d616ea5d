package server

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	astar "github.com/arcanis/astar-wasm"
)

// ErrSessionNotFound is returned for an id the store does not hold.
var ErrSessionNotFound = errors.New("session not found")

// session is one visualiser run. mu serialises Step calls on the stepper.
type session struct {
	mu      sync.Mutex
	grid    *astar.CostGrid
	start   astar.Point
	goal    astar.Point
	stepper *astar.Stepper
	last    astar.StepSnapshot
}

func (s *session) step() astar.StepSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = s.stepper.Step()
	return s.last
}

func (s *session) path() []astar.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Path
}

// sessionStore keeps at most limit sessions in memory. Adding past the limit
// evicts the oldest session.
type sessionStore struct {
	mu       sync.RWMutex
	limit    int
	order    []uuid.UUID
	sessions map[uuid.UUID]*session
}

func newSessionStore(limit int) *sessionStore {
	return &sessionStore{limit: max(limit, 1), sessions: make(map[uuid.UUID]*session)}
}

// add stores s under a new id and returns the ids it evicted to make room.
func (st *sessionStore) add(s *session) (uuid.UUID, []uuid.UUID) {
	id := uuid.New()
	st.mu.Lock()
	defer st.mu.Unlock()

	var evicted []uuid.UUID
	for len(st.order) >= st.limit {
		oldest := st.order[0]
		st.order = st.order[1:]
		delete(st.sessions, oldest)
		evicted = append(evicted, oldest)
	}
	st.sessions[id] = s
	st.order = append(st.order, id)
	return id, evicted
}

func (st *sessionStore) count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *sessionStore) get(id uuid.UUID) (*session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *sessionStore) remove(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	st.order = slices.DeleteFunc(st.order, func(other uuid.UUID) bool { return other == id })
	return nil
}
