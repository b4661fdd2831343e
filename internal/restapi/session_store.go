package restapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"askdata.insights.org/internal/query"
)

type storedSession struct {
	session  *query.Session
	lastSeen time.Time
}

// sessionStore keeps the open query sessions, keyed by UUID. Sessions left
// untouched for idleTTL are swept by a background goroutine until stop.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*storedSession
	now      func() time.Time

	idleTTL  time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func newSessionStore(idleTTL time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*storedSession),
		now:      time.Now,
		idleTTL:  idleTTL,
		done:     make(chan struct{}),
	}
}

// start runs the idle sweep, calling onSweep after every pass that removed
// sessions. It does nothing when idleTTL is not positive.
func (s *sessionStore) start(onSweep func(removed int)) {
	if s.idleTTL <= 0 {
		return
	}
	interval := s.idleTTL / 2
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				if removed := s.sweep(); removed > 0 && onSweep != nil {
					onSweep(removed)
				}
			}
		}
	}()
}

// stop ends the sweep goroutine. It is safe to call more than once.
func (s *sessionStore) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *sessionStore) create(session *query.Session) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &storedSession{session: session, lastSeen: s.now()}
	return id
}

// get returns the session and marks it as used.
func (s *sessionStore) get(id string) (*query.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	stored.lastSeen = s.now()
	return stored.session, true
}

// delete clears and removes a session. It reports whether the session existed.
func (s *sessionStore) delete(id string) bool {
	s.mu.Lock()
	stored, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		stored.session.Clear()
	}
	return ok
}

// sweep removes sessions idle for at least idleTTL. Sessions with a
// submission in flight count as used.
func (s *sessionStore) sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	var expired []*query.Session
	s.mu.Lock()
	for id, stored := range s.sessions {
		if stored.session.State().Processing {
			stored.lastSeen = s.now()
			continue
		}
		if stored.lastSeen.After(cutoff) {
			continue
		}
		delete(s.sessions, id)
		expired = append(expired, stored.session)
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Clear()
	}
	return len(expired)
}

// clear removes every session, discarding in-flight submissions.
func (s *sessionStore) clear() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*storedSession)
	s.mu.Unlock()

	for _, stored := range sessions {
		stored.session.Clear()
	}
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
