package sessionmanagement

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

// ErrSessionNotFound is returned when a session ID has no live session,
// either because it expired, was finalized, or never existed.
var ErrSessionNotFound = errors.New("session not found")

// liveSession pairs a runner with the bookkeeping the registry needs. The
// mutex serializes handler access to one session; sessions never share state,
// so there is no cross-session locking.
type liveSession struct {
	mu           sync.Mutex
	runner       *sessionengine.SessionRunner
	provider     string
	lastActivity time.Time
}

func (ls *liveSession) touch() {
	ls.lastActivity = time.Now()
}

// SessionRegistry holds the in-memory live sessions, one per tester run.
// Finalized sessions leave the registry; abandoned ones are reaped by the
// janitor.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*liveSession)}
}

func (reg *SessionRegistry) add(runner *sessionengine.SessionRunner, provider string) *liveSession {
	ls := &liveSession{
		runner:       runner,
		provider:     provider,
		lastActivity: time.Now(),
	}
	reg.mu.Lock()
	reg.sessions[runner.Session().ID] = ls
	reg.mu.Unlock()
	return ls
}

func (reg *SessionRegistry) get(sessionID string) (*liveSession, error) {
	reg.mu.RLock()
	ls, ok := reg.sessions[sessionID]
	reg.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (expired, finalized, or never started)", ErrSessionNotFound, sessionID)
	}
	return ls, nil
}

func (reg *SessionRegistry) remove(sessionID string) {
	reg.mu.Lock()
	delete(reg.sessions, sessionID)
	reg.mu.Unlock()
}

// Count returns the number of live sessions.
func (reg *SessionRegistry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.sessions)
}

// ExpireIdle drops sessions with no activity for at least ttl and returns how
// many were removed. Expired sessions are simply forgotten; they were never
// finalized, so there is nothing to archive.
func (reg *SessionRegistry) ExpireIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for id, ls := range reg.sessions {
		if ls.lastActivity.Before(cutoff) {
			delete(reg.sessions, id)
			removed++
			log.Printf("Expired idle session %s (last activity %s).", id, ls.lastActivity.Format(time.RFC3339))
		}
	}
	return removed
}
