package enquiry

import (
	"log"
	"sync"
	"time"
)

// SessionManager holds one orchestrator per logical form session. The
// rate-limit clock lives in the orchestrator, so a client remounting its
// form (new page, new tab) keeps hitting the same session state instead
// of a fresh one.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	factory  func() *Orchestrator
}

type session struct {
	orch     *Orchestrator
	lastSeen time.Time
}

func NewSessionManager(ttl time.Duration, factory func() *Orchestrator) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		factory:  factory,
	}
}

// Get returns the orchestrator for the given session key, creating it on
// first use and refreshing its eviction deadline.
func (m *SessionManager) Get(key string) *Orchestrator {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[key]; ok {
		s.lastSeen = now
		return s.orch
	}

	s := &session{orch: m.factory(), lastSeen: now}
	m.sessions[key] = s
	return s.orch
}

// Peek returns the orchestrator for the given key, or nil if the session
// does not exist. Unlike Get it never creates one, so probing unknown
// session tokens cannot grow the registry.
func (m *SessionManager) Peek(key string) *Orchestrator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[key]; ok {
		return s.orch
	}
	return nil
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupExpired drops sessions idle longer than the TTL. A session still
// in Submitting is kept; evicting it would orphan its in-flight attempt.
func (m *SessionManager) CleanupExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, s := range m.sessions {
		if now.Sub(s.lastSeen) < m.ttl {
			continue
		}
		if s.orch.State() == StateSubmitting {
			continue
		}
		delete(m.sessions, key)
		removed++
	}
	return removed
}

// ScheduleCleanup starts a background goroutine that periodically evicts
// idle sessions. Returns a channel that stops it when closed.
func (m *SessionManager) ScheduleCleanup(interval time.Duration) chan struct{} {
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := m.CleanupExpired(time.Now()); removed > 0 {
					log.Printf("session cleanup: removed %d idle form sessions", removed)
				}
			case <-stopCh:
				log.Println("session cleanup stopped")
				return
			}
		}
	}()

	log.Printf("session cleanup started with interval %v", interval)
	return stopCh
}
