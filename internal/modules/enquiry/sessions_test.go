package enquiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestManager(ttl time.Duration) *SessionManager {
	gate := NewGate(3*time.Second, 3*time.Second)
	return NewSessionManager(ttl, func() *Orchestrator {
		return NewOrchestrator(gate, new(MockDeliverer), NewPersister(new(MockEnquiryWriter)), nil, time.Hour)
	})
}

func TestSessionManager_SameKeySameOrchestrator(t *testing.T) {
	m := newTestManager(time.Hour)

	first := m.Get("token:abc")
	second := m.Get("token:abc")
	other := m.Get("token:xyz")

	assert.Same(t, first, second, "remounts must land on the same session state")
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, m.Len())
}

func TestSessionManager_PeekNeverAllocates(t *testing.T) {
	m := newTestManager(time.Hour)

	assert.Nil(t, m.Peek("token:unknown"))
	assert.Equal(t, 0, m.Len())

	created := m.Get("token:known")
	assert.Same(t, created, m.Peek("token:known"))
	assert.Equal(t, 1, m.Len())
}

func TestSessionManager_CleanupExpired(t *testing.T) {
	m := newTestManager(10 * time.Minute)

	m.Get("token:old")
	m.Get("token:fresh")

	removed := m.CleanupExpired(time.Now().Add(20 * time.Minute))
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, m.Len())
}

func TestSessionManager_CleanupKeepsFreshSessions(t *testing.T) {
	m := newTestManager(10 * time.Minute)

	m.Get("token:a")

	removed := m.CleanupExpired(time.Now().Add(5 * time.Minute))
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, m.Len())
}

func TestSessionManager_CleanupSkipsInFlightSubmission(t *testing.T) {
	m := newTestManager(10 * time.Minute)

	orch := m.Get("token:busy")
	orch.sm.BeginSubmitting()

	removed := m.CleanupExpired(time.Now().Add(20 * time.Minute))
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, m.Len())
}
