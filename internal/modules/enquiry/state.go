package enquiry

import (
	"sync"
	"time"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// ErrorKind discriminates the three fixed user-facing error messages.
type ErrorKind string

const (
	ErrorNone           ErrorKind = ""
	ErrorConsentMissing ErrorKind = "consent_missing"
	ErrorRateLimited    ErrorKind = "rate_limited"
	ErrorDeliveryFailed ErrorKind = "delivery_failed"
)

// StateMachine tracks the submission lifecycle of one form session:
// Idle -> Submitting -> {Success, Error} -> Idle. Terminal states return
// to Idle on their own after resetDelay.
type StateMachine struct {
	mu         sync.Mutex
	state      State
	errKind    ErrorKind
	resetDelay time.Duration
	resetTimer *time.Timer
}

func NewStateMachine(resetDelay time.Duration) *StateMachine {
	return &StateMachine{
		state:      StateIdle,
		resetDelay: resetDelay,
	}
}

func (sm *StateMachine) State() State {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state
}

func (sm *StateMachine) ErrorKind() ErrorKind {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.errKind
}

// BeginSubmitting moves the machine into Submitting before any network
// call happens, so a racing second submission observes it and is turned
// away. It also stops a pending auto-reset so a stale timer cannot wipe
// the state this submission is about to produce. Returns false while a
// previous submission is still in flight.
func (sm *StateMachine) BeginSubmitting() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.state == StateSubmitting {
		return false
	}

	sm.stopResetLocked()
	sm.state = StateSubmitting
	sm.errKind = ErrorNone
	return true
}

// Succeed enters the Success terminal state and schedules the auto-reset.
func (sm *StateMachine) Succeed() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stopResetLocked()
	sm.state = StateSuccess
	sm.errKind = ErrorNone
	sm.scheduleResetLocked()
}

// Fail enters the Error terminal state with the given message kind and
// schedules the auto-reset.
func (sm *StateMachine) Fail(kind ErrorKind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stopResetLocked()
	sm.state = StateError
	sm.errKind = kind
	sm.scheduleResetLocked()
}

func (sm *StateMachine) scheduleResetLocked() {
	var t *time.Timer
	t = time.AfterFunc(sm.resetDelay, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		// A submission that started after this timer was armed has replaced
		// it; a stale timer must not touch the newer state.
		if sm.resetTimer != t {
			return
		}
		sm.state = StateIdle
		sm.errKind = ErrorNone
		sm.resetTimer = nil
	})
	sm.resetTimer = t
}

func (sm *StateMachine) stopResetLocked() {
	if sm.resetTimer != nil {
		sm.resetTimer.Stop()
		sm.resetTimer = nil
	}
}
