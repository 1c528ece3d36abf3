package enquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(deliverer Deliverer, writer EnquiryWriter) (*gin.Engine, *SessionManager) {
	gin.SetMode(gin.TestMode)

	gate := NewGate(3*time.Second, 3*time.Second)
	sessions := NewSessionManager(time.Hour, func() *Orchestrator {
		return NewOrchestrator(gate, deliverer, NewPersister(writer), nil, time.Hour)
	})

	r := gin.New()
	v1 := r.Group("/api/v1")
	RegisterPublicRoutes(v1, NewHandler(sessions, nil))
	return r, sessions
}

func submitBody(consent bool, honeypot string, renderedAgo time.Duration) []byte {
	body, _ := json.Marshal(SubmitEnquiryRequest{
		Name:           "Jo",
		Email:          "jo@x.com",
		Message:        "Hi",
		ConsentGiven:   consent,
		FormRenderedAt: time.Now().Add(-renderedAgo).UnixMilli(),
		Website:        honeypot,
	})
	return body
}

func doSubmit(r *gin.Engine, session string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_SubmitDelivered(t *testing.T) {
	deliverer := new(MockDeliverer)
	deliverer.On("Deliver", mock.Anything, mock.Anything).Return(nil).Once()

	r, _ := newTestRouter(deliverer, new(MockEnquiryWriter))
	w := doSubmit(r, "s1", submitBody(true, "", 4*time.Second))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received"`)
	deliverer.AssertExpectations(t)
}

func TestHandler_SubmitInvalidJSON(t *testing.T) {
	r, _ := newTestRouter(new(MockDeliverer), new(MockEnquiryWriter))
	w := doSubmit(r, "s1", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_JSON")
}

func TestHandler_SubmitValidationError(t *testing.T) {
	r, _ := newTestRouter(new(MockDeliverer), new(MockEnquiryWriter))

	body, _ := json.Marshal(SubmitEnquiryRequest{
		Name:           "Jo",
		Email:          "not-an-email",
		Message:        "Hi",
		ConsentGiven:   true,
		FormRenderedAt: time.Now().UnixMilli(),
	})
	w := doSubmit(r, "s1", body)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_SubmitHoneypotMaskedAsSuccess(t *testing.T) {
	deliverer := new(MockDeliverer)
	r, _ := newTestRouter(deliverer, new(MockEnquiryWriter))

	w := doSubmit(r, "s1", submitBody(true, "http://spam.example", 4*time.Second))

	// The response is byte-for-byte the same shape as a real success.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received"`)
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestHandler_SubmitConsentMissing(t *testing.T) {
	r, _ := newTestRouter(new(MockDeliverer), new(MockEnquiryWriter))
	w := doSubmit(r, "s1", submitBody(false, "", 4*time.Second))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CONSENT_REQUIRED")
}

func TestHandler_SubmitRateLimited(t *testing.T) {
	deliverer := new(MockDeliverer)
	deliverer.On("Deliver", mock.Anything, mock.Anything).Return(nil).Once()

	r, _ := newTestRouter(deliverer, new(MockEnquiryWriter))

	first := doSubmit(r, "s1", submitBody(true, "", 4*time.Second))
	require.Equal(t, http.StatusOK, first.Code)

	second := doSubmit(r, "s1", submitBody(true, "", 4*time.Second))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "TOO_SOON")
	deliverer.AssertNumberOfCalls(t, "Deliver", 1)
}

func TestHandler_SessionsAreIndependent(t *testing.T) {
	deliverer := new(MockDeliverer)
	deliverer.On("Deliver", mock.Anything, mock.Anything).Return(nil).Times(2)

	r, _ := newTestRouter(deliverer, new(MockEnquiryWriter))

	first := doSubmit(r, "s1", submitBody(true, "", 4*time.Second))
	require.Equal(t, http.StatusOK, first.Code)

	// A different session is not throttled by the first one.
	second := doSubmit(r, "s2", submitBody(true, "", 4*time.Second))
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestHandler_SubmitInProgressTurnedAway(t *testing.T) {
	deliverer := new(MockDeliverer)
	r, sessions := newTestRouter(deliverer, new(MockEnquiryWriter))

	// Put the session into Submitting as an in-flight request would.
	orch := sessions.Get("token:s1")
	require.True(t, orch.sm.BeginSubmitting())

	w := doSubmit(r, "s1", submitBody(true, "", 4*time.Second))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "SUBMIT_IN_PROGRESS")
	deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestHandler_ClientDisconnectDoesNotAbortDelivery(t *testing.T) {
	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(120 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer crm.Close()

	writer := new(MockEnquiryWriter)
	coordinator := NewCoordinator(crm.URL, "secret", time.Second)
	r, _ := newTestRouter(coordinator, writer)

	// The visitor closes the tab while the CRM call is in flight. The
	// attempt must run to completion anyway: no canceled delivery, no
	// poisoned fallback write, no fabricated total failure.
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enquiries", bytes.NewReader(submitBody(true, "", 4*time.Second)))
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "s1")

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received"`)
	writer.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_GetStateUnknownSessionCreatesNothing(t *testing.T) {
	r, sessions := newTestRouter(new(MockDeliverer), new(MockEnquiryWriter))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries/state", nil)
	req.Header.Set(SessionHeader, "never-seen")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("%q", StateIdle))
	assert.Equal(t, 0, sessions.Len())
}

func TestHandler_NewSessionIssuesToken(t *testing.T) {
	r, _ := newTestRouter(new(MockDeliverer), new(MockEnquiryWriter))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Session string `json:"session"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Session)
}

func TestHandler_GetStateReflectsSession(t *testing.T) {
	deliverer := new(MockDeliverer)
	deliverer.On("Deliver", mock.Anything, mock.Anything).Return(nil).Once()

	r, _ := newTestRouter(deliverer, new(MockEnquiryWriter))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries/state", nil)
	req.Header.Set(SessionHeader, "s1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("%q", StateIdle))

	submitRes := doSubmit(r, "s1", submitBody(true, "", 4*time.Second))
	require.Equal(t, http.StatusOK, submitRes.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("%q", StateSuccess))
}
