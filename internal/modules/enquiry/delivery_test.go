package enquiry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagency/internal/domain"
)

func testEnquiry() *domain.Enquiry {
	return &domain.Enquiry{
		FullName:        "Jo",
		Email:           "jo@x.com",
		Message:         "Hi",
		Source:          "website",
		DeliveryChannel: domain.ChannelPrimary,
		Status:          domain.EnquiryNew,
	}
}

func TestCoordinator_DeliverSuccess(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody crmPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCoordinator(srv.URL, "secret-token", time.Second)
	err := c.Deliver(context.Background(), testEnquiry())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "/api/website-enquiry", gotPath)
	assert.Equal(t, "Jo", gotBody.FullName)
	assert.Equal(t, "jo@x.com", gotBody.Email)
}

func TestCoordinator_DeliverAccepts2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewCoordinator(srv.URL, "s", time.Second)
	assert.NoError(t, c.Deliver(context.Background(), testEnquiry()))
}

func TestCoordinator_DeliverErrorBodyParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"missing full_name"}`))
	}))
	defer srv.Close()

	c := NewCoordinator(srv.URL, "s", time.Second)
	err := c.Deliver(context.Background(), testEnquiry())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing full_name")
}

func TestCoordinator_DeliverErrorBodyUnparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	c := NewCoordinator(srv.URL, "s", time.Second)
	err := c.Deliver(context.Background(), testEnquiry())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCoordinator_DeliverTimeout(t *testing.T) {
	release := make(chan struct{})
	var completed atomic.Bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		completed.Store(true)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCoordinator(srv.URL, "s", 50*time.Millisecond)

	start := time.Now()
	err := c.Deliver(context.Background(), testEnquiry())
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrDeliveryTimeout)
	assert.Less(t, elapsed, 500*time.Millisecond, "caller must not be blocked past the timeout")
	assert.False(t, completed.Load(), "request should still be in flight when the timeout fires")

	// The orphaned request is allowed to finish in the background.
	close(release)
	assert.Eventually(t, func() bool { return completed.Load() }, time.Second, 5*time.Millisecond)
}

func TestCoordinator_DeliverConnectionRefused(t *testing.T) {
	c := NewCoordinator("http://127.0.0.1:1", "s", time.Second)
	err := c.Deliver(context.Background(), testEnquiry())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeliveryTimeout)
}
