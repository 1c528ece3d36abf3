package enquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"travelagency/internal/domain"
)

// crmPayload is the wire format of the CRM webhook.
type crmPayload struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Message    string `json:"message"`
	Source     string `json:"source"`
	OfferID    *int64 `json:"offer_id,omitempty"`
	OfferTitle string `json:"offer_title,omitempty"`
}

type crmErrorBody struct {
	Error string `json:"error"`
}

// Coordinator performs a single authenticated POST to the CRM webhook,
// raced against a timeout. It never retries; retry policy, if it ever
// exists, belongs to the orchestrator.
type Coordinator struct {
	client  *http.Client
	baseURL string
	secret  string
	timeout time.Duration
}

func NewCoordinator(baseURL, secret string, timeout time.Duration) *Coordinator {
	return &Coordinator{
		client:  &http.Client{},
		baseURL: baseURL,
		secret:  secret,
		timeout: timeout,
	}
}

// Deliver hands the enquiry to the CRM. If the timeout fires first the
// attempt is abandoned logically: the in-flight request keeps running in a
// detached goroutine whose eventual result is only logged, never acted on.
// No network cancellation is issued on purpose, so a slow CRM may still
// land the lead even after we have reported the attempt as failed.
func (c *Coordinator) Deliver(ctx context.Context, e *domain.Enquiry) error {
	done := make(chan error, 1)
	go func() {
		done <- c.post(e)
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		c.detach(done)
		return ctx.Err()
	case <-timer.C:
		c.detach(done)
		return ErrDeliveryTimeout
	}
}

// detach drains the orphaned attempt so its goroutine can exit; the result
// is recorded for operators but has no effect on pipeline state.
func (c *Coordinator) detach(done <-chan error) {
	go func() {
		if err := <-done; err != nil {
			log.Printf("enquiry delivery: abandoned attempt finished with error: %v", err)
		} else {
			log.Printf("enquiry delivery: abandoned attempt succeeded after timeout")
		}
	}()
}

func (c *Coordinator) post(e *domain.Enquiry) error {
	body, err := json.Marshal(crmPayload{
		FullName:   e.FullName,
		Email:      e.Email,
		Phone:      e.Phone,
		Message:    e.Message,
		Source:     e.Source,
		OfferID:    e.OfferID,
		OfferTitle: e.OfferTitle,
	})
	if err != nil {
		return fmt.Errorf("encode crm payload: %w", err)
	}

	// Deliberately not bound to the request context: the attempt must be
	// allowed to finish in the background after the caller has moved on.
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, c.baseURL+"/api/website-enquiry", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build crm request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("crm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return fmt.Errorf("crm rejected enquiry: %s", crmErrorMessage(resp))
}

func crmErrorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body crmErrorBody
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil && body.Error != "" {
			return body.Error
		}
	}
	return resp.Status
}
