package enquiry

import (
	"context"
	"log"
	"sync"
	"time"

	"travelagency/internal/domain"
)

// Deliverer attempts the primary channel once, bounded by its timeout.
type Deliverer interface {
	Deliver(ctx context.Context, e *domain.Enquiry) error
}

// FallbackStore persists an enquiry the primary channel refused.
type FallbackStore interface {
	Persist(ctx context.Context, e *domain.Enquiry) error
}

// Publisher fans an accepted enquiry out to back-office listeners.
// Optional; a nil publisher is skipped.
type Publisher interface {
	PublishEnquiry(e *domain.Enquiry)
}

// Orchestrator drives one form session through gate, delivery, fallback
// and the state machine. It owns the session's rate-limit clock and the
// auto-reset timer, so form remounts on the client cannot bypass either.
type Orchestrator struct {
	gate     *Gate
	delivery Deliverer
	fallback FallbackStore
	feed     Publisher
	sm       *StateMachine

	// mu serializes gate evaluation and the Submitting transition so two
	// near-simultaneous requests for one session cannot both pass the gate.
	// Delivery itself runs outside the lock.
	mu           sync.Mutex
	lastSubmitAt time.Time
	now          func() time.Time
}

func NewOrchestrator(gate *Gate, delivery Deliverer, fallback FallbackStore, feed Publisher, resetDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		gate:     gate,
		delivery: delivery,
		fallback: fallback,
		feed:     feed,
		sm:       NewStateMachine(resetDelay),
		now:      time.Now,
	}
}

// State exposes the lifecycle to the presentation layer.
func (o *Orchestrator) State() State { return o.sm.State() }

// ErrorKind exposes which of the three fixed messages to render.
func (o *Orchestrator) ErrorKind() ErrorKind { return o.sm.ErrorKind() }

// Submit runs the full pipeline for one attempt. Every failure mode is
// converted into an Outcome; no error escapes this method.
func (o *Orchestrator) Submit(ctx context.Context, draft Draft, honeypot string, formRenderedAt time.Time) Outcome {
	o.mu.Lock()
	now := o.now()
	meta := Metadata{
		FormRenderedAt: formRenderedAt,
		SubmittedAt:    now,
		Honeypot:       honeypot,
		LastSubmitAt:   o.lastSubmitAt,
	}

	decision := o.gate.Evaluate(meta, draft, now)
	switch decision {
	case HardRejectRateLimit:
		o.mu.Unlock()
		o.sm.Fail(ErrorRateLimited)
		return Outcome{Kind: OutcomeRejectedRateLimit}
	case HardRejectConsent:
		o.mu.Unlock()
		o.sm.Fail(ErrorConsentMissing)
		return Outcome{Kind: OutcomeRejectedConsent}
	case SoftRejectSpam:
		o.mu.Unlock()
		// Masked as success so the sender learns nothing. No network call.
		log.Printf("enquiry pipeline: suppressed spam submission source=%q honeypot_set=%t", draft.Source, honeypot != "")
		o.sm.Succeed()
		return Outcome{Kind: OutcomeSuppressed}
	}

	if !o.sm.BeginSubmitting() {
		// The caller should have turned this away while Submitting; treat a
		// slip-through as rate limited rather than racing the first attempt.
		o.mu.Unlock()
		return Outcome{Kind: OutcomeRejectedRateLimit, Err: ErrSubmitInProgress}
	}
	o.lastSubmitAt = now
	o.mu.Unlock()

	e := &domain.Enquiry{
		FullName:        draft.Name,
		Email:           draft.Email,
		Phone:           draft.Phone,
		Message:         draft.Message,
		Source:          draft.Source,
		OfferID:         draft.OfferID,
		OfferTitle:      draft.OfferTitle,
		DeliveryChannel: domain.ChannelPrimary,
		Status:          domain.EnquiryNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	deliverErr := o.delivery.Deliver(ctx, e)
	if deliverErr == nil {
		o.sm.Succeed()
		o.publish(e)
		return Outcome{Kind: OutcomeDelivered, Channel: domain.ChannelPrimary}
	}

	log.Printf("enquiry pipeline: primary delivery failed, falling back: %v", deliverErr)

	if err := o.fallback.Persist(ctx, e); err != nil {
		log.Printf("enquiry pipeline: fallback persist failed, lead may be lost: %v", err)
		o.sm.Fail(ErrorDeliveryFailed)
		return Outcome{Kind: OutcomeFailed, Err: err}
	}

	// A recovered fallback looks like a plain success to the visitor; the
	// true channel stays in the record so operators can watch fallback volume.
	log.Printf("enquiry pipeline: enquiry %d delivered via fallback store", e.ID)
	o.sm.Succeed()
	o.publish(e)
	return Outcome{Kind: OutcomeDelivered, Channel: domain.ChannelFallback}
}

func (o *Orchestrator) publish(e *domain.Enquiry) {
	if o.feed != nil {
		o.feed.PublishEnquiry(e)
	}
}
