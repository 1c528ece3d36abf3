package enquiry

import "time"

// Decision is the gate's verdict on a single submission attempt.
type Decision int

const (
	Allow Decision = iota
	SoftRejectSpam
	HardRejectRateLimit
	HardRejectConsent
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case SoftRejectSpam:
		return "soft_reject_spam"
	case HardRejectRateLimit:
		return "hard_reject_rate_limit"
	case HardRejectConsent:
		return "hard_reject_consent"
	default:
		return "unknown"
	}
}

// Draft is a visitor-submitted lead form, owned by the caller until it
// passes the gate.
type Draft struct {
	Name         string
	Email        string
	Phone        string
	Message      string
	Source       string
	OfferID      *int64
	OfferTitle   string
	ConsentGiven bool
}

// Metadata carries the anti-abuse signals computed at submission time.
// None of it is user-editable through the form itself.
type Metadata struct {
	FormRenderedAt time.Time
	SubmittedAt    time.Time
	Honeypot       string
	// LastSubmitAt is the session's previous attempt time; zero means the
	// session has never submitted.
	LastSubmitAt time.Time
}

// Gate decides whether a draft may proceed to delivery. It is a pure
// function of its inputs and keeps no state.
type Gate struct {
	minFillDuration     time.Duration
	minResubmitInterval time.Duration
}

func NewGate(minFillDuration, minResubmitInterval time.Duration) *Gate {
	return &Gate{
		minFillDuration:     minFillDuration,
		minResubmitInterval: minResubmitInterval,
	}
}

// Evaluate runs the checks cheapest-first. The resubmission interval wins
// over every other check; the honeypot and fill-duration checks are
// conclusive bot evidence and soft-reject so the sender gets no signal.
func (g *Gate) Evaluate(meta Metadata, draft Draft, now time.Time) Decision {
	if !meta.LastSubmitAt.IsZero() && now.Sub(meta.LastSubmitAt) < g.minResubmitInterval {
		return HardRejectRateLimit
	}

	if !draft.ConsentGiven {
		return HardRejectConsent
	}

	if meta.Honeypot != "" {
		return SoftRejectSpam
	}

	if meta.SubmittedAt.Sub(meta.FormRenderedAt) < g.minFillDuration {
		return SoftRejectSpam
	}

	return Allow
}
