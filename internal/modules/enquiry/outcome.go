package enquiry

import "travelagency/internal/domain"

type OutcomeKind int

const (
	OutcomeDelivered OutcomeKind = iota
	OutcomeSuppressed
	OutcomeRejectedConsent
	OutcomeRejectedRateLimit
	OutcomeFailed
)

// Outcome is the pipeline's internal view of a submission. Operators see
// all five kinds in the logs; visitors only ever see the two-variant
// projection below.
type Outcome struct {
	Kind    OutcomeKind
	Channel domain.DeliveryChannel
	Err     error
}

// Result is the external projection handed to the presentation layer.
// Suppressed spam is deliberately indistinguishable from a delivery: a
// rejection signal would only teach automated senders what to change.
type Result struct {
	Accepted  bool
	ErrorKind ErrorKind
}

// Project maps the five internal outcomes onto the two observable ones.
// Pure, so the masking policy is testable on its own.
func (o Outcome) Project() Result {
	switch o.Kind {
	case OutcomeDelivered, OutcomeSuppressed:
		return Result{Accepted: true}
	case OutcomeRejectedConsent:
		return Result{ErrorKind: ErrorConsentMissing}
	case OutcomeRejectedRateLimit:
		return Result{ErrorKind: ErrorRateLimited}
	default:
		return Result{ErrorKind: ErrorDeliveryFailed}
	}
}
