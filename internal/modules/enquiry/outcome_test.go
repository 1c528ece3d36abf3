package enquiry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"travelagency/internal/domain"
)

func TestOutcome_Project(t *testing.T) {
	cases := []struct {
		name    string
		outcome Outcome
		want    Result
	}{
		{"delivered primary", Outcome{Kind: OutcomeDelivered, Channel: domain.ChannelPrimary}, Result{Accepted: true}},
		{"delivered fallback", Outcome{Kind: OutcomeDelivered, Channel: domain.ChannelFallback}, Result{Accepted: true}},
		{"suppressed spam masked as success", Outcome{Kind: OutcomeSuppressed}, Result{Accepted: true}},
		{"consent rejection", Outcome{Kind: OutcomeRejectedConsent}, Result{ErrorKind: ErrorConsentMissing}},
		{"rate limit rejection", Outcome{Kind: OutcomeRejectedRateLimit}, Result{ErrorKind: ErrorRateLimited}},
		{"total failure", Outcome{Kind: OutcomeFailed, Err: errors.New("boom")}, Result{ErrorKind: ErrorDeliveryFailed}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.outcome.Project())
		})
	}
}

func TestOutcome_SpamIndistinguishableFromDelivery(t *testing.T) {
	spam := Outcome{Kind: OutcomeSuppressed}.Project()
	delivered := Outcome{Kind: OutcomeDelivered, Channel: domain.ChannelPrimary}.Project()
	assert.Equal(t, delivered, spam)
}
