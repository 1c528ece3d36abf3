package enquiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var gateNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testGate() *Gate {
	return NewGate(3*time.Second, 3*time.Second)
}

func cleanDraft() Draft {
	return Draft{
		Name:         "Jo",
		Email:        "jo@x.com",
		Message:      "Hi",
		ConsentGiven: true,
	}
}

func cleanMetadata() Metadata {
	return Metadata{
		FormRenderedAt: gateNow.Add(-4 * time.Second),
		SubmittedAt:    gateNow,
	}
}

func TestGate_Allow(t *testing.T) {
	decision := testGate().Evaluate(cleanMetadata(), cleanDraft(), gateNow)
	assert.Equal(t, Allow, decision)
}

func TestGate_HoneypotAlwaysSpam(t *testing.T) {
	// Any non-empty honeypot value is conclusive, whatever else is set.
	cases := []struct {
		name  string
		meta  Metadata
		draft Draft
	}{
		{"otherwise clean", cleanMetadata(), cleanDraft()},
		{"fast fill too", Metadata{FormRenderedAt: gateNow.Add(-time.Second), SubmittedAt: gateNow}, cleanDraft()},
		{"empty draft fields", cleanMetadata(), Draft{ConsentGiven: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.meta.Honeypot = "http://spam.example"
			decision := testGate().Evaluate(tc.meta, tc.draft, gateNow)
			assert.Equal(t, SoftRejectSpam, decision)
		})
	}
}

func TestGate_FastFillIsSpam(t *testing.T) {
	meta := cleanMetadata()
	meta.FormRenderedAt = gateNow.Add(-2 * time.Second)

	decision := testGate().Evaluate(meta, cleanDraft(), gateNow)
	assert.Equal(t, SoftRejectSpam, decision)
}

func TestGate_FillExactlyAtThresholdAllowed(t *testing.T) {
	meta := cleanMetadata()
	meta.FormRenderedAt = gateNow.Add(-3 * time.Second)

	decision := testGate().Evaluate(meta, cleanDraft(), gateNow)
	assert.Equal(t, Allow, decision)
}

func TestGate_RateLimitTakesPrecedence(t *testing.T) {
	// Resubmission window beats consent, honeypot and fill time.
	meta := Metadata{
		FormRenderedAt: gateNow.Add(-time.Second),
		SubmittedAt:    gateNow,
		Honeypot:       "bot-filled",
		LastSubmitAt:   gateNow.Add(-1 * time.Second),
	}
	draft := cleanDraft()
	draft.ConsentGiven = false

	decision := testGate().Evaluate(meta, draft, gateNow)
	assert.Equal(t, HardRejectRateLimit, decision)
}

func TestGate_RateLimitWindowExpired(t *testing.T) {
	meta := cleanMetadata()
	meta.LastSubmitAt = gateNow.Add(-5 * time.Second)

	decision := testGate().Evaluate(meta, cleanDraft(), gateNow)
	assert.Equal(t, Allow, decision)
}

func TestGate_MissingConsent(t *testing.T) {
	draft := cleanDraft()
	draft.ConsentGiven = false

	decision := testGate().Evaluate(cleanMetadata(), draft, gateNow)
	assert.Equal(t, HardRejectConsent, decision)
}

func TestGate_ConsentCheckedBeforeHoneypot(t *testing.T) {
	meta := cleanMetadata()
	meta.Honeypot = "filled"
	draft := cleanDraft()
	draft.ConsentGiven = false

	decision := testGate().Evaluate(meta, draft, gateNow)
	assert.Equal(t, HardRejectConsent, decision)
}

func TestGate_NeverSubmittedBeforeNotRateLimited(t *testing.T) {
	meta := cleanMetadata()
	meta.LastSubmitAt = time.Time{}

	decision := testGate().Evaluate(meta, cleanDraft(), gateNow)
	assert.Equal(t, Allow, decision)
}

func TestGate_Idempotent(t *testing.T) {
	g := testGate()
	meta := cleanMetadata()
	meta.Honeypot = "x"
	draft := cleanDraft()

	first := g.Evaluate(meta, draft, gateNow)
	second := g.Evaluate(meta, draft, gateNow)
	assert.Equal(t, first, second)
}
