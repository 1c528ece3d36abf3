package enquiry

import (
	"context"
	"fmt"

	"travelagency/internal/domain"
)

// EnquiryWriter is the slice of the repository the persister needs.
type EnquiryWriter interface {
	Create(ctx context.Context, e *domain.Enquiry) error
}

// Persister writes an enquiry to the durable fallback table when the CRM
// is unavailable. The fallback store triggers no staff notification, but
// the lead is not lost. There is no tier below this one.
type Persister struct {
	enquiries EnquiryWriter
}

func NewPersister(enquiries EnquiryWriter) *Persister {
	return &Persister{enquiries: enquiries}
}

func (p *Persister) Persist(ctx context.Context, e *domain.Enquiry) error {
	e.DeliveryChannel = domain.ChannelFallback
	e.Status = domain.EnquiryNew

	if err := p.enquiries.Create(ctx, e); err != nil {
		return fmt.Errorf("fallback persist: %w", err)
	}
	return nil
}
