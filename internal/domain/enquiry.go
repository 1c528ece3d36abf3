package domain

import "time"

type DeliveryChannel string

const (
	ChannelPrimary  DeliveryChannel = "primary"
	ChannelFallback DeliveryChannel = "fallback"
)

type EnquiryStatus string

const (
	EnquiryNew       EnquiryStatus = "new"
	EnquiryContacted EnquiryStatus = "contacted"
	EnquiryClosed    EnquiryStatus = "closed"
)

// Enquiry is the canonical lead record. It is built once per allowed
// submission and handed to whichever channel accepts it.
type Enquiry struct {
	ID              int64           `json:"id"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Message         string          `json:"message"`
	Source          string          `json:"source"`
	OfferID         *int64          `json:"offer_id,omitempty"`
	OfferTitle      string          `json:"offer_title,omitempty"`
	DeliveryChannel DeliveryChannel `json:"delivery_channel"`
	Status          EnquiryStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (e *Enquiry) IsNew() bool {
	return e.Status == EnquiryNew
}
