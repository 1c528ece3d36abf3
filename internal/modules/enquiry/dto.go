package enquiry

// SubmitEnquiryRequest is the public submission payload. The "website"
// field is the honeypot: hidden from humans by the frontend, so any value
// in it is conclusive bot evidence. form_rendered_at is the client's
// render timestamp in unix milliseconds.
type SubmitEnquiryRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Message        string `json:"message" validate:"required"`
	Context        string `json:"context"`
	OfferID        *int64 `json:"offer_id"`
	ConsentGiven   bool   `json:"consent_given"`
	FormRenderedAt int64  `json:"form_rendered_at" validate:"required"`
	Website        string `json:"website"`
}

// SubmitEnquiryResponse is identical for real deliveries and suppressed
// spam; the distinction exists only server-side.
type SubmitEnquiryResponse struct {
	Status string `json:"status"`
}

// SessionResponse carries a fresh form-session token.
type SessionResponse struct {
	Session string `json:"session"`
}

// StateResponse mirrors the session's state machine for the frontend.
type StateResponse struct {
	State     State     `json:"state"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
}
