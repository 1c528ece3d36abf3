package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEnquiryNotFound    = errors.New("enquiry not found")
	ErrInvalidStatus      = errors.New("invalid enquiry status")
)
