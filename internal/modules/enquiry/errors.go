package enquiry

import "errors"

var (
	ErrDeliveryTimeout  = errors.New("primary delivery timed out")
	ErrSubmitInProgress = errors.New("a submission is already in flight for this session")
)
