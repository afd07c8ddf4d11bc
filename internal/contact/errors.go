package contact

import "errors"

var (
	// ErrQuotaExhausted is returned when the identity has no free contact
	// uses left. The attempt is rejected before the lead store is touched.
	ErrQuotaExhausted = errors.New("contact quota exhausted")

	// ErrLeadCreationFailed is returned when the lead store rejected or
	// failed to process the creation request. No quota is consumed and the
	// caller may retry.
	ErrLeadCreationFailed = errors.New("lead creation failed")
)
