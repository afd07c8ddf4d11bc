package leads

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Lead invariants enforced by Validate.
const (
	MinNameLength    = 2
	MinPhoneDigits   = 10
	MaxMessageLength = 1000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lead represents a recorded inquiry connecting a requester to a property.
// The owner's contact details are never part of a lead: the lead flows to the
// owner through the notification service, not the other way around.
type Lead struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Identity   string    `json:"identity"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	PropertyID string `json:"property_id"`
	Identity   string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// Validate checks every lead invariant and reports all violations together,
// so callers can surface the full list instead of one failure per round trip.
func (r *CreateLeadRequest) Validate() error {
	var violations ValidationErrors

	if strings.TrimSpace(r.PropertyID) == "" {
		violations = append(violations, FieldError{Field: "property_id", Message: "property reference is required"})
	}
	if len(strings.TrimSpace(r.Name)) < MinNameLength {
		violations = append(violations, FieldError{Field: "name", Message: "name must be at least 2 characters"})
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		violations = append(violations, FieldError{Field: "email", Message: "email address is not valid"})
	}
	if countDigits(r.Phone) < MinPhoneDigits {
		violations = append(violations, FieldError{Field: "phone", Message: "phone must contain at least 10 digits"})
	}
	if len(r.Message) > MaxMessageLength {
		violations = append(violations, FieldError{Field: "message", Message: "message must be at most 1000 characters"})
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// ListLeadsFilter constrains admin lead listings.
type ListLeadsFilter struct {
	Limit  int
	Offset int
}
