package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/propline/propline/internal/leads"
	"github.com/propline/propline/internal/properties"
	"github.com/propline/propline/pkg/logging"
)

// Service delivers lead notifications to property owners. The requester never
// learns the owner's address: the inquiry travels one way, from the lead to
// the owner's inbox.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		logger: logger,
	}
}

// LeadCreated emails the property owner about a new inquiry.
func (s *Service) LeadCreated(ctx context.Context, lead *leads.Lead, prop *properties.Property) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping owner notification")
		return nil
	}
	if prop == nil || strings.TrimSpace(prop.OwnerEmail) == "" {
		s.logger.Debug("notify: property has no owner email, skipping", "lead_id", lead.ID)
		return nil
	}

	subject := fmt.Sprintf("New inquiry for %s", prop.Title)

	var body strings.Builder
	fmt.Fprintf(&body, "You have a new inquiry for your %s listing %q in %s.\n\n", prop.ListingType, prop.Title, prop.City)
	fmt.Fprintf(&body, "Name: %s\n", lead.Name)
	fmt.Fprintf(&body, "Email: %s\n", lead.Email)
	fmt.Fprintf(&body, "Phone: %s\n", lead.Phone)
	if lead.Message != "" {
		fmt.Fprintf(&body, "\nMessage:\n%s\n", lead.Message)
	}
	body.WriteString("\nReply directly to the requester to continue the conversation.\n")

	msg := EmailMessage{
		To:      prop.OwnerEmail,
		ToName:  prop.OwnerName,
		Subject: subject,
		Body:    body.String(),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: owner notification: %w", err)
	}

	s.logger.Info("owner notified of new lead", "lead_id", lead.ID, "property_id", prop.ID)
	return nil
}
