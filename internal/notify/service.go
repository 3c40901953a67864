package notify

import (
	"context"
	"fmt"

	"github.com/canback/pickup-platform/internal/intake"
	"github.com/canback/pickup-platform/internal/rewards"
	"github.com/canback/pickup-platform/pkg/logging"
)

// Service sends the service's operational emails: new-lead alerts to the
// operations inbox and welcome emails to new accounts.
type Service struct {
	sender   EmailSender
	opsEmail string
	logger   *logging.Logger
}

// NewService creates a notify service. opsEmail receives new-lead alerts;
// when empty, lead alerts are skipped.
func NewService(sender EmailSender, opsEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{sender: sender, opsEmail: opsEmail, logger: logger}
}

// LeadReceived alerts operations about a new pickup lead.
func (s *Service) LeadReceived(ctx context.Context, lead *intake.PickupLead, quote rewards.RewardQuote) error {
	if s.sender == nil || s.opsEmail == "" {
		return nil
	}
	body := fmt.Sprintf(
		"New pickup request from %s (%s, %s).\nType: %s\nSuburb: %s, %s %s\nEstimated reward: $%d/year",
		lead.Person.Name, lead.Person.Email, lead.Person.Phone,
		lead.Pickup.Type,
		lead.Address.Suburb, lead.Address.City, lead.Address.Postcode,
		quote.TotalDollars,
	)
	return s.sender.Send(ctx, EmailMessage{
		To:      s.opsEmail,
		ToName:  "Pickup Team",
		Subject: fmt.Sprintf("New %s pickup in %s", lead.Pickup.Type, lead.Address.Suburb),
		Body:    body,
	})
}

// Welcome greets a newly registered account.
func (s *Service) Welcome(ctx context.Context, email, firstName string) error {
	if s.sender == nil {
		return nil
	}
	return s.sender.Send(ctx, EmailMessage{
		To:      email,
		ToName:  firstName,
		Subject: "Welcome to CanBack",
		Body: fmt.Sprintf(
			"Kia ora %s,\n\nYour CanBack account is ready. Schedule your first pickup and start earning rewards for your recycling.\n",
			firstName,
		),
	})
}
