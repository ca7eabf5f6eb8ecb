package services

import (
	"context"
	"fmt"

	"campusshield/config"
	"campusshield/models"
	"campusshield/utils"
)

// Notifier tells administrators about activity. Messages never carry the
// description or contact details of a complaint.
type Notifier interface {
	NewComplaint(ctx context.Context, c *models.Complaint) error
	Digest(ctx context.Context, counts StatusCounts) error
}

type NopNotifier struct{}

func (NopNotifier) NewComplaint(context.Context, *models.Complaint) error { return nil }
func (NopNotifier) Digest(context.Context, StatusCounts) error            { return nil }

type MailNotifier struct {
	cfg  config.MailConfig
	send func(ctx context.Context, cfg config.MailConfig, to []string, subject, body string) error
}

// NewNotifier returns a NopNotifier when SMTP is not configured.
func NewNotifier(cfg config.MailConfig) Notifier {
	if !cfg.MailEnabled() || len(cfg.NotifyEmails) == 0 {
		return NopNotifier{}
	}
	return &MailNotifier{cfg: cfg, send: utils.SendEmail}
}

func (n *MailNotifier) NewComplaint(ctx context.Context, c *models.Complaint) error {
	subject := fmt.Sprintf("CampusShield - new %s complaint %s", c.Category.Label(), c.TicketID)
	body := fmt.Sprintf(`A new complaint has been submitted.

Ticket ID: %s
Category: %s
Attachment: %t

Sign in to the admin dashboard to review it.
`, c.TicketID, c.Category.Label(), c.HasAttachment())
	return n.send(ctx, n.cfg, n.cfg.NotifyEmails, subject, body)
}

func (n *MailNotifier) Digest(ctx context.Context, counts StatusCounts) error {
	if counts.Pending == 0 && counts.InReview == 0 {
		return nil
	}
	subject := fmt.Sprintf("CampusShield - %d pending, %d in review", counts.Pending, counts.InReview)
	body := fmt.Sprintf(`Open cases summary

Pending: %d
In Review: %d
Resolved: %d
Total: %d
`, counts.Pending, counts.InReview, counts.Resolved, counts.Total)
	return n.send(ctx, n.cfg, n.cfg.NotifyEmails, subject, body)
}
