// Package notify sends registrant-facing status emails. Delivery is
// best-effort: the workflow logs failures and keeps going, because a status
// change must never be blocked by the mail path.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"registrar/internal/request/models"
	"registrar/pkg/email"
)

// Kind names a registrant notification.
type Kind string

const (
	// KindSubmissionConfirmation goes out on every submit, including
	// resubmissions after action needed or withdrawal.
	KindSubmissionConfirmation Kind = "submission confirmation"
	KindApproved               Kind = "approved"
	KindWithdrawn              Kind = "withdrawn"
	// KindCustomStatusUpdate carries an analyst-written body, used for the
	// action needed and rejection reason emails.
	KindCustomStatusUpdate Kind = "custom status update"
)

var subjects = map[Kind]string{
	KindSubmissionConfirmation: "We received your .gov domain request",
	KindApproved:               "Your .gov domain request has been approved",
	KindWithdrawn:              "Your .gov domain request has been withdrawn",
	KindCustomStatusUpdate:     "An update on your .gov domain request",
}

// Message is a fully addressed notification ready for the sender.
type Message struct {
	To        string
	Bcc       string
	Subject   string
	Body      string
	FirstName string
	LastName  string
}

// Sender delivers a message. Implementations own retries.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher turns a notification kind plus a request into an addressed
// message. In production every message is BCC'd to the help desk address so
// support can see what registrants were told.
type Dispatcher struct {
	sender       Sender
	fromAddress  string
	isProduction bool
	logger       *slog.Logger
}

func NewDispatcher(sender Sender, fromAddress string, isProduction bool, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, fromAddress: fromAddress, isProduction: isProduction, logger: logger}
}

// Send builds and delivers one notification for a request. content is the
// analyst-written body for custom status updates and ignored otherwise.
func (d *Dispatcher) Send(ctx context.Context, kind Kind, r *models.DomainRequest, recipient, content string) error {
	if recipient == "" {
		return fmt.Errorf("notify %s: request %s has no recipient address", kind, r.ID)
	}

	subject, ok := subjects[kind]
	if !ok {
		return fmt.Errorf("notify: unknown notification kind %q", kind)
	}

	first, last := email.DeriveNameFromEmail(recipient)
	msg := Message{
		To:        recipient,
		Subject:   subject,
		Body:      bodyFor(kind, r, content),
		FirstName: first,
		LastName:  last,
	}
	if d.isProduction {
		msg.Bcc = d.fromAddress
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify %s: %w", kind, err)
	}
	d.logger.InfoContext(ctx, "notification sent",
		"kind", string(kind),
		"request_id", r.ID.String(),
	)
	return nil
}

func bodyFor(kind Kind, r *models.DomainRequest, content string) string {
	requested := ""
	if r.RequestedDomain != nil {
		requested = *r.RequestedDomain
	}
	switch kind {
	case KindSubmissionConfirmation:
		return fmt.Sprintf("We received your request for %s. We'll email you when the review is complete.", requested)
	case KindApproved:
		return fmt.Sprintf("Congratulations! Your request for %s has been approved.", requested)
	case KindWithdrawn:
		return fmt.Sprintf("Your request for %s has been withdrawn. You can resubmit it at any time.", requested)
	case KindCustomStatusUpdate:
		return content
	}
	return content
}

// LogSender writes notifications to the log instead of delivering them.
// Dev and test default.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.Logger.InfoContext(ctx, "email (log sender)",
		"to", msg.To,
		"bcc", msg.Bcc,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
