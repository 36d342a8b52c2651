package destination

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/logger"
)

const EmailName = "email"

// Email sends the export as an attachment through Mailgun.
type Email struct {
	mg     mailgun.Mailgun
	from   string
	to     string
	logger *logger.Logger
}

func NewEmail(conf config.Mailgun, logger *logger.Logger) (*Email, error) {
	if !conf.Configured() {
		return nil, fmt.Errorf("%w: mailgun domain, api_key and from are required", ErrNotConfigured)
	}

	mg := mailgun.NewMailgun(conf.Domain, conf.APIKey)
	if conf.APIBase != "" {
		mg.SetAPIBase(conf.APIBase)
	}

	return &Email{
		mg:     mg,
		from:   conf.From,
		to:     conf.To,
		logger: logger.WithComponent("email"),
	}, nil
}

func (e *Email) Name() string {
	return EmailName
}

// Deliver mails the export to target, or to the configured recipient.
func (e *Email) Deliver(ctx context.Context, content Content, target string) (Outcome, error) {
	recipient := target
	if recipient == "" {
		recipient = e.to
	}
	if recipient == "" {
		return Outcome{}, fmt.Errorf("%w: no email recipient given", ErrNotConfigured)
	}

	subject := "Expense export: " + content.Filename
	body := fmt.Sprintf("Attached is %s with %d expenses.", content.Filename, len(content.Expenses))

	message := e.mg.NewMessage(e.from, subject, body, recipient)
	message.AddBufferAttachment(content.Filename, content.Data)

	resp, id, err := e.mg.Send(ctx, message)
	if err != nil {
		e.logger.Error("Failed to send export via Mailgun", "error", err, "to", recipient, "mailgun_resp", resp)
		return Outcome{}, fmt.Errorf("mailgun send failed: %w", err)
	}

	e.logger.Info("Export sent via Mailgun", "to", recipient, "id", id)

	return Outcome{Destination: EmailName, Location: recipient, Bytes: len(content.Data)}, nil
}
