// Package email provides the notification email client.
//
// It uses Resend (resend-go) as the provider and renders HTML bodies
// from inline templates so the binary stays self-contained on
// serverless hosts with no filesystem assets.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
)

// Client wraps the Resend client, sender identity, and a logger.
type Client struct {
	client      *resend.Client
	fromName    string
	fromAddress string
	logger      *zerolog.Logger
}

// NewClient creates an email Client from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client:      resend.NewClient(cfg.Email.ResendAPIKey),
		fromName:    cfg.Email.FromName,
		fromAddress: cfg.Email.FromAddress,
		logger:      logger,
	}
}

// SendEmail renders the named template with data and sends it.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	source, ok := templateSources[templateName]
	if !ok {
		return fmt.Errorf("unknown email template %s", templateName)
	}

	tmpl, err := template.New(string(templateName)).Parse(source)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromAddress),
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
