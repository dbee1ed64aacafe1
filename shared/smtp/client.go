// Package smtp wraps the go-mail SMTP client behind the small surface the
// send worker needs: one authenticated sender, single sends and hidden-copy
// batch sends.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mail "github.com/wneessen/go-mail"
)

// DefaultDialTimeout bounds the credential verification dial at construction
const DefaultDialTimeout = 15 * time.Second

// Config holds SMTP server configuration. Sender credentials are supplied
// per client, not here, because every send job authenticates as its own
// sender.
type Config struct {
	Host        string
	Port        int
	TLSPolicy   string // mandatory, opportunistic, none
	DialTimeout time.Duration
}

// Message is a fully-prepared email ready for sending. Addressing is
// supplied by the individual Send calls.
type Message struct {
	Subject        string
	HTMLBody       string
	AttachmentPath string
}

// Client is an SMTP client bound to one authenticated sender address.
type Client struct {
	config *Config
	client *mail.Client
	from   string
	logger *slog.Logger
}

// NewClient creates an SMTP client for the given sender and verifies the
// credentials by dialing the server once. Empty credentials or a rejected
// login are reported as an AuthError so callers can surface them before any
// job is created.
func NewClient(config *Config, senderEmail, senderPassword string, logger *slog.Logger) (*Client, error) {
	if senderEmail == "" || senderPassword == "" {
		return nil, &AuthError{Err: errors.New("sender email and password must be provided")}
	}

	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(senderEmail),
		mail.WithPassword(senderPassword),
		mail.WithTLSPolicy(parseTLSPolicy(config.TLSPolicy)),
	}

	mc, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	client := &Client{
		config: config,
		client: mc,
		from:   senderEmail,
		logger: logger,
	}

	if err := client.verify(); err != nil {
		return nil, err
	}

	logger.Info("SMTP credentials verified",
		slog.String("host", config.Host),
		slog.String("sender", senderEmail),
	)

	return client, nil
}

// verify dials the server once so bad hosts and rejected logins fail at
// construction time rather than mid-job.
func (c *Client) verify() error {
	timeout := c.config.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.client.DialWithContext(ctx); err != nil {
		return &AuthError{Err: err}
	}
	if err := c.client.Close(); err != nil {
		c.logger.Warn("Failed to close smtp verification connection",
			slog.Any("error", err),
		)
	}

	return nil
}

// Send delivers one message to a single visible recipient.
func (c *Client) Send(ctx context.Context, recipient string, msg Message) error {
	m, err := c.buildMessage(msg)
	if err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}
	if err := m.To(recipient); err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}

	if err := c.client.DialAndSendWithContext(ctx, m); err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}

	c.logger.Debug("Email sent",
		slog.String("recipient", recipient),
	)

	return nil
}

// SendBatch delivers one message addressed to all recipients via Bcc, so no
// recipient is visible to any other. The sender's own address is used as the
// visible To header. One transport attempt is made for the whole batch.
func (c *Client) SendBatch(ctx context.Context, recipients []string, msg Message) error {
	m, err := c.buildMessage(msg)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	if err := m.To(c.from); err != nil {
		return &DeliveryError{Err: err}
	}
	if err := m.Bcc(recipients...); err != nil {
		return &DeliveryError{Err: err}
	}

	if err := c.client.DialAndSendWithContext(ctx, m); err != nil {
		return &DeliveryError{Err: err}
	}

	c.logger.Debug("Batch email sent",
		slog.Int("recipients", len(recipients)),
	)

	return nil
}

func (c *Client) buildMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	if msg.AttachmentPath != "" {
		m.AttachFile(msg.AttachmentPath)
	}
	return m, nil
}

func parseTLSPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "opportunistic":
		return mail.TLSOpportunistic
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSMandatory
	}
}
