package mailer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// Envelope carries the addressing of one outgoing notification. The
// acting participant shows up as the From display name while the
// address stays the instance-wide notification address.
type Envelope struct {
	FromName string
	To       string
	Subject  string

	// MessageID and InReplyTo thread the ticket's messages, both
	// without angle brackets. An empty MessageID lets the message get a
	// generated one.
	MessageID string
	InReplyTo string

	// ReplyTo is the ticket's posting address, ReplyToName its ref.
	ReplyToName string
	ReplyToAddr string

	// ListUnsubscribe is a mailto target, without the mailto: prefix.
	ListUnsubscribe string
}

// Config holds the mail identity of the instance.
type Config struct {
	// NotifyFrom is the From address of outgoing notifications.
	NotifyFrom string

	// SMTPUser is the envelope sender, completed with PostingDomain
	// when it has no domain part of its own.
	SMTPUser string

	// PostingDomain is the domain ticket addresses live on.
	PostingDomain string
}

// Composer renders notification messages to wire format. Delivery
// belongs to the external transport; composed bytes go to the outgoing
// queue.
type Composer struct {
	config *Config
}

// NewComposer creates a new composer
func NewComposer(config *Config) *Composer {
	return &Composer{config: config}
}

// Sender returns the envelope sender address.
func (c *Composer) Sender() string {
	if strings.Contains(c.config.SMTPUser, "@") {
		return c.config.SMTPUser
	}
	return c.config.SMTPUser + "@" + c.config.PostingDomain
}

// Compose renders a plain text message with the envelope's headers.
func (c *Composer) Compose(env *Envelope, body string) ([]byte, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := msg.FromFormat(env.FromName, c.config.NotifyFrom); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(env.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}
	msg.Subject(env.Subject)
	msg.SetGenHeader("Sender", c.Sender())

	if env.MessageID != "" {
		msg.SetMessageIDWithValue(env.MessageID)
	}
	if env.InReplyTo != "" {
		msg.SetGenHeader(mail.HeaderInReplyTo, "<"+env.InReplyTo+">")
	}
	if env.ReplyToAddr != "" {
		if err := msg.ReplyToFormat(env.ReplyToName, env.ReplyToAddr); err != nil {
			return nil, fmt.Errorf("failed to set email reply-to address: %w", err)
		}
	}
	if env.ListUnsubscribe != "" {
		msg.SetGenHeader(mail.HeaderListUnsubscribe, "<mailto:"+env.ListUnsubscribe+">")
	}

	msg.SetBodyString(mail.TypeTextPlain, body)

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render email: %w", err)
	}
	return buf.Bytes(), nil
}
