package smtpgw

import (
	"errors"
	"io"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/tracknest/tracknest/pkg/logger"
)

// MessageHandler processes one accepted message. from is the envelope
// sender, to the envelope recipients (the posting addresses), data the
// raw RFC 5322 message.
type MessageHandler func(from string, to []string, data []byte) error

// Backend implements smtp.Backend for the inbound ticket mail gateway.
type Backend struct {
	auth    AuthFunc
	handler MessageHandler
	logger  logger.Logger
}

// NewBackend creates a new gateway backend.
func NewBackend(auth AuthFunc, handler MessageHandler, logger logger.Logger) *Backend {
	return &Backend{
		auth:    auth,
		handler: handler,
		logger:  logger,
	}
}

// NewSession creates a new SMTP session. Called once per connection.
func (b *Backend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &Session{
		backend: b,
		logger:  b.logger,
	}, nil
}

// Session represents an SMTP session for a single connection.
type Session struct {
	backend *Backend
	logger  logger.Logger
	authed  bool
	from    string
	to      []string
}

// AuthMechanisms advertises the supported auth mechanisms.
func (s *Session) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

// Auth returns a SASL server for the specified mechanism.
func (s *Session) Auth(mech string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(identity, username, password string) error {
		s.logger.WithFields(map[string]interface{}{
			"username": username,
		}).Debug("Mail gateway: AUTH PLAIN attempt")

		if err := s.backend.auth(username, password); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"username": username,
			}).Warn("Mail gateway: Authentication failed")
			return errors.New("invalid credentials")
		}

		s.authed = true
		return nil
	}), nil
}

// AuthPlain implements PLAIN authentication for clients that skip the
// SASL negotiation.
func (s *Session) AuthPlain(username, password string) error {
	s.logger.WithFields(map[string]interface{}{
		"username": username,
	}).Debug("Mail gateway: AUTH PLAIN attempt (legacy)")

	if err := s.backend.auth(username, password); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"username": username,
		}).Warn("Mail gateway: Authentication failed")
		return errors.New("invalid credentials")
	}

	s.authed = true
	return nil
}

// Mail is called when the client sends a MAIL FROM command.
func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	if !s.authed {
		return errors.New("not authenticated")
	}
	s.from = from
	return nil
}

// Rcpt is called when the client sends a RCPT TO command.
func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	if !s.authed {
		return errors.New("not authenticated")
	}
	s.to = append(s.to, to)
	return nil
}

// Data is called when the client sends the message data.
func (s *Session) Data(r io.Reader) error {
	if !s.authed {
		return errors.New("not authenticated")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		s.logger.Error("Mail gateway: Failed to read message data")
		return errors.New("failed to read message")
	}

	if err := s.backend.handler(s.from, s.to, data); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"from":  s.from,
			"error": err.Error(),
		}).Warn("Mail gateway: Message rejected")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"from":         s.from,
		"message_size": len(data),
	}).Info("Mail gateway: Message processed")

	return nil
}

// Reset is called when the client sends a RSET command.
func (s *Session) Reset() {
	s.from = ""
	s.to = nil
}

// Logout is called when the client disconnects.
func (s *Session) Logout() error {
	return nil
}
