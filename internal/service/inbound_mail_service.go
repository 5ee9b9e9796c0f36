package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/logger"
)

// InboundMailService turns messages the MTA relays for the posting
// domain into ticket activity. The sender is resolved to a participant
// by address and the recipient encodes the target: a tracker address
// submits a ticket, a ticket address comments on it. The /unsubscribe
// forms drop the subscription at the encoded scope instead.
type InboundMailService struct {
	trackers      domain.TrackerService
	tickets       domain.TicketService
	subscriptions domain.SubscriptionService
	participants  domain.ParticipantService
	userRepo      domain.UserRepository
	postingDomain string
	logger        logger.Logger
}

// InboundMailServiceConfig wires the gateway service's collaborators.
type InboundMailServiceConfig struct {
	Trackers      domain.TrackerService
	Tickets       domain.TicketService
	Subscriptions domain.SubscriptionService
	Participants  domain.ParticipantService
	UserRepo      domain.UserRepository
	PostingDomain string
	Logger        logger.Logger
}

func NewInboundMailService(cfg InboundMailServiceConfig) *InboundMailService {
	return &InboundMailService{
		trackers:      cfg.Trackers,
		tickets:       cfg.Tickets,
		subscriptions: cfg.Subscriptions,
		participants:  cfg.Participants,
		userRepo:      cfg.UserRepo,
		postingDomain: cfg.PostingDomain,
		logger:        cfg.Logger,
	}
}

// mailTarget is the destination a posting address encodes.
type mailTarget struct {
	Owner       string
	Tracker     string
	ScopedID    int64 // 0 when the address names the tracker itself
	Unsubscribe bool
}

func (t *mailTarget) key() string {
	return fmt.Sprintf("%s/%s/%d/%v", t.Owner, t.Tracker, t.ScopedID, t.Unsubscribe)
}

// Process handles one relayed message. Errors reject the message at the
// SMTP layer, which makes the MTA bounce it back to the sender.
func (s *InboundMailService) Process(ctx context.Context, envelopeFrom string, rcpts []string, data []byte) error {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return domain.NewValidationError("malformed message")
	}

	// RFC 3834: never act on auto-generated mail, and never bounce it
	// either.
	if auto := msg.Header.Get("Auto-Submitted"); auto != "" && !strings.EqualFold(auto, "no") {
		s.logger.WithField("auto_submitted", auto).Info("Dropping auto-submitted message")
		return nil
	}

	sender, senderName := senderOf(msg, envelopeFrom)
	if sender == "" {
		return domain.NewValidationError("message has no sender address")
	}

	seen := make(map[string]bool)
	var targets []*mailTarget
	for _, rcpt := range rcpts {
		target, err := parsePostingAddress(rcpt, s.postingDomain)
		if err != nil {
			s.logger.WithField("recipient", rcpt).Debug(fmt.Sprintf("Ignoring recipient: %v", err))
			continue
		}
		if seen[target.key()] {
			continue
		}
		seen[target.key()] = true
		targets = append(targets, target)
	}
	if len(targets) == 0 {
		return domain.NewValidationError("no recipient on the posting domain")
	}

	participant, err := s.participants.ForEmail(ctx, sender, senderName)
	if err != nil {
		s.logger.WithField("sender", sender).Error(fmt.Sprintf("Failed to resolve sender: %v", err))
		return fmt.Errorf("failed to resolve sender: %w", err)
	}
	viewer, err := s.viewerOf(ctx, participant)
	if err != nil {
		return err
	}

	for _, target := range targets {
		if err := s.deliver(ctx, viewer, participant, msg, target); err != nil {
			return err
		}
	}
	return nil
}

// deliver routes one message to one decoded target.
func (s *InboundMailService) deliver(ctx context.Context, viewer *domain.User, actor *domain.Participant, msg *mail.Message, target *mailTarget) error {
	tracker, err := s.trackers.Get(ctx, viewer, target.Owner, target.Tracker)
	if err != nil {
		return err
	}

	if target.Unsubscribe {
		var ticket *domain.Ticket
		if target.ScopedID > 0 {
			ticket, err = s.tickets.Get(ctx, viewer, tracker, target.ScopedID)
			if err != nil {
				return err
			}
		}
		err = s.subscriptions.UnsubscribeParticipant(ctx, actor, tracker, ticket)
		if err != nil {
			// Already unsubscribed. The request is satisfied either way.
			if _, ok := err.(*domain.ErrSubscriptionNotFound); ok {
				return nil
			}
			return err
		}
		s.logger.WithFields(map[string]interface{}{
			"participant_id": actor.ID,
			"tracker_id":     tracker.ID,
			"ticket_id":      target.ScopedID,
		}).Info("Unsubscribed participant by mail")
		return nil
	}

	body, err := bodyOf(msg)
	if err != nil {
		s.logger.WithField("tracker_id", tracker.ID).Warn(fmt.Sprintf("Failed to extract message body: %v", err))
		return domain.NewValidationError("unreadable message body")
	}
	body = stripTrailingQuote(body)
	if body == "" {
		return domain.NewValidationError("message has no text content")
	}

	if target.ScopedID == 0 {
		subject := decodeSubject(msg.Header.Get("Subject"))
		if subject == "" {
			return domain.NewValidationError("message has no subject")
		}
		ticket, err := s.tickets.Submit(ctx, viewer, actor, tracker, &domain.SubmitTicketRequest{
			TrackerID:   tracker.ID,
			Title:       subject,
			Description: body,
			FromEmail:   true,
		})
		if err != nil {
			return err
		}
		s.logger.WithFields(map[string]interface{}{
			"tracker_id": tracker.ID,
			"ticket_id":  ticket.ID,
		}).Info("Submitted ticket by mail")
		return nil
	}

	ticket, err := s.tickets.Get(ctx, viewer, tracker, target.ScopedID)
	if err != nil {
		return err
	}
	if _, err := s.tickets.Apply(ctx, viewer, actor, tracker, ticket, &domain.TicketUpdate{
		Text:      body,
		FromEmail: true,
	}); err != nil {
		return err
	}
	s.logger.WithFields(map[string]interface{}{
		"tracker_id": tracker.ID,
		"ticket_id":  ticket.ID,
	}).Info("Commented on ticket by mail")
	return nil
}

// viewerOf loads the local account behind a user participant so the
// sender's own grants apply to access checks. Everyone else acts
// anonymously.
func (s *InboundMailService) viewerOf(ctx context.Context, p *domain.Participant) (*domain.User, error) {
	if p.Type != domain.ParticipantTypeUser {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		s.logger.WithField("user_id", p.UserID).Error(fmt.Sprintf("Failed to load sender account: %v", err))
		return nil, fmt.Errorf("failed to load sender account: %w", err)
	}
	return user, nil
}

// senderOf picks the sender identity, preferring the From header over
// the envelope. Both failing means the message came from the null
// sender, i.e. a bounce.
func senderOf(msg *mail.Message, envelopeFrom string) (address, name string) {
	if from := msg.Header.Get("From"); from != "" {
		if addr, err := mail.ParseAddress(from); err == nil {
			return addr.Address, addr.Name
		}
	}
	if addr, err := mail.ParseAddress(envelopeFrom); err == nil {
		return addr.Address, addr.Name
	}
	return "", ""
}

// parsePostingAddress decodes a recipient address into its target.
// Recognized local parts, all scoped to the posting domain:
//
//	~owner/tracker                 submit a new ticket
//	~owner/tracker/7               comment on ticket 7
//	~owner/tracker/unsubscribe     drop the tracker subscription
//	~owner/tracker/7/unsubscribe   drop the ticket subscription
func parsePostingAddress(rcpt, domain string) (*mailTarget, error) {
	if addr, err := mail.ParseAddress(rcpt); err == nil {
		rcpt = addr.Address
	}
	at := strings.LastIndex(rcpt, "@")
	if at < 0 {
		return nil, fmt.Errorf("no domain in %q", rcpt)
	}
	local, host := rcpt[:at], rcpt[at+1:]
	if !strings.EqualFold(host, domain) {
		return nil, fmt.Errorf("%q is not the posting domain", host)
	}
	if !strings.HasPrefix(local, "~") {
		return nil, fmt.Errorf("%q does not name a tracker", local)
	}

	parts := strings.Split(local[1:], "/")
	target := &mailTarget{}
	switch len(parts) {
	case 2:
		target.Owner, target.Tracker = parts[0], parts[1]
	case 3:
		target.Owner, target.Tracker = parts[0], parts[1]
		if parts[2] == "unsubscribe" {
			target.Unsubscribe = true
			break
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid ticket id %q", parts[2])
		}
		target.ScopedID = id
	case 4:
		if parts[3] != "unsubscribe" {
			return nil, fmt.Errorf("unrecognized address %q", local)
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid ticket id %q", parts[2])
		}
		target.Owner, target.Tracker = parts[0], parts[1]
		target.ScopedID = id
		target.Unsubscribe = true
	default:
		return nil, fmt.Errorf("unrecognized address %q", local)
	}
	if target.Owner == "" || target.Tracker == "" {
		return nil, fmt.Errorf("unrecognized address %q", local)
	}
	return target, nil
}

// bodyOf extracts the text of the message, preferring the text/plain
// representation and falling back to stripped text/html.
func bodyOf(msg *mail.Message) (string, error) {
	plain, html, err := collectText(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return "", err
	}
	if plain != "" {
		return strings.TrimSpace(plain), nil
	}
	if html != "" {
		text, err := htmlText(html)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	}
	return "", nil
}

// collectText walks the MIME part tree and returns the first text/plain
// and first text/html bodies found. Other part types are skipped.
func collectText(contentType, encoding string, body io.Reader) (plain, html string, err error) {
	mediaType := "text/plain"
	var params map[string]string
	if contentType != "" {
		mediaType, params, err = mime.ParseMediaType(contentType)
		if err != nil {
			return "", "", fmt.Errorf("invalid Content-Type: %w", err)
		}
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		boundary := params["boundary"]
		if boundary == "" {
			return "", "", errors.New("multipart message without a boundary")
		}
		mr := multipart.NewReader(body, boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", "", err
			}
			p, h, err := collectText(part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"), part)
			if err != nil {
				return "", "", err
			}
			if plain == "" {
				plain = p
			}
			if html == "" {
				html = h
			}
			if plain != "" {
				return plain, html, nil
			}
		}
		return plain, html, nil

	case mediaType == "text/plain", mediaType == "text/html":
		raw, err := io.ReadAll(decodeTransfer(encoding, body))
		if err != nil {
			return "", "", err
		}
		if mediaType == "text/plain" {
			return string(raw), "", nil
		}
		return "", string(raw), nil
	}

	return "", "", nil
}

// decodeTransfer wraps a part body with its transfer decoding.
func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	}
	return r
}

// htmlText reduces an HTML body to its text content.
func htmlText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML body: %w", err)
	}
	doc.Find("script, style, head").Remove()
	return doc.Text(), nil
}

// quoteAttribution matches the line introducing a quoted reply, e.g.
// "On Mon, 24 Aug 2026 at 10:12, ~alice wrote:".
var quoteAttribution = regexp.MustCompile(`^On .{0,200}wrote:$`)

// stripTrailingQuote drops the quoted reply trailing the message: the
// "greater-than" block at the end, blank lines inside it, and the
// attribution line directly above it. Quotes followed by a response
// stay, only the trailing block goes.
func stripTrailingQuote(body string) string {
	lines := strings.Split(body, "\n")
	end := len(lines)
	stripped := false
	for end > 0 {
		line := strings.TrimSpace(lines[end-1])
		if line == "" {
			end--
			continue
		}
		if strings.HasPrefix(line, ">") {
			stripped = true
			end--
			continue
		}
		break
	}
	if stripped && end > 0 && quoteAttribution.MatchString(strings.TrimSpace(lines[end-1])) {
		end--
	}
	return strings.TrimRight(strings.Join(lines[:end], "\n"), " \t\n")
}

// decodeSubject unfolds and RFC 2047 decodes a Subject header.
func decodeSubject(raw string) string {
	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(subject)
}
