package service

import (
	"compress/gzip"
	"context"
	"crypto/ed25519"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/tracknest/tracknest/internal/domain"
	"github.com/tracknest/tracknest/pkg/crypto"
	"github.com/tracknest/tracknest/pkg/logger"
)

// ImportService replays exported archives into a tracker. Each ticket is
// imported in its own transaction; a bad ticket is logged and skipped
// without losing the rest of the archive.
type ImportService struct {
	trackerRepo  domain.TrackerRepository
	ticketRepo   domain.TicketRepository
	commentRepo  domain.CommentRepository
	eventRepo    domain.EventRepository
	labelRepo    domain.LabelRepository
	userRepo     domain.UserRepository
	participants domain.ParticipantService
	verifyKey    ed25519.PublicKey
	origin       string
	logger       logger.Logger
}

// ImportServiceConfig wires the importer's collaborators.
type ImportServiceConfig struct {
	TrackerRepo  domain.TrackerRepository
	TicketRepo   domain.TicketRepository
	CommentRepo  domain.CommentRepository
	EventRepo    domain.EventRepository
	LabelRepo    domain.LabelRepository
	UserRepo     domain.UserRepository
	Participants domain.ParticipantService
	VerifyKey    ed25519.PublicKey
	Origin       string
	Logger       logger.Logger
}

func NewImportService(cfg ImportServiceConfig) *ImportService {
	return &ImportService{
		trackerRepo:  cfg.TrackerRepo,
		ticketRepo:   cfg.TicketRepo,
		commentRepo:  cfg.CommentRepo,
		eventRepo:    cfg.EventRepo,
		labelRepo:    cfg.LabelRepo,
		userRepo:     cfg.UserRepo,
		participants: cfg.Participants,
		verifyKey:    cfg.VerifyKey,
		origin:       cfg.Origin,
		logger:       cfg.Logger,
	}
}

// archiveSource identifies the tracker an archive was exported from.
// Signed payloads embed its id, ticket refs embed its owner and name.
type archiveSource struct {
	ID    int64
	Owner string
	Name  string
}

// Import replays an archive read from r into a tracker previously
// flagged import_in_progress. The flag is cleared on the way out even
// when the import fails, so the operation is observable as finished.
func (s *ImportService) Import(ctx context.Context, tracker *domain.Tracker, r io.Reader) (err error) {
	if !tracker.ImportInProgress {
		return domain.NewValidationError("tracker is not prepared for import")
	}
	defer func() {
		if clearErr := s.trackerRepo.SetImportInProgress(ctx, tracker.ID, false); clearErr != nil {
			s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to clear import flag: %v", clearErr))
			if err == nil {
				err = fmt.Errorf("failed to clear import flag: %w", clearErr)
			}
		}
	}()

	gz, gzErr := gzip.NewReader(r)
	if gzErr != nil {
		return domain.NewValidationError("invalid archive: not a gzip stream")
	}
	raw, readErr := io.ReadAll(gz)
	if readErr != nil {
		return domain.NewValidationError("invalid archive: " + readErr.Error())
	}
	gz.Close()
	if !gjson.ValidBytes(raw) {
		return domain.NewValidationError("invalid archive: malformed JSON")
	}

	source := &archiveSource{
		ID:    gjson.GetBytes(raw, "id").Int(),
		Owner: gjson.GetBytes(raw, "owner").String(),
		Name:  gjson.GetBytes(raw, "name").String(),
	}

	labelIDs, err := s.importLabels(ctx, tracker, gjson.GetBytes(raw, "labels"))
	if err != nil {
		return err
	}

	// Replay in scoped id order so refs to earlier tickets resolve.
	tickets := gjson.GetBytes(raw, "tickets").Array()
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].Get("id").Int() < tickets[j].Get("id").Int()
	})

	imported := 0
	for _, entry := range tickets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.importTicket(ctx, tracker, source, entry, labelIDs); err != nil {
			var importErr *domain.ImportError
			if errors.As(err, &importErr) {
				s.logger.WithField("tracker_id", tracker.ID).Warn(fmt.Sprintf("Skipping ticket: %v", importErr))
				continue
			}
			return err
		}
		imported++
	}

	s.logger.WithFields(map[string]interface{}{
		"tracker_id": tracker.ID,
		"imported":   imported,
	}).Info("Tracker import finished")
	return nil
}

// importLabels creates the archive's labels on the target tracker and
// returns their ids by name. A label that already exists is reused.
func (s *ImportService) importLabels(ctx context.Context, tracker *domain.Tracker, labels gjson.Result) (map[string]int64, error) {
	ids := make(map[string]int64)
	for _, entry := range labels.Array() {
		var ld domain.LabelDump
		if err := json.Unmarshal([]byte(entry.Raw), &ld); err != nil {
			s.logger.WithField("tracker_id", tracker.ID).Warn(fmt.Sprintf("Skipping malformed label: %v", err))
			continue
		}
		if ld.Name == "" {
			continue
		}
		label := &domain.Label{
			TrackerID: tracker.ID,
			Name:      ld.Name,
			Color:     ld.BackgroundColor,
			TextColor: ld.TextColor,
			CreatedAt: ld.Created,
		}
		if label.TextColor == "" {
			label.TextColor = domain.ContrastingTextColor(label.Color)
		}
		if err := s.labelRepo.Create(ctx, label); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				existing, getErr := s.labelRepo.GetByName(ctx, tracker.ID, ld.Name)
				if getErr != nil {
					s.logger.WithField("label", ld.Name).Error(fmt.Sprintf("Failed to load existing label: %v", getErr))
					return nil, fmt.Errorf("failed to load existing label: %w", getErr)
				}
				ids[ld.Name] = existing.ID
				continue
			}
			s.logger.WithField("label", ld.Name).Error(fmt.Sprintf("Failed to import label: %v", err))
			return nil, fmt.Errorf("failed to import label: %w", err)
		}
		ids[ld.Name] = label.ID
	}
	return ids, nil
}

var requiredTicketFields = []string{"id", "created", "submitter", "subject", "status", "resolution", "upstream"}

func (s *ImportService) importTicket(ctx context.Context, tracker *domain.Tracker, source *archiveSource, entry gjson.Result, labelIDs map[string]int64) error {
	scopedID := int(entry.Get("id").Int())
	for _, field := range requiredTicketFields {
		if !entry.Get(field).Exists() {
			return &domain.ImportError{Tracker: tracker.Name, Ticket: scopedID, Reason: "missing field " + field}
		}
	}

	var td domain.TicketDump
	if err := json.Unmarshal([]byte(entry.Raw), &td); err != nil {
		return &domain.ImportError{Tracker: tracker.Name, Ticket: scopedID, Reason: "malformed ticket", Err: err}
	}
	if td.ID <= 0 {
		return &domain.ImportError{Tracker: tracker.Name, Ticket: td.ID, Reason: "invalid ticket id"}
	}

	if _, err := s.ticketRepo.GetByScopedID(ctx, tracker.ID, int64(td.ID)); err == nil {
		s.logger.WithFields(map[string]interface{}{
			"tracker_id": tracker.ID,
			"ticket":     td.ID,
		}).Debug("Ticket already imported, skipping")
		return nil
	} else if _, ok := err.(*domain.ErrTicketNotFound); !ok {
		s.logger.WithField("tracker_id", tracker.ID).Error(fmt.Sprintf("Failed to check for existing ticket: %v", err))
		return fmt.Errorf("failed to check for existing ticket: %w", err)
	}

	submitter, err := s.importParticipant(ctx, td.Submitter, td.Upstream)
	if err != nil {
		return &domain.ImportError{Tracker: tracker.Name, Ticket: td.ID, Reason: "unresolvable submitter", Err: err}
	}

	authenticity := domain.AuthenticityUnauthenticated
	if td.Signature != "" && td.Nonce != "" && td.Upstream == s.origin && td.Submitter.Type == domain.ParticipantTypeUser {
		payload, err := json.Marshal(&domain.SignedTicketPayload{
			TrackerID:   source.ID,
			TicketID:    td.ID,
			Subject:     td.Subject,
			Body:        td.Body,
			SubmitterID: td.Submitter.UserID,
			Upstream:    td.Upstream,
		})
		if err != nil {
			return fmt.Errorf("failed to serialize ticket signature payload: %w", err)
		}
		if crypto.VerifyPayload(s.verifyKey, payload, td.Signature, td.Nonce) {
			authenticity = domain.AuthenticityAuthentic
		} else {
			authenticity = domain.AuthenticityTampered
		}
	}

	created := td.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	updated := td.Updated
	if updated.IsZero() {
		updated = created
	}

	ticket := &domain.Ticket{
		TrackerID:    tracker.ID,
		ScopedID:     int64(td.ID),
		Title:        td.Subject,
		Description:  td.Body,
		SubmitterID:  submitter.ID,
		Status:       td.Status,
		Resolution:   td.Resolution,
		Authenticity: authenticity,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}

	comments := 0
	err = s.ticketRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.ticketRepo.InsertImportedTx(ctx, tx, ticket); err != nil {
			return err
		}
		for _, name := range td.Labels {
			labelID, ok := labelIDs[name]
			if !ok {
				continue
			}
			if _, err := s.labelRepo.AddToTicketTx(ctx, tx, ticket.ID, labelID, tracker.OwnerID); err != nil {
				return err
			}
		}
		for _, eventEntry := range entry.Get("events").Array() {
			added, err := s.importEvent(ctx, tx, tracker, source, ticket, eventEntry, labelIDs)
			if err != nil {
				return err
			}
			comments += added
		}
		return nil
	})
	if err != nil {
		return &domain.ImportError{Tracker: tracker.Name, Ticket: td.ID, Reason: "replay failed", Err: err}
	}

	// The aggregate is rebuilt from committed rows rather than trusting
	// the archive's comment_count.
	if comments > 0 {
		count, err := s.commentRepo.CountCurrentByTicket(ctx, ticket.ID)
		if err != nil {
			s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to count comments: %v", err))
			return fmt.Errorf("failed to count comments: %w", err)
		}
		if count > 0 {
			if err := s.ticketRepo.WithTransaction(ctx, func(tx *sql.Tx) error {
				return s.ticketRepo.AdjustCommentCountTx(ctx, tx, ticket.ID, count)
			}); err != nil {
				s.logger.WithField("ticket_id", ticket.ID).Error(fmt.Sprintf("Failed to update comment count: %v", err))
				return fmt.Errorf("failed to update comment count: %w", err)
			}
		}
	}
	return nil
}

var requiredEventFields = []string{"created", "event_type", "upstream"}

// importEvent replays one event row. Returns the number of comments it
// inserted. Malformed events are dropped, the rest of the ticket still
// imports.
func (s *ImportService) importEvent(ctx context.Context, tx *sql.Tx, tracker *domain.Tracker, source *archiveSource, ticket *domain.Ticket, entry gjson.Result, labelIDs map[string]int64) (int, error) {
	for _, field := range requiredEventFields {
		if !entry.Get(field).Exists() {
			s.logger.WithField("ticket", ticket.ScopedID).Warn("Skipping event with missing field " + field)
			return 0, nil
		}
	}
	var ed domain.EventDump
	if err := json.Unmarshal([]byte(entry.Raw), &ed); err != nil {
		s.logger.WithField("ticket", ticket.ScopedID).Warn(fmt.Sprintf("Skipping malformed event: %v", err))
		return 0, nil
	}
	if ed.Types == 0 {
		s.logger.WithField("ticket", ticket.ScopedID).Warn("Skipping event with no event type")
		return 0, nil
	}
	// Mention events are derived: user mentions are regenerated by the
	// lifecycle engine and never imported, ticket mentions only survive
	// when the referenced ticket exists on this side.
	if ed.Types.Has(domain.EventUserMentioned) {
		return 0, nil
	}

	event := &domain.Event{
		EventType:     ed.Types,
		TicketID:      &ticket.ID,
		OldStatus:     ed.OldStatus,
		NewStatus:     ed.NewStatus,
		OldResolution: ed.OldResolution,
		NewResolution: ed.NewResolution,
		CreatedAt:     ed.Created,
	}

	if ed.Types.Has(domain.EventTicketMentioned) {
		from := s.resolveMentionSource(ctx, tracker, source, ed.FromTicketRef)
		if from == nil {
			return 0, nil
		}
		event.FromTicketID = from
	}

	if ed.Participant != nil {
		participant, err := s.importParticipant(ctx, ed.Participant, ed.Upstream)
		if err != nil {
			return 0, err
		}
		event.ParticipantID = &participant.ID
	}

	comments := 0
	if ed.Types.Has(domain.EventComment) {
		if ed.Comment == nil {
			s.logger.WithField("ticket", ticket.ScopedID).Warn("Skipping comment event without comment")
			return 0, nil
		}
		author, err := s.importParticipant(ctx, ed.Comment.Submitter, ed.Upstream)
		if err != nil {
			return 0, err
		}

		authenticity := domain.AuthenticityUnauthenticated
		if ed.Signature != "" && ed.Nonce != "" && ed.Upstream == s.origin && ed.Comment.Submitter.Type == domain.ParticipantTypeUser {
			payload, err := json.Marshal(&domain.SignedCommentPayload{
				TrackerID: source.ID,
				TicketID:  int(ticket.ScopedID),
				Comment:   ed.Comment.Text,
				AuthorID:  ed.Comment.Submitter.UserID,
				Upstream:  ed.Upstream,
			})
			if err != nil {
				return 0, fmt.Errorf("failed to serialize comment signature payload: %w", err)
			}
			if crypto.VerifyPayload(s.verifyKey, payload, ed.Signature, ed.Nonce) {
				authenticity = domain.AuthenticityAuthentic
			} else {
				authenticity = domain.AuthenticityTampered
			}
		}

		created := ed.Comment.Created
		if created.IsZero() {
			created = ed.Created
		}
		comment := &domain.TicketComment{
			TicketID:     ticket.ID,
			SubmitterID:  author.ID,
			Text:         ed.Comment.Text,
			Authenticity: authenticity,
			CreatedAt:    created,
		}
		if err := s.commentRepo.InsertTx(ctx, tx, comment); err != nil {
			return 0, err
		}
		event.CommentID = &comment.ID
		if event.ParticipantID == nil {
			event.ParticipantID = &author.ID
		}
		comments = 1
	}

	if ed.Types.Has(domain.EventLabelAdded) || ed.Types.Has(domain.EventLabelRemoved) {
		labelID, ok := labelIDs[ed.Label]
		if !ok {
			return 0, nil
		}
		event.LabelID = &labelID
	}

	if (ed.Types.Has(domain.EventAssignedUser) || ed.Types.Has(domain.EventUnassignedUser)) && ed.ByParticipant != nil {
		by, err := s.importParticipant(ctx, ed.ByParticipant, ed.Upstream)
		if err != nil {
			return 0, err
		}
		event.ByParticipantID = &by.ID
	}

	if err := s.eventRepo.InsertTx(ctx, tx, event); err != nil {
		return 0, err
	}
	return comments, nil
}

// importParticipant resolves an archived identity. User entries from our
// own origin map back onto the local account, user entries from other
// instances are interned as external identities.
func (s *ImportService) importParticipant(ctx context.Context, pd *domain.ParticipantDump, upstream string) (*domain.Participant, error) {
	if pd == nil {
		return nil, domain.NewValidationError("participant is missing")
	}
	switch pd.Type {
	case domain.ParticipantTypeUser:
		if upstream == s.origin {
			user, err := s.userRepo.GetByUsername(ctx, pd.Name)
			if err == nil {
				return s.participants.ForUser(ctx, user.ID)
			}
			if _, ok := err.(*domain.ErrUserNotFound); !ok {
				s.logger.WithField("username", pd.Name).Error(fmt.Sprintf("Failed to look up user: %v", err))
				return nil, fmt.Errorf("failed to look up user: %w", err)
			}
		}
		externalID, externalURL := externalIdentity(upstream, pd.CanonicalName)
		return s.participants.ForExternal(ctx, externalID, externalURL)
	case domain.ParticipantTypeEmail:
		return s.participants.ForEmail(ctx, pd.Address, pd.Name)
	case domain.ParticipantTypeExternal:
		return s.participants.ForExternal(ctx, pd.ExternalID, pd.ExternalURL)
	}
	return nil, domain.NewValidationError(fmt.Sprintf("unknown participant type %q", pd.Type))
}

// externalIdentity derives the interned identity of a foreign user,
// <host>:<canonical-name> plus their profile URL on the foreign
// instance.
func externalIdentity(upstream, canonicalName string) (string, string) {
	host := upstream
	if u, err := url.Parse(upstream); err == nil && u.Host != "" {
		host = u.Host
	}
	return host + ":" + canonicalName, upstream + "/" + canonicalName
}

// resolveMentionSource maps a ticket ref from the archive onto the
// imported ticket. Refs are written from the source tracker's
// perspective; only refs into the source tracker itself resolve, and
// only once the referenced ticket has been replayed.
func (s *ImportService) resolveMentionSource(ctx context.Context, tracker *domain.Tracker, source *archiveSource, ref string) *int64 {
	prefix := fmt.Sprintf("~%s/%s#", source.Owner, source.Name)
	if !strings.HasPrefix(ref, prefix) {
		return nil
	}
	scoped, err := strconv.ParseInt(strings.TrimPrefix(ref, prefix), 10, 64)
	if err != nil || scoped <= 0 {
		return nil
	}
	from, err := s.ticketRepo.GetByScopedID(ctx, tracker.ID, scoped)
	if err != nil {
		return nil
	}
	return &from.ID
}
