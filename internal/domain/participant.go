package domain

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_participant_repository.go -package mocks github.com/tracknest/tracknest/internal/domain ParticipantRepository
//go:generate mockgen -destination mocks/mock_participant_service.go -package mocks github.com/tracknest/tracknest/internal/domain ParticipantService

type ParticipantType string

const (
	ParticipantTypeUser     ParticipantType = "user"
	ParticipantTypeEmail    ParticipantType = "email"
	ParticipantTypeExternal ParticipantType = "external"
)

// Participant is an actor identity attached to tickets, comments and
// events. Exactly one variant is populated: a local user, a bare email
// address, or an external identity imported from another instance.
// Identities are interned, one row per natural key.
type Participant struct {
	ID        int64           `json:"id"`
	Type      ParticipantType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`

	// user variant
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`

	// email variant
	Email     string `json:"email,omitempty"`
	EmailName string `json:"email_name,omitempty"`

	// external variant
	ExternalID  string `json:"external_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// Name returns the human-readable display name of the participant.
func (p *Participant) Name() string {
	switch p.Type {
	case ParticipantTypeUser:
		return "~" + p.Username
	case ParticipantTypeEmail:
		if p.EmailName != "" {
			return p.EmailName
		}
		return p.Email
	case ParticipantTypeExternal:
		if idx := strings.Index(p.ExternalID, ":"); idx >= 0 {
			return p.ExternalID[idx+1:]
		}
		return p.ExternalID
	}
	return ""
}

// Identifier returns the stable identity string of the participant:
// username, email address or the full external id.
func (p *Participant) Identifier() string {
	switch p.Type {
	case ParticipantTypeUser:
		return p.Username
	case ParticipantTypeEmail:
		return p.Email
	case ParticipantTypeExternal:
		return p.ExternalID
	}
	return ""
}

// Validate checks that exactly one variant is populated and well formed.
func (p *Participant) Validate() error {
	switch p.Type {
	case ParticipantTypeUser:
		if p.UserID == 0 {
			return fmt.Errorf("invalid participant: user_id is required for user participants")
		}
		if p.Email != "" || p.ExternalID != "" {
			return fmt.Errorf("invalid participant: user participants carry no other identity")
		}
	case ParticipantTypeEmail:
		if !govalidator.IsEmail(p.Email) {
			return fmt.Errorf("invalid participant: email is invalid")
		}
		if p.UserID != 0 || p.ExternalID != "" {
			return fmt.Errorf("invalid participant: email participants carry no other identity")
		}
	case ParticipantTypeExternal:
		if !strings.Contains(p.ExternalID, ":") {
			return fmt.Errorf("invalid participant: external_id must have the form <host>:<name>")
		}
		if p.ExternalURL != "" && !govalidator.IsURL(p.ExternalURL) {
			return fmt.Errorf("invalid participant: external_url is invalid")
		}
		if p.UserID != 0 || p.Email != "" {
			return fmt.Errorf("invalid participant: external participants carry no other identity")
		}
	default:
		return fmt.Errorf("invalid participant: unknown type %q", p.Type)
	}
	return nil
}

// For database scanning, username joined from users
type dbParticipant struct {
	ID          int64
	Type        string
	UserID      sql.NullInt64
	Username    sql.NullString
	Email       sql.NullString
	EmailName   sql.NullString
	ExternalID  sql.NullString
	ExternalURL sql.NullString
	CreatedAt   time.Time
}

// ScanParticipant scans a participant row (joined with users for the
// username) from the database.
func ScanParticipant(scanner interface {
	Scan(dest ...interface{}) error
}) (*Participant, error) {
	var dbp dbParticipant
	if err := scanner.Scan(
		&dbp.ID,
		&dbp.Type,
		&dbp.UserID,
		&dbp.Username,
		&dbp.Email,
		&dbp.EmailName,
		&dbp.ExternalID,
		&dbp.ExternalURL,
		&dbp.CreatedAt,
	); err != nil {
		return nil, err
	}

	p := &Participant{
		ID:          dbp.ID,
		Type:        ParticipantType(dbp.Type),
		UserID:      dbp.UserID.Int64,
		Username:    dbp.Username.String,
		Email:       dbp.Email.String,
		EmailName:   dbp.EmailName.String,
		ExternalID:  dbp.ExternalID.String,
		ExternalURL: dbp.ExternalURL.String,
		CreatedAt:   dbp.CreatedAt,
	}

	return p, nil
}

type ParticipantRepository interface {
	GetByID(ctx context.Context, id int64) (*Participant, error)

	// GetByUserID returns the participant row for a local user, or
	// ErrParticipantNotFound when the user never participated.
	GetByUserID(ctx context.Context, userID int64) (*Participant, error)

	GetByEmail(ctx context.Context, email string) (*Participant, error)

	// UpsertUser interns the participant identity of a local user.
	UpsertUser(ctx context.Context, userID int64) (*Participant, error)

	// UpsertEmail interns an email identity.
	UpsertEmail(ctx context.Context, email, emailName string) (*Participant, error)

	// UpsertExternal interns an external identity.
	UpsertExternal(ctx context.Context, externalID, externalURL string) (*Participant, error)

	// ListByIDs returns the named participants keyed by id.
	ListByIDs(ctx context.Context, ids []int64) (map[int64]*Participant, error)
}

// ParticipantService resolves actor identities to interned participants.
type ParticipantService interface {
	GetByID(ctx context.Context, id int64) (*Participant, error)

	// ForUser returns the participant identity of a local user,
	// creating it on first use.
	ForUser(ctx context.Context, userID int64) (*Participant, error)

	// ForEmail resolves an address to a participant. Addresses owned by
	// a local account resolve to that account's user participant.
	ForEmail(ctx context.Context, email, emailName string) (*Participant, error)

	// ForExternal resolves an imported identity.
	ForExternal(ctx context.Context, externalID, externalURL string) (*Participant, error)
}

// ErrParticipantNotFound is returned when a participant is not found
type ErrParticipantNotFound struct {
	Message string
}

func (e *ErrParticipantNotFound) Error() string {
	return e.Message
}
