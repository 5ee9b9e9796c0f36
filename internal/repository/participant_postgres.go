package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tracknest/tracknest/internal/domain"
)

// participantColumns joins users for the username of user participants.
const participantColumns = `p.id, p.participant_type, p.user_id, u.username, p.email, p.email_name, p.external_id, p.external_url, p.created_at`

const participantFrom = `FROM participants p LEFT JOIN users u ON u.id = p.user_id`

type participantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a new PostgreSQL participant repository
func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` ` + participantFrom + ` WHERE p.id = $1`
	participant, err := domain.ScanParticipant(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrParticipantNotFound{Message: "participant not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

func (r *participantRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` ` + participantFrom + `
		WHERE p.participant_type = 'user' AND p.user_id = $1`
	participant, err := domain.ScanParticipant(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrParticipantNotFound{Message: "participant not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` ` + participantFrom + `
		WHERE p.participant_type = 'email' AND p.email = $1`
	participant, err := domain.ScanParticipant(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrParticipantNotFound{Message: "participant not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// UpsertUser interns the participant identity of a local user. The no-op
// DO UPDATE makes RETURNING yield the row on conflict too.
func (r *participantRepository) UpsertUser(ctx context.Context, userID int64) (*domain.Participant, error) {
	query := `
		INSERT INTO participants (participant_type, user_id, created_at)
		VALUES ('user', $1, $2)
		ON CONFLICT (user_id) WHERE participant_type = 'user' DO UPDATE
		SET created_at = participants.created_at
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, time.Now().UTC()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *participantRepository) UpsertEmail(ctx context.Context, email, emailName string) (*domain.Participant, error) {
	query := `
		INSERT INTO participants (participant_type, email, email_name, created_at)
		VALUES ('email', $1, NULLIF($2, ''), $3)
		ON CONFLICT (email) WHERE participant_type = 'email' DO UPDATE
		SET email_name = COALESCE(NULLIF($2, ''), participants.email_name)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, email, emailName, time.Now().UTC()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *participantRepository) UpsertExternal(ctx context.Context, externalID, externalURL string) (*domain.Participant, error) {
	query := `
		INSERT INTO participants (participant_type, external_id, external_url, created_at)
		VALUES ('external', $1, NULLIF($2, ''), $3)
		ON CONFLICT (external_id) WHERE participant_type = 'external' DO UPDATE
		SET external_url = COALESCE(NULLIF($2, ''), participants.external_url)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, externalID, externalURL, time.Now().UTC()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *participantRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Participant, error) {
	participants := make(map[int64]*domain.Participant, len(ids))
	if len(ids) == 0 {
		return participants, nil
	}

	query := `SELECT ` + participantColumns + ` ` + participantFrom + ` WHERE p.id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		participant, err := domain.ScanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants[participant.ID] = participant
	}
	return participants, rows.Err()
}
