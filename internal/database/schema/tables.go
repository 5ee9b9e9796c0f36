// Package schema defines the database schema for development.
//
// DEVELOPMENT USE ONLY
// This file contains the current database schema and is used for development and testing.
// Before deploying to production, these table definitions should be converted to proper migrations.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		remote_id VARCHAR(255) UNIQUE NOT NULL,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) NOT NULL,
		notify_self BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id BIGSERIAL PRIMARY KEY,
		participant_type VARCHAR(20) NOT NULL,
		user_id BIGINT,
		email VARCHAR(255),
		email_name VARCHAR(255),
		external_id VARCHAR(255),
		external_url VARCHAR(255),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_user_id ON participants (user_id) WHERE participant_type = 'user'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_email ON participants (email) WHERE participant_type = 'email'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_external_id ON participants (external_id) WHERE participant_type = 'external'`,
	`CREATE TABLE IF NOT EXISTS trackers (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		visibility VARCHAR(10) NOT NULL DEFAULT 'PUBLIC',
		default_access INTEGER NOT NULL DEFAULT 7,
		next_ticket_id BIGINT NOT NULL DEFAULT 1,
		import_in_progress BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (owner_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		tracker_id BIGINT NOT NULL,
		scoped_id BIGINT NOT NULL,
		title VARCHAR(2048) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		submitter_id BIGINT NOT NULL,
		status INTEGER NOT NULL DEFAULT 0,
		resolution INTEGER NOT NULL DEFAULT 0,
		comment_count INTEGER NOT NULL DEFAULT 0,
		authenticity INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (tracker_id, scoped_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_tracker_id ON tickets (tracker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_submitter_id ON tickets (submitter_id)`,
	`CREATE TABLE IF NOT EXISTS ticket_comments (
		id BIGSERIAL PRIMARY KEY,
		ticket_id BIGINT NOT NULL,
		submitter_id BIGINT NOT NULL,
		comment_text TEXT NOT NULL,
		authenticity INTEGER NOT NULL DEFAULT 0,
		superseded_by_id BIGINT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_comments_ticket_id ON ticket_comments (ticket_id)`,
	`CREATE TABLE IF NOT EXISTS labels (
		id BIGSERIAL PRIMARY KEY,
		tracker_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		color VARCHAR(9) NOT NULL,
		text_color VARCHAR(9) NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (tracker_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_labels (
		ticket_id BIGINT NOT NULL,
		label_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (ticket_id, label_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_assignees (
		id BIGSERIAL PRIMARY KEY,
		ticket_id BIGINT NOT NULL,
		assignee_id BIGINT NOT NULL,
		assigner_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (ticket_id, assignee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		event_type INTEGER NOT NULL,
		participant_id BIGINT,
		ticket_id BIGINT,
		comment_id BIGINT,
		label_id BIGINT,
		by_participant_id BIGINT,
		from_ticket_id BIGINT,
		old_status INTEGER,
		new_status INTEGER,
		old_resolution INTEGER,
		new_resolution INTEGER,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_ticket_id ON events (ticket_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_comment_id ON events (comment_id)`,
	`CREATE TABLE IF NOT EXISTS event_notifications (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (event_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_event_notifications_user_id ON event_notifications (user_id)`,
	`CREATE TABLE IF NOT EXISTS ticket_subscriptions (
		id BIGSERIAL PRIMARY KEY,
		participant_id BIGINT NOT NULL,
		tracker_id BIGINT,
		ticket_id BIGINT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_tracker ON ticket_subscriptions (participant_id, tracker_id) WHERE tracker_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_ticket ON ticket_subscriptions (participant_id, ticket_id) WHERE ticket_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS user_accesses (
		id BIGSERIAL PRIMARY KEY,
		tracker_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		permissions INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (tracker_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS webhook_subscriptions (
		id BIGSERIAL PRIMARY KEY,
		scope VARCHAR(20) NOT NULL,
		user_id BIGINT,
		tracker_id BIGINT,
		ticket_id BIGINT,
		url VARCHAR(2048) NOT NULL,
		events TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_subscriptions_scope ON webhook_subscriptions (scope)`,
	`CREATE TABLE IF NOT EXISTS webhook_deliveries (
		id UUID PRIMARY KEY,
		subscription_id BIGINT NOT NULL,
		event VARCHAR(50) NOT NULL,
		url VARCHAR(2048) NOT NULL,
		payload JSONB NOT NULL,
		signature VARCHAR(512) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		next_attempt_at TIMESTAMP NOT NULL,
		last_error TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_webhook_deliveries_pending ON webhook_deliveries (next_attempt_at) WHERE status = 'pending'`,
	`CREATE TABLE IF NOT EXISTS mail_queue (
		id UUID PRIMARY KEY,
		sender VARCHAR(255) NOT NULL,
		recipient VARCHAR(255) NOT NULL,
		raw BYTEA NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// MigrationStatements contains SQL statements to be run after table creation
// These are for schema changes that need to be applied to existing databases
var MigrationStatements = []string{
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS notify_self BOOLEAN NOT NULL DEFAULT FALSE`,
	`ALTER TABLE trackers ADD COLUMN IF NOT EXISTS import_in_progress BOOLEAN NOT NULL DEFAULT FALSE`,
	`DO $$
	BEGIN
		-- Add unique constraint on tickets (tracker_id, scoped_id) if it doesn't exist
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint
			WHERE conname = 'tickets_tracker_id_scoped_id_key'
			AND conrelid = 'tickets'::regclass
		) THEN
			ALTER TABLE tickets ADD CONSTRAINT tickets_tracker_id_scoped_id_key UNIQUE (tracker_id, scoped_id);
		END IF;
	EXCEPTION
		WHEN duplicate_object THEN
			-- Constraint already exists, ignore
			NULL;
	END $$`,
}

// GetMigrationStatements returns migration statements for database schema setup
func GetMigrationStatements() []string {
	return MigrationStatements
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"users",
	"participants",
	"trackers",
	"tickets",
	"ticket_comments",
	"labels",
	"ticket_labels",
	"ticket_assignees",
	"events",
	"event_notifications",
	"ticket_subscriptions",
	"user_accesses",
	"webhook_subscriptions",
	"webhook_deliveries",
	"mail_queue",
}
