package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipant_Name(t *testing.T) {
	tests := []struct {
		name        string
		participant Participant
		want        string
	}{
		{
			name:        "user",
			participant: Participant{Type: ParticipantTypeUser, UserID: 1, Username: "alice"},
			want:        "~alice",
		},
		{
			name:        "email with display name",
			participant: Participant{Type: ParticipantTypeEmail, Email: "bob@example.org", EmailName: "Bob Example"},
			want:        "Bob Example",
		},
		{
			name:        "email without display name",
			participant: Participant{Type: ParticipantTypeEmail, Email: "bob@example.org"},
			want:        "bob@example.org",
		},
		{
			name:        "external",
			participant: Participant{Type: ParticipantTypeExternal, ExternalID: "example.org:jdoe"},
			want:        "jdoe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.participant.Name())
		})
	}
}

func TestParticipant_Identifier(t *testing.T) {
	p := Participant{Type: ParticipantTypeUser, UserID: 1, Username: "alice"}
	assert.Equal(t, "alice", p.Identifier())

	p = Participant{Type: ParticipantTypeEmail, Email: "bob@example.org"}
	assert.Equal(t, "bob@example.org", p.Identifier())

	p = Participant{Type: ParticipantTypeExternal, ExternalID: "example.org:jdoe"}
	assert.Equal(t, "example.org:jdoe", p.Identifier())
}

func TestParticipant_Validate(t *testing.T) {
	tests := []struct {
		name        string
		participant Participant
		wantErr     bool
	}{
		{
			name:        "valid user",
			participant: Participant{Type: ParticipantTypeUser, UserID: 1},
			wantErr:     false,
		},
		{
			name:        "user without user id",
			participant: Participant{Type: ParticipantTypeUser},
			wantErr:     true,
		},
		{
			name:        "user with email",
			participant: Participant{Type: ParticipantTypeUser, UserID: 1, Email: "x@example.org"},
			wantErr:     true,
		},
		{
			name:        "valid email",
			participant: Participant{Type: ParticipantTypeEmail, Email: "bob@example.org"},
			wantErr:     false,
		},
		{
			name:        "bad email",
			participant: Participant{Type: ParticipantTypeEmail, Email: "not-an-address"},
			wantErr:     true,
		},
		{
			name:        "valid external",
			participant: Participant{Type: ParticipantTypeExternal, ExternalID: "example.org:jdoe", ExternalURL: "https://example.org/jdoe"},
			wantErr:     false,
		},
		{
			name:        "external without host prefix",
			participant: Participant{Type: ParticipantTypeExternal, ExternalID: "jdoe"},
			wantErr:     true,
		},
		{
			name:        "unknown type",
			participant: Participant{Type: "robot"},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.participant.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScanParticipant(t *testing.T) {
	now := time.Now()
	scanner := &scanStub{
		data: []interface{}{
			int64(4), // ID
			"user",   // Type
			int64(9), // UserID
			"alice",  // Username
			nil,      // Email
			nil,      // EmailName
			nil,      // ExternalID
			nil,      // ExternalURL
			now,      // CreatedAt
		},
	}

	p, err := ScanParticipant(scanner)
	require.NoError(t, err)
	assert.Equal(t, ParticipantTypeUser, p.Type)
	assert.Equal(t, int64(9), p.UserID)
	assert.Equal(t, "~alice", p.Name())

	scanner = &scanStub{
		data: []interface{}{
			int64(5),
			"email",
			nil,
			nil,
			"bob@example.org",
			"Bob",
			nil,
			nil,
			now,
		},
	}
	p, err = ScanParticipant(scanner)
	require.NoError(t, err)
	assert.Equal(t, ParticipantTypeEmail, p.Type)
	assert.Equal(t, "Bob", p.Name())

	scanner.err = sql.ErrNoRows
	_, err = ScanParticipant(scanner)
	assert.Error(t, err)
}
