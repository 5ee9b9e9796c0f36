package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "valid user",
			user:    User{Username: "alice", Email: "alice@example.org"},
			wantErr: false,
		},
		{
			name:    "valid without email",
			user:    User{Username: "alice"},
			wantErr: false,
		},
		{
			name:    "underscore and dash",
			user:    User{Username: "a_b-c"},
			wantErr: false,
		},
		{
			name:    "missing username",
			user:    User{},
			wantErr: true,
		},
		{
			name:    "too short",
			user:    User{Username: "a"},
			wantErr: true,
		},
		{
			name:    "uppercase",
			user:    User{Username: "Alice"},
			wantErr: true,
		},
		{
			name:    "leading digit",
			user:    User{Username: "1alice"},
			wantErr: true,
		},
		{
			name:    "bad email",
			user:    User{Username: "alice", Email: "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_CanonicalName(t *testing.T) {
	user := &User{Username: "alice"}
	assert.Equal(t, "~alice", user.CanonicalName())
}

func TestRemoteUser_Validate(t *testing.T) {
	remote := &RemoteUser{ID: "rid-1", Username: "alice", Email: "alice@example.org"}
	assert.NoError(t, remote.Validate())

	remote = &RemoteUser{Username: "alice"}
	assert.Error(t, remote.Validate())

	remote = &RemoteUser{ID: "rid-1", Username: "Not Valid"}
	assert.Error(t, remote.Validate())
}

func TestScanUser(t *testing.T) {
	now := time.Now()
	scanner := &scanStub{
		data: []interface{}{
			int64(1),            // ID
			"rid-1",             // RemoteID
			"alice",             // Username
			"alice@example.org", // Email
			true,                // NotifySelf
			now,                 // CreatedAt
			now,                 // UpdatedAt
		},
	}

	user, err := ScanUser(scanner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.NotifySelf)

	scanner.err = sql.ErrNoRows
	_, err = ScanUser(scanner)
	assert.Error(t, err)
}
