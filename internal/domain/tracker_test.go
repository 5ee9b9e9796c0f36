package domain

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTrackerName(t *testing.T) {
	tests := []struct {
		name    string
		tracker string
		wantErr bool
	}{
		{name: "simple", tracker: "bugs", wantErr: false},
		{name: "with separators", tracker: "my-project_1.0", wantErr: false},
		{name: "empty", tracker: "", wantErr: true},
		{name: "spaces", tracker: "my project", wantErr: true},
		{name: "slash", tracker: "a/b", wantErr: true},
		{name: "reserved dot", tracker: ".", wantErr: true},
		{name: "reserved dotdot", tracker: "..", wantErr: true},
		{name: "reserved git", tracker: ".git", wantErr: true},
		{name: "reserved hg", tracker: ".hg", wantErr: true},
		{name: "too long", tracker: strings.Repeat("a", 256), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrackerName(tt.tracker)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrackerRef(t *testing.T) {
	tracker := &Tracker{OwnerName: "alice", Name: "bugs"}
	assert.Equal(t, "~alice/bugs", tracker.Ref())
}

func TestCreateTrackerRequest_Validate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := &CreateTrackerRequest{Name: "bugs"}
		tracker, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, VisibilityPublic, tracker.Visibility)
		assert.Equal(t, DefaultTrackerAccess, tracker.DefaultAccess)
		assert.True(t, tracker.DefaultAccess.Has(AccessBrowse))
		assert.False(t, tracker.DefaultAccess.Has(AccessTriage))
	})

	t.Run("explicit visibility and access", func(t *testing.T) {
		req := &CreateTrackerRequest{
			Name:          "internal",
			Visibility:    "PRIVATE",
			DefaultAccess: []string{"browse"},
		}
		tracker, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, VisibilityPrivate, tracker.Visibility)
		assert.Equal(t, AccessBrowse, tracker.DefaultAccess)
	})

	t.Run("empty access list means none", func(t *testing.T) {
		req := &CreateTrackerRequest{Name: "locked", DefaultAccess: []string{}}
		tracker, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, AccessNone, tracker.DefaultAccess)
	})

	t.Run("bad visibility", func(t *testing.T) {
		req := &CreateTrackerRequest{Name: "bugs", Visibility: "SECRET"}
		_, err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("bad name", func(t *testing.T) {
		req := &CreateTrackerRequest{Name: ".git"}
		_, err := req.Validate()
		assert.Error(t, err)
	})
}

func TestGetTrackerRequest_FromURLParams(t *testing.T) {
	req := &GetTrackerRequest{}
	err := req.FromURLParams(url.Values{"owner": {"~alice"}, "name": {"bugs"}})
	require.NoError(t, err)
	assert.Equal(t, "alice", req.Owner)
	assert.Equal(t, "bugs", req.Name)

	err = req.FromURLParams(url.Values{"name": {"bugs"}})
	assert.Error(t, err)

	err = req.FromURLParams(url.Values{"owner": {"alice"}})
	assert.Error(t, err)
}

func TestUpdateTrackerRequest_Validate(t *testing.T) {
	longDesc := strings.Repeat("a", 8193)
	bad := "SECRET"

	tests := []struct {
		name    string
		req     UpdateTrackerRequest
		wantErr bool
	}{
		{name: "no changes", req: UpdateTrackerRequest{TrackerID: 1}, wantErr: false},
		{name: "missing tracker", req: UpdateTrackerRequest{}, wantErr: true},
		{name: "long description", req: UpdateTrackerRequest{TrackerID: 1, Description: &longDesc}, wantErr: true},
		{name: "bad visibility", req: UpdateTrackerRequest{TrackerID: 1, Visibility: &bad}, wantErr: true},
		{name: "bad access", req: UpdateTrackerRequest{TrackerID: 1, DefaultAccess: []string{"sudo"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScanTracker(t *testing.T) {
	now := time.Now()
	scanner := &scanStub{
		data: []interface{}{
			int64(3),      // ID
			int64(1),      // OwnerID
			"alice",       // OwnerName
			"bugs",        // Name
			"Bug tracker", // Description
			"UNLISTED",    // Visibility
			7,             // DefaultAccess
			int64(14),     // NextTicketID
			false,         // ImportInProgress
			now,           // CreatedAt
			now,           // UpdatedAt
		},
	}

	tracker, err := ScanTracker(scanner)
	require.NoError(t, err)
	assert.Equal(t, "~alice/bugs", tracker.Ref())
	assert.Equal(t, VisibilityUnlisted, tracker.Visibility)
	assert.Equal(t, DefaultTrackerAccess, tracker.DefaultAccess)
	assert.Equal(t, int64(14), tracker.NextTicketID)
	assert.False(t, tracker.ImportInProgress)
}
