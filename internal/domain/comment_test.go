package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketComment_Validate(t *testing.T) {
	comment := &TicketComment{TicketID: 1, SubmitterID: 2, Text: "Can reproduce on 1.4"}
	assert.NoError(t, comment.Validate())

	comment = &TicketComment{SubmitterID: 2, Text: "Can reproduce"}
	assert.Error(t, comment.Validate())

	comment = &TicketComment{TicketID: 1, Text: "Can reproduce"}
	assert.Error(t, comment.Validate())

	comment = &TicketComment{TicketID: 1, SubmitterID: 2, Text: "ab"}
	assert.Error(t, comment.Validate())
}

func TestScanTicketComment(t *testing.T) {
	now := time.Now()
	scanner := &scanStub{
		data: []interface{}{
			int64(12),        // ID
			int64(7),         // TicketID
			int64(4),         // SubmitterID
			"Can reproduce",  // Text
			3,                // Authenticity
			int64(15),        // SupersededByID
			now,              // CreatedAt
		},
	}

	comment, err := ScanTicketComment(scanner)
	require.NoError(t, err)
	assert.Equal(t, int64(12), comment.ID)
	assert.Equal(t, AuthenticityEditedByOther, comment.Authenticity)
	require.NotNil(t, comment.SupersededByID)
	assert.Equal(t, int64(15), *comment.SupersededByID)

	scanner = &scanStub{
		data: []interface{}{
			int64(15), int64(7), int64(4), "Can reproduce on 1.4", 0, nil, now,
		},
	}
	comment, err = ScanTicketComment(scanner)
	require.NoError(t, err)
	assert.Nil(t, comment.SupersededByID, "current revision is unsuperseded")
}

func TestEditCommentRequest_Validate(t *testing.T) {
	req := &EditCommentRequest{TrackerID: 1, ScopedID: 2, CommentID: 3, Text: "Updated text"}
	assert.NoError(t, req.Validate())

	req = &EditCommentRequest{ScopedID: 2, CommentID: 3, Text: "Updated text"}
	assert.Error(t, req.Validate())

	req = &EditCommentRequest{TrackerID: 1, ScopedID: 2, CommentID: 3, Text: ""}
	assert.Error(t, req.Validate())
}
