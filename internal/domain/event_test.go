package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_Bitset(t *testing.T) {
	et := EventComment | EventStatusChange

	assert.True(t, et.Has(EventComment))
	assert.True(t, et.Has(EventStatusChange))
	assert.False(t, et.Has(EventCreated))
	assert.Equal(t, []string{"comment", "status_change"}, et.Names())
	assert.Equal(t, "comment,status_change", et.String())
}

func TestEventType_JSON(t *testing.T) {
	data, err := json.Marshal(EventCreated | EventUserMentioned)
	require.NoError(t, err)
	assert.JSONEq(t, `["created","user_mentioned"]`, string(data))

	var et EventType
	require.NoError(t, json.Unmarshal([]byte(`["label_added","label_removed"]`), &et))
	assert.Equal(t, EventLabelAdded|EventLabelRemoved, et)

	assert.Error(t, json.Unmarshal([]byte(`["confetti"]`), &et))
}

func TestScanEvent(t *testing.T) {
	now := time.Now()
	scanner := &scanStub{
		data: []interface{}{
			int64(88),       // ID
			6,               // EventType: comment|status_change
			int64(4),        // ParticipantID
			int64(7),        // TicketID
			int64(12),       // CommentID
			nil,             // LabelID
			nil,             // ByParticipantID
			nil,             // FromTicketID
			int64(0),        // OldStatus
			int64(8),        // NewStatus
			int64(0),        // OldResolution
			int64(1),        // NewResolution
			now,             // CreatedAt
		},
	}

	event, err := ScanEvent(scanner)
	require.NoError(t, err)
	assert.Equal(t, int64(88), event.ID)
	assert.True(t, event.EventType.Has(EventComment))
	assert.True(t, event.EventType.Has(EventStatusChange))
	require.NotNil(t, event.CommentID)
	assert.Equal(t, int64(12), *event.CommentID)
	assert.Nil(t, event.LabelID)
	require.NotNil(t, event.NewStatus)
	assert.Equal(t, StatusResolved, *event.NewStatus)
	require.NotNil(t, event.NewResolution)
	assert.Equal(t, ResolutionFixed, *event.NewResolution)
}
