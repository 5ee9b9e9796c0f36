package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContrastingTextColor(t *testing.T) {
	tests := []struct {
		background string
		want       string
	}{
		{"#ffffff", "#000000"},
		{"#000000", "#ffffff"},
		{"#ffff00", "#000000"}, // yellow
		{"#0000ff", "#ffffff"}, // blue
		{"#2f4f4f", "#ffffff"}, // dark slate
		{"#90ee90", "#000000"}, // light green
		{"not-a-color", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.background, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastingTextColor(tt.background))
		})
	}
}

func TestLabel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		label   Label
		wantErr bool
	}{
		{
			name:    "valid",
			label:   Label{TrackerID: 1, Name: "bug", Color: "#ff0000", TextColor: "#ffffff"},
			wantErr: false,
		},
		{
			name:    "text color optional",
			label:   Label{TrackerID: 1, Name: "bug", Color: "#ff0000"},
			wantErr: false,
		},
		{
			name:    "missing tracker",
			label:   Label{Name: "bug", Color: "#ff0000"},
			wantErr: true,
		},
		{
			name:    "missing name",
			label:   Label{TrackerID: 1, Color: "#ff0000"},
			wantErr: true,
		},
		{
			name:    "name too long",
			label:   Label{TrackerID: 1, Name: strings.Repeat("a", 51), Color: "#ff0000"},
			wantErr: true,
		},
		{
			name:    "short hex",
			label:   Label{TrackerID: 1, Name: "bug", Color: "#f00"},
			wantErr: true,
		},
		{
			name:    "missing hash",
			label:   Label{TrackerID: 1, Name: "bug", Color: "ff0000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.label.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateLabelRequest_Validate(t *testing.T) {
	label, err := (&CreateLabelRequest{TrackerID: 1, Name: "bug", Color: "#000080"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", label.TextColor)

	label, err = (&CreateLabelRequest{TrackerID: 1, Name: "bug", Color: "#000080", TextColor: "#aaaaaa"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, "#aaaaaa", label.TextColor)

	_, err = (&CreateLabelRequest{TrackerID: 1, Name: "bug", Color: "blue"}).Validate()
	assert.Error(t, err)
}

func TestScanLabel(t *testing.T) {
	now := time.Now()
	scanner := &scanStub{
		data: []interface{}{
			int64(5),  // ID
			int64(1),  // TrackerID
			"bug",     // Name
			"#ff0000", // Color
			"#ffffff", // TextColor
			now,       // CreatedAt
		},
	}

	label, err := ScanLabel(scanner)
	require.NoError(t, err)
	assert.Equal(t, int64(5), label.ID)
	assert.Equal(t, "bug", label.Name)
	assert.Equal(t, "#ff0000", label.Color)
}
