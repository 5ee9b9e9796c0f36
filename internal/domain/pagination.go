package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Cursor is an opaque paging token. Next is the last id of the previous
// page, pages continue strictly after it.
type Cursor struct {
	Next  int64
	Count int
}

// NewCursor builds a first-page cursor with a clamped page size.
func NewCursor(count int) *Cursor {
	if count <= 0 {
		count = DefaultPageSize
	}
	if count > MaxPageSize {
		count = MaxPageSize
	}
	return &Cursor{Count: count}
}

// Encode serializes the cursor for transport.
func (c *Cursor) Encode() string {
	if c == nil {
		return ""
	}
	raw := fmt.Sprintf("%d %d", c.Next, c.Count)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a transport cursor. Empty input yields a fresh
// cursor with the requested count.
func DecodeCursor(encoded string, count int) (*Cursor, error) {
	cursor := NewCursor(count)
	if encoded == "" {
		return cursor, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewFieldValidationError("cursor", "is malformed")
	}
	parts := strings.Fields(string(raw))
	if len(parts) != 2 {
		return nil, NewFieldValidationError("cursor", "is malformed")
	}
	next, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, NewFieldValidationError("cursor", "is malformed")
	}
	embedded, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, NewFieldValidationError("cursor", "is malformed")
	}

	cursor.Next = next
	if count <= 0 {
		cursor.Count = NewCursor(embedded).Count
	}
	return cursor, nil
}

func parseCount(s string) int {
	if s == "" {
		return 0
	}
	count, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return count
}

func trimUserPrefix(username string) string {
	return strings.TrimPrefix(username, "~")
}
