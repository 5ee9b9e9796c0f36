package domain

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCursor(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewCursor(0).Count)
	assert.Equal(t, DefaultPageSize, NewCursor(-5).Count)
	assert.Equal(t, 10, NewCursor(10).Count)
	assert.Equal(t, MaxPageSize, NewCursor(5000).Count)
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := &Cursor{Next: 1337, Count: 50}
	encoded := cursor.Encode()
	require.NotEmpty(t, encoded)

	decoded, err := DecodeCursor(encoded, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1337), decoded.Next)
	assert.Equal(t, 50, decoded.Count)
}

func TestDecodeCursor(t *testing.T) {
	t.Run("empty yields fresh cursor", func(t *testing.T) {
		cursor, err := DecodeCursor("", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(0), cursor.Next)
		assert.Equal(t, 30, cursor.Count)
	})

	t.Run("embedded count survives when none requested", func(t *testing.T) {
		encoded := (&Cursor{Next: 7, Count: 42}).Encode()
		cursor, err := DecodeCursor(encoded, 0)
		require.NoError(t, err)
		assert.Equal(t, 42, cursor.Count)
	})

	t.Run("requested count wins", func(t *testing.T) {
		encoded := (&Cursor{Next: 7, Count: 42}).Encode()
		cursor, err := DecodeCursor(encoded, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, cursor.Count)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := DecodeCursor("!!!", 0)
		assert.Error(t, err)
	})

	t.Run("wrong field count", func(t *testing.T) {
		encoded := base64.RawURLEncoding.EncodeToString([]byte("1 2 3"))
		_, err := DecodeCursor(encoded, 0)
		assert.Error(t, err)
	})

	t.Run("not numbers", func(t *testing.T) {
		encoded := base64.RawURLEncoding.EncodeToString([]byte("a b"))
		_, err := DecodeCursor(encoded, 0)
		assert.Error(t, err)
	})
}

func TestNilCursorEncode(t *testing.T) {
	var cursor *Cursor
	assert.Equal(t, "", cursor.Encode())
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 0, parseCount(""))
	assert.Equal(t, 0, parseCount("abc"))
	assert.Equal(t, 25, parseCount("25"))
}

func TestTrimUserPrefix(t *testing.T) {
	assert.Equal(t, "alice", trimUserPrefix("~alice"))
	assert.Equal(t, "alice", trimUserPrefix("alice"))
}
