package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
	assert.Equal(t, 11, LimitWithBuffer(10))
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	encoded := EncodeCursor(Cursor{PerformedAt: at, ID: 99})

	cursor, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.True(t, cursor.PerformedAt.Equal(at))
	assert.Equal(t, int64(99), cursor.ID)
}

func TestParseCursorInvalid(t *testing.T) {
	empty, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = ParseCursor("not-base64!!")
	assert.Error(t, err)

	_, err = ParseCursor("aGVsbG8=") // decodes but lacks the separator
	assert.Error(t, err)
}
