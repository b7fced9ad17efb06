package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerScanner_SingleChunk(t *testing.T) {
	var s MarkerScanner

	before, found := s.Feed([]byte("hello\njs> "), []byte("js>"))
	assert.True(t, found)
	assert.Equal(t, "hello\n", string(before))
	assert.Equal(t, 1, s.Buffered(), "trailing space stays buffered")
}

func TestMarkerScanner_SplitMarker(t *testing.T) {
	var s MarkerScanner
	marker := []byte("js>")

	_, found := s.Feed([]byte("j"), marker)
	assert.False(t, found)

	before, found := s.Feed([]byte("s>"), marker)
	assert.True(t, found)
	assert.Empty(t, before)
	assert.Equal(t, 0, s.Buffered())
}

func TestMarkerScanner_SplitAcrossManyChunks(t *testing.T) {
	var s MarkerScanner
	marker := []byte("gvrf>")

	chunks := []string{"Welcome to GearVR Framework\n", "g", "v", "r", "f", ">", " "}
	var found bool
	var before []byte
	for i, c := range chunks {
		before, found = s.Feed([]byte(c), marker)
		if found {
			assert.Equal(t, 5, i)
			break
		}
	}

	assert.True(t, found)
	assert.Equal(t, "Welcome to GearVR Framework\n", string(before))
}

func TestMarkerScanner_KeepsOutputAfterMarker(t *testing.T) {
	var s MarkerScanner

	before, found := s.Feed([]byte("a js> b js> "), []byte("js>"))
	assert.True(t, found)
	assert.Equal(t, "a ", string(before))

	before, found = s.Scan([]byte("js>"))
	assert.True(t, found)
	assert.Equal(t, " b ", string(before))

	_, found = s.Scan([]byte("js>"))
	assert.False(t, found)
}

func TestMarkerScanner_ScanWithDifferentMarker(t *testing.T) {
	var s MarkerScanner

	// A long unmatched feed advances the cursor for the first marker.
	_, found := s.Feed([]byte("xxxxxxxxxxjs>"), []byte("gvrf>"))
	assert.False(t, found)

	// A new wait for another marker still sees the whole buffer.
	before, found := s.Scan([]byte("js>"))
	assert.True(t, found)
	assert.Equal(t, "xxxxxxxxxx", string(before))
}

func TestMarkerScanner_NoRescanOfSearchedBytes(t *testing.T) {
	var s MarkerScanner
	marker := []byte("js>")

	_, found := s.Feed([]byte("0123456789"), marker)
	assert.False(t, found)
	assert.Equal(t, 8, s.cursor)

	_, found = s.Feed([]byte("abc"), marker)
	assert.False(t, found)
	assert.Equal(t, 11, s.cursor)
}

func TestMarkerScanner_Reset(t *testing.T) {
	var s MarkerScanner

	s.Feed([]byte("partial j"), []byte("js>"))
	s.Reset()

	assert.Equal(t, 0, s.Buffered())
	_, found := s.Feed([]byte("s>"), []byte("js>"))
	assert.False(t, found)
}
