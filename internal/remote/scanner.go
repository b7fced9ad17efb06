package remote

import "bytes"

// MarkerScanner accumulates console output until a prompt marker shows up.
//
// Bytes already searched are not searched again: the cursor trails the end
// of the buffer by len(marker)-1 so a marker split across reads still
// matches. Output after a match is kept for the next wait.
type MarkerScanner struct {
	buf    []byte
	cursor int
}

// Feed appends chunk and reports whether marker is now present.
func (s *MarkerScanner) Feed(chunk []byte, marker []byte) (before []byte, found bool) {
	s.buf = append(s.buf, chunk...)
	return s.scan(marker)
}

// Scan starts a new wait: it searches everything already buffered for
// marker, which may differ from the one used by earlier Feed calls.
func (s *MarkerScanner) Scan(marker []byte) (before []byte, found bool) {
	s.cursor = 0
	return s.scan(marker)
}

func (s *MarkerScanner) scan(marker []byte) ([]byte, bool) {
	if len(marker) == 0 {
		return nil, true
	}

	i := bytes.Index(s.buf[s.cursor:], marker)
	if i < 0 {
		next := len(s.buf) - len(marker) + 1
		if next > s.cursor {
			s.cursor = next
		}
		return nil, false
	}

	end := s.cursor + i
	before := make([]byte, end)
	copy(before, s.buf[:end])

	rest := s.buf[end+len(marker):]
	s.buf = append(s.buf[:0], rest...)
	s.cursor = 0

	return before, true
}

// Buffered returns the number of bytes held since the last match.
func (s *MarkerScanner) Buffered() int {
	return len(s.buf)
}

// Reset drops buffered output, e.g. when the connection changes.
func (s *MarkerScanner) Reset() {
	s.buf = s.buf[:0]
	s.cursor = 0
}
