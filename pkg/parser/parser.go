package parser

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single line; Hammer dumps can carry very long
// captured terminal rows.
const maxLineSize = 1024 * 1024

// LineSource reads raw lines from a log file or reader.
// It is meant for sequential access only.
type LineSource struct {
	file    *os.File
	scanner *bufio.Scanner
	name    string
	lineNum int
}

// OpenLineSource opens path for line-by-line reading.
func OpenLineSource(path string) (*LineSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	s := NewLineSource(f, path)
	s.file = f
	return s, nil
}

// NewLineSource reads lines from r. name is only used in error messages.
func NewLineSource(r io.Reader, name string) *LineSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanRawLines)
	return &LineSource{
		scanner: scanner,
		name:    name,
	}
}

// Next returns the next line without its trailing newline.
// Returns io.EOF when the input is exhausted.
func (s *LineSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.scanner.Scan() {
		s.lineNum++
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", s.name, err)
	}
	return "", io.EOF
}

// LineNum returns the 1-based number of the last line read.
func (s *LineSource) LineNum() int {
	return s.lineNum
}

// Close releases the underlying file, if any.
func (s *LineSource) Close() error {
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}

// scanRawLines is bufio.ScanLines without the carriage-return stripping.
// Dump files mark the end of an entry with "\r" and the patterns rely on it.
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[0:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
