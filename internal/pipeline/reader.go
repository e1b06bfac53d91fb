package pipeline

import (
	"bufio"
	"fmt"
	"os"
)

// Reader iterates over the data rows of a statement dump, skipping the header
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner
	lineNo  int
}

// OpenReader opens the dump at path and consumes its header line.
// maxLineBytes bounds the length of a single row.
func OpenReader(path string, maxLineBytes int) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	scanner := bufio.NewScanner(file)
	initial := 64 * 1024
	if maxLineBytes < initial {
		initial = maxLineBytes
	}
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)

	r := &Reader{file: file, scanner: scanner}

	// Header: read and discard. An empty file simply has no rows.
	if scanner.Scan() {
		r.lineNo = 1
	}

	return r, nil
}

// Next advances to the next data row
func (r *Reader) Next() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.lineNo++
	return true
}

// Line returns the current row without its line terminator
func (r *Reader) Line() string {
	return r.scanner.Text()
}

// LineNo returns the 1-based line number of the current row, header included
func (r *Reader) LineNo() int {
	return r.lineNo
}

// Err returns the first read error, if any
func (r *Reader) Err() error {
	return r.scanner.Err()
}

// Close closes the underlying file
func (r *Reader) Close() error {
	return r.file.Close()
}
