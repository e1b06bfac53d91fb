package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Column layout of clean_statements.txt:
// entity_id, revision_id, timestamp, entity_title, section, start, offset, statement, paragraph, citations
const (
	MetaFields     = 7 // entity_id .. offset, copied through unchanged
	StatementField = 7
	CitationsField = 9
	MinFields      = 10
)

// ErrShortRow is returned for input rows with fewer than MinFields columns
var ErrShortRow = errors.New("row has too few fields")

// RowError reports a malformed input row
type RowError struct {
	Line   int // 1-based line number in the input file, header included
	Fields int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v (got %d, need %d)", e.Line, ErrShortRow, e.Fields, MinFields)
}

func (e *RowError) Unwrap() error {
	return ErrShortRow
}

// Label marks whether a statement carried a citation
type Label int

const (
	Negative Label = 0 // citations field was "N/A"
	Positive Label = 1
)

func (l Label) String() string {
	return strconv.Itoa(int(l))
}

// InputRecord is one tab-separated row of a statement dump
type InputRecord struct {
	Fields []string
}

// ParseRecord splits a line (terminator already stripped) into an InputRecord.
// lineNo is only used for error reporting.
func ParseRecord(line string, lineNo int) (InputRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < MinFields {
		return InputRecord{}, &RowError{Line: lineNo, Fields: len(fields)}
	}
	return InputRecord{Fields: fields}, nil
}

// Meta returns the identifying columns entity_id through offset
func (r InputRecord) Meta() [MetaFields]string {
	var meta [MetaFields]string
	copy(meta[:], r.Fields[:MetaFields])
	return meta
}

// Statement returns the raw, HTML-bearing statement text
func (r InputRecord) Statement() string {
	return r.Fields[StatementField]
}

// Citations returns the raw citations column
func (r InputRecord) Citations() string {
	return r.Fields[CitationsField]
}

// CleanedRecord is a labeled, cleaned statement keyed by its content hash
type CleanedRecord struct {
	Meta     [MetaFields]string
	Sentence string
	Label    Label
	Hash     string
}

// Line renders the record as an output TSV line, terminator included
func (r CleanedRecord) Line() string {
	var b strings.Builder
	for _, f := range r.Meta {
		b.WriteString(f)
		b.WriteByte('\t')
	}
	b.WriteString(r.Sentence)
	b.WriteByte('\t')
	b.WriteString(r.Label.String())
	b.WriteByte('\n')
	return b.String()
}
