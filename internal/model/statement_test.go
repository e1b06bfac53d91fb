package model

import (
	"errors"
	"testing"
)

func TestParseRecord(t *testing.T) {
	line := "Q1\tR1\t2020-01-01\tTitle\tSec\t0\t10\t<b>The cat</b>\tpara\tN/A\textra"

	rec, err := ParseRecord(line, 2)
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}

	meta := rec.Meta()
	want := [MetaFields]string{"Q1", "R1", "2020-01-01", "Title", "Sec", "0", "10"}
	if meta != want {
		t.Errorf("Meta() = %v, want %v", meta, want)
	}
	if rec.Statement() != "<b>The cat</b>" {
		t.Errorf("Statement() = %q", rec.Statement())
	}
	if rec.Citations() != "N/A" {
		t.Errorf("Citations() = %q", rec.Citations())
	}
}

func TestParseRecord_ShortRow(t *testing.T) {
	_, err := ParseRecord("Q1\tR1\tonly three", 7)
	if err == nil {
		t.Fatal("expected error for short row, got nil")
	}

	if !errors.Is(err, ErrShortRow) {
		t.Errorf("expected ErrShortRow, got %v", err)
	}

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected *RowError, got %T", err)
	}
	if rowErr.Line != 7 || rowErr.Fields != 3 {
		t.Errorf("expected line 7 with 3 fields, got line %d with %d fields", rowErr.Line, rowErr.Fields)
	}
}

func TestParseRecord_EmptyCitations(t *testing.T) {
	// Ten fields with an empty trailing citations column
	rec, err := ParseRecord("a\tb\tc\td\te\tf\tg\th\ti\t", 2)
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if rec.Citations() != "" {
		t.Errorf("expected empty citations, got %q", rec.Citations())
	}
}

func TestCleanedRecord_Line(t *testing.T) {
	rec := CleanedRecord{
		Meta:     [MetaFields]string{"Q1", "R1", "2020-01-01", "Title", "Sec", "0", "10"},
		Sentence: "The cat sat on the mat",
		Label:    Negative,
	}

	want := "Q1\tR1\t2020-01-01\tTitle\tSec\t0\t10\tThe cat sat on the mat\t0\n"
	if got := rec.Line(); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}

	rec.Label = Positive
	if got := rec.Line(); got[len(got)-2:] != "1\n" {
		t.Errorf("expected positive label suffix, got %q", got)
	}
}

func TestReport_Totals(t *testing.T) {
	r := &Report{Languages: []LanguageStats{
		{Language: "en", Lines: 10, Written: 4, Positives: 3, Negatives: 1},
		{Language: "fr", Lines: 5, Written: 2, Positives: 1, Negatives: 1, LabelConflicts: 1},
	}}

	total := r.Totals()
	if total.Lines != 15 || total.Written != 6 || total.Positives != 4 || total.Negatives != 2 || total.LabelConflicts != 1 {
		t.Errorf("unexpected totals: %+v", total)
	}
}
