package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReader_SkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.tsv")
	if err := os.WriteFile(path, []byte("header\nfirst\nsecond"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path, 1024)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()

	var lines []string
	var numbers []int
	for r.Next() {
		lines = append(lines, r.Line())
		numbers = append(numbers, r.LineNo())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	if strings.Join(lines, ",") != "first,second" {
		t.Errorf("expected [first second], got %v", lines)
	}
	if len(numbers) != 2 || numbers[0] != 2 || numbers[1] != 3 {
		t.Errorf("expected line numbers [2 3], got %v", numbers)
	}
}

func TestReader_LineTooLong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.tsv")
	content := "header\n" + strings.Repeat("x", 4096) + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path, 1024)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()

	for r.Next() {
	}
	if r.Err() == nil {
		t.Error("expected error for line longer than the buffer limit")
	}
}

func TestOpenReader_NonExistent(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "missing.tsv"), 1024)
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
