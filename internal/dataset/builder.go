// Package dataset accumulates cleaned records for one language and decides
// which of them are written, and in what order.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/ppiankov/citeprep/internal/extract"
	"github.com/ppiankov/citeprep/internal/model"
)

// Options controls filtering and emission
type Options struct {
	// MinTokens is exclusive: a sentence needs more tokens than this to be kept.
	MinTokens int

	// Sorted orders hashes lexically within each group instead of by insertion.
	Sorted bool

	// ConsistentLabels groups each emitted hash by its final stored label and
	// emits it once. When false, output matches the legacy tooling byte for
	// byte, including hashes filed under a label their final record no longer has.
	ConsistentLabels bool
}

// OptionsFromConfig derives builder options from the run configuration
func OptionsFromConfig(cfg *model.Config) Options {
	return Options{
		MinTokens:        cfg.Filter.MinTokens,
		Sorted:           cfg.Output.Order == model.OrderSorted,
		ConsistentLabels: cfg.Output.ConsistentLabels,
	}
}

// Builder holds the record mapping and the positive/negative hash sets
// for a single input file. It is not safe for concurrent use.
type Builder struct {
	opts      Options
	records   map[string]model.CleanedRecord
	positives *hashSet
	negatives *hashSet

	duplicates int
	short      int
	written    int
}

// NewBuilder creates an empty builder
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:      opts,
		records:   make(map[string]model.CleanedRecord),
		positives: newHashSet(),
		negatives: newHashSet(),
	}
}

// Add stores rec under its content hash, replacing any earlier record with
// the same sentence, and files the hash under its label if the sentence is
// long enough.
func (b *Builder) Add(rec model.CleanedRecord) {
	if _, exists := b.records[rec.Hash]; exists {
		b.duplicates++
	}
	b.records[rec.Hash] = rec

	if extract.TokenCount(rec.Sentence) <= b.opts.MinTokens {
		b.short++
		return
	}

	if rec.Label == model.Positive {
		b.positives.add(rec.Hash)
	} else {
		b.negatives.add(rec.Hash)
	}
}

// Len returns the number of distinct content hashes stored
func (b *Builder) Len() int {
	return len(b.records)
}

// Conflicts counts hashes whose set membership disagrees with the label of
// the record finally stored for them, including hashes in both sets.
func (b *Builder) Conflicts() int {
	conflicts := 0
	for _, hash := range b.negatives.order {
		if b.positives.has(hash) || b.records[hash].Label != model.Negative {
			conflicts++
		}
	}
	for _, hash := range b.positives.order {
		if !b.negatives.has(hash) && b.records[hash].Label != model.Positive {
			conflicts++
		}
	}
	return conflicts
}

// Records returns the records to write, negatives first
func (b *Builder) Records() []model.CleanedRecord {
	var hashes []string
	if b.opts.ConsistentLabels {
		hashes = b.consistentOrder()
	} else {
		hashes = append(b.negatives.list(b.opts.Sorted), b.positives.list(b.opts.Sorted)...)
	}

	out := make([]model.CleanedRecord, 0, len(hashes))
	for _, hash := range hashes {
		out = append(out, b.records[hash])
	}
	return out
}

// consistentOrder emits every filed hash once, grouped by its stored label
func (b *Builder) consistentOrder() []string {
	seen := make(map[string]bool, b.negatives.len()+b.positives.len())
	var neg, pos []string

	for _, set := range []*hashSet{b.negatives, b.positives} {
		for _, hash := range set.order {
			if seen[hash] {
				continue
			}
			seen[hash] = true
			if b.records[hash].Label == model.Positive {
				pos = append(pos, hash)
			} else {
				neg = append(neg, hash)
			}
		}
	}

	if b.opts.Sorted {
		sort.Strings(neg)
		sort.Strings(pos)
	}
	return append(neg, pos...)
}

// WriteTo writes the emitted records as TSV lines and returns the bytes written
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	var n int64
	for _, rec := range b.Records() {
		written, err := bw.WriteString(rec.Line())
		n += int64(written)
		if err != nil {
			return n, fmt.Errorf("write record %s: %w", rec.Hash, err)
		}
		b.written++
	}

	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}
	return n, nil
}

// Stats fills the builder's counters into stats
func (b *Builder) Stats(stats *model.LanguageStats) {
	stats.Records = len(b.records)
	stats.Duplicates = b.duplicates
	stats.ShortSentences = b.short
	stats.Positives = b.positives.len()
	stats.Negatives = b.negatives.len()
	stats.LabelConflicts = b.Conflicts()
	stats.Written = b.written
}
