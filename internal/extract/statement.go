package extract

import "github.com/ppiankov/citeprep/internal/model"

// Cleaner turns input records into cleaned records.
// Like TextExtractor it is not safe for concurrent use.
type Cleaner struct {
	text *TextExtractor
}

// NewCleaner creates a new record cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{text: NewTextExtractor()}
}

// Sentence extracts and cleans a raw statement
func (c *Cleaner) Sentence(statement string) string {
	return CleanSentence(c.text.Extract(statement))
}

// Record builds the cleaned record for rec using an already cleaned sentence
func Record(rec model.InputRecord, sentence string) model.CleanedRecord {
	return model.CleanedRecord{
		Meta:     rec.Meta(),
		Sentence: sentence,
		Label:    LabelFor(rec.Citations()),
		Hash:     ContentHash(sentence),
	}
}

// Clean extracts, cleans, labels and hashes a single input record
func (c *Cleaner) Clean(rec model.InputRecord) model.CleanedRecord {
	return Record(rec, c.Sentence(rec.Statement()))
}
