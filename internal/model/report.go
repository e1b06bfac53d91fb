package model

import "time"

// Report summarizes a citeprep run, one entry per processed language
type Report struct {
	StartedAt time.Time       `json:"started_at" yaml:"started_at"`
	Elapsed   time.Duration   `json:"elapsed" yaml:"elapsed"`
	Languages []LanguageStats `json:"languages" yaml:"languages"`
}

// LanguageStats holds the counters gathered while processing one input file
type LanguageStats struct {
	Language   string `json:"language" yaml:"language"`
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`

	Lines          int `json:"lines" yaml:"lines"`                     // data rows read, header excluded
	SkippedRows    int `json:"skipped_rows" yaml:"skipped_rows"`       // malformed rows skipped
	Records        int `json:"records" yaml:"records"`                 // distinct content hashes
	Duplicates     int `json:"duplicates" yaml:"duplicates"`           // rows whose hash was already stored
	ShortSentences int `json:"short_sentences" yaml:"short_sentences"` // rows at or under the token minimum
	Positives      int `json:"positives" yaml:"positives"`
	Negatives      int `json:"negatives" yaml:"negatives"`
	LabelConflicts int `json:"label_conflicts" yaml:"label_conflicts"`
	Written        int `json:"written" yaml:"written"`
	CacheHits      int `json:"cache_hits" yaml:"cache_hits"`

	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Totals adds up the counters of every language in the report
func (r *Report) Totals() LanguageStats {
	total := LanguageStats{Language: "total"}
	for _, s := range r.Languages {
		total.Lines += s.Lines
		total.SkippedRows += s.SkippedRows
		total.Records += s.Records
		total.Duplicates += s.Duplicates
		total.ShortSentences += s.ShortSentences
		total.Positives += s.Positives
		total.Negatives += s.Negatives
		total.LabelConflicts += s.LabelConflicts
		total.Written += s.Written
		total.CacheHits += s.CacheHits
		total.Elapsed += s.Elapsed
	}
	return total
}
