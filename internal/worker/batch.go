package worker

import (
	"context"
	"errors"

	"github.com/ppiankov/citeprep/internal/model"
)

// Processor defines the interface for processing one language
type Processor interface {
	ProcessLanguage(ctx context.Context, lang model.Language) (*model.LanguageStats, error)
}

// LanguageJob represents a language processing job
type LanguageJob struct {
	Index     int // position in the configured language list
	Language  model.Language
	Processor Processor
}

// Execute executes the language job
func (j *LanguageJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &LanguageResult{Index: j.Index, Language: j.Language, Error: err}
	}

	stats, err := j.Processor.ProcessLanguage(ctx, j.Language)
	return &LanguageResult{
		Index:    j.Index,
		Language: j.Language,
		Stats:    stats,
		Error:    err,
	}
}

// LanguageResult represents the result of a language job
type LanguageResult struct {
	Index    int
	Language model.Language
	Stats    *model.LanguageStats
	Error    error
}

// GetError returns the error from the language result
func (r *LanguageResult) GetError() error {
	return r.Error
}

// Skipped reports whether the job never ran because an earlier job failed
func (r *LanguageResult) Skipped() bool {
	return r.Error != nil && errors.Is(r.Error, context.Canceled) && r.Stats == nil
}

// BatchProcessor processes several languages with a bounded number of workers
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessLanguages runs one job per language and returns a result for every
// language in the given order. Processing stops at the first failure; languages
// that never ran get a result carrying context.Canceled.
func (b *BatchProcessor) ProcessLanguages(ctx context.Context, langs []model.Language) []*LanguageResult {
	out := make([]*LanguageResult, len(langs))
	if len(langs) == 0 {
		return out
	}

	pool := NewPool(ctx, b.concurrency, true)
	pool.Start()

	for i, lang := range langs {
		pool.Submit(&LanguageJob{
			Index:     i,
			Language:  lang,
			Processor: b.processor,
		})
	}

	for _, result := range pool.Wait() {
		res := result.(*LanguageResult)
		out[res.Index] = res
	}

	for i, res := range out {
		if res == nil {
			out[i] = &LanguageResult{Index: i, Language: langs[i], Error: context.Canceled}
		}
	}

	return out
}

// FirstError returns the first failure in language order, ignoring languages
// that were only canceled because of it
func FirstError(results []*LanguageResult) error {
	var canceled error
	for _, res := range results {
		if res == nil || res.Error == nil {
			continue
		}
		if errors.Is(res.Error, context.Canceled) {
			if canceled == nil {
				canceled = res.Error
			}
			continue
		}
		return res.Error
	}
	return canceled
}
