package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/citeprep/internal/cache"
	"github.com/ppiankov/citeprep/internal/dataset"
	"github.com/ppiankov/citeprep/internal/extract"
	"github.com/ppiankov/citeprep/internal/model"
	"golang.org/x/time/rate"
)

const progressInterval = 5 * time.Second

// Pipeline cleans statement dumps into labeled training files.
// A Pipeline holds no per-file state, so one instance may process several
// languages concurrently.
type Pipeline struct {
	config *model.Config
	logger *slog.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		config: cfg,
		logger: logger,
	}
}

// ProcessLanguage cleans the configured dump for lang into its output file
func (p *Pipeline) ProcessLanguage(ctx context.Context, lang model.Language) (*model.LanguageStats, error) {
	stats, err := p.process(ctx, lang.Code, p.config.InputPath(lang), p.config.OutputPath(lang))
	if err != nil {
		return stats, fmt.Errorf("%s: %w", lang.Code, err)
	}
	return stats, nil
}

// ProcessFile cleans an arbitrary statement dump at inPath into outPath
func (p *Pipeline) ProcessFile(ctx context.Context, inPath, outPath string) (*model.LanguageStats, error) {
	return p.process(ctx, filepath.Base(inPath), inPath, outPath)
}

func (p *Pipeline) process(ctx context.Context, name, inPath, outPath string) (*model.LanguageStats, error) {
	start := time.Now()
	stats := &model.LanguageStats{
		Language:   name,
		InputPath:  inPath,
		OutputPath: outPath,
	}
	logger := p.logger.With("language", name)

	builder := dataset.NewBuilder(dataset.OptionsFromConfig(p.config))
	memo := p.newCache()
	defer func() { _ = memo.Clear() }()

	logger.Debug("reading statements", "path", inPath)
	if err := p.readStatements(ctx, inPath, builder, memo, stats, logger); err != nil {
		return stats, err
	}

	logger.Debug("writing dataset", "path", outPath)
	if err := p.writeDataset(outPath, builder); err != nil {
		return stats, err
	}

	builder.Stats(stats)
	stats.Elapsed = time.Since(start)

	if stats.LabelConflicts > 0 {
		logger.Warn("hashes filed under both labels", "count", stats.LabelConflicts,
			"consistent_labels", p.config.Output.ConsistentLabels)
	}
	logger.Info("language done",
		"lines", stats.Lines,
		"records", stats.Records,
		"negatives", stats.Negatives,
		"positives", stats.Positives,
		"written", stats.Written,
		"elapsed", stats.Elapsed.Round(time.Millisecond))

	return stats, nil
}

// readStatements feeds every data row of the dump at path into builder
func (p *Pipeline) readStatements(ctx context.Context, path string, builder *dataset.Builder, memo cache.Cache, stats *model.LanguageStats, logger *slog.Logger) error {
	r, err := OpenReader(path, p.config.Rows.MaxLineBytes)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	cleaner := extract.NewCleaner()
	progress := rate.Sometimes{Interval: progressInterval}
	cacheFull := false

	for r.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Lines++

		rec, err := model.ParseRecord(r.Line(), r.LineNo())
		if err != nil {
			var rowErr *model.RowError
			if p.config.Rows.SkipMalformed && errors.As(err, &rowErr) {
				stats.SkippedRows++
				logger.Warn("skipping malformed row", "line", rowErr.Line, "fields", rowErr.Fields)
				continue
			}
			return fmt.Errorf("%s: %w", path, err)
		}

		key := cache.CacheKey(rec.Statement())
		sentence, hit := memo.Get(key)
		if hit {
			stats.CacheHits++
		} else {
			sentence = cleaner.Sentence(rec.Statement())
			if err := memo.Set(key, sentence); errors.Is(err, cache.ErrFull) && !cacheFull {
				cacheFull = true
				logger.Debug("statement cache full", "entries", memo.Len())
			}
		}

		builder.Add(extract.Record(rec, sentence))

		progress.Do(func() {
			logger.Info("progress", "lines", stats.Lines, "records", builder.Len())
		})
	}

	if err := r.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// writeDataset creates or truncates path and writes the emitted records.
// A failure part way through leaves a partial file behind.
func (p *Pipeline) writeDataset(path string, builder *dataset.Builder) (err error) {
	if p.config.Output.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	if _, err := builder.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (p *Pipeline) newCache() cache.Cache {
	if !p.config.Cache.Enabled {
		return cache.Nop{}
	}
	return cache.NewMemoryCache(p.config.Cache.MaxEntries)
}
