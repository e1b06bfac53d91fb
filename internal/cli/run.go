package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ppiankov/citeprep/internal/model"
	"github.com/ppiankov/citeprep/internal/pipeline"
	"github.com/ppiankov/citeprep/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  citeprep\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input root:   %s\n", cfg.Paths.InputRoot)
	fmt.Fprintf(os.Stderr, "  Output root:  %s\n", cfg.Paths.OutputRoot)
	fmt.Fprintf(os.Stderr, "  Languages:    %s\n", languageCodes(cfg.Languages))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Min tokens:   >%d\n", cfg.Filter.MinTokens)
	fmt.Fprintf(os.Stderr, "\n")

	started := time.Now()
	p := pipeline.NewPipeline(cfg, newLogger(cfg.Output.Verbose))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	results := processor.ProcessLanguages(ctx, cfg.Languages)

	report := &model.Report{StartedAt: started.UTC()}
	for _, result := range results {
		switch {
		case result.Skipped():
			fmt.Fprintf(os.Stderr, "- %s: not processed\n", result.Language.Code)
		case result.Error != nil:
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Language.Code, result.Error)
		default:
			report.Languages = append(report.Languages, *result.Stats)
			fmt.Fprintf(os.Stderr, "✓ %s → %s (%d negatives, %d positives)\n",
				result.Language.Code, result.Stats.OutputPath, result.Stats.Negatives, result.Stats.Positives)
		}
	}
	report.Elapsed = time.Since(started)

	printSummary(report)

	if err := writeStats(report); err != nil {
		return err
	}

	return worker.FirstError(results)
}

// printSummary prints run totals to stderr
func printSummary(report *model.Report) {
	total := report.Totals()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Run Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Languages:  %d\n", len(report.Languages))
	fmt.Fprintf(os.Stderr, "  Rows:       %d\n", total.Lines)
	fmt.Fprintf(os.Stderr, "  Unique:     %d\n", total.Records)
	fmt.Fprintf(os.Stderr, "  Written:    %d\n", total.Written)
	if total.SkippedRows > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped:    %d malformed rows\n", total.SkippedRows)
	}
	if total.LabelConflicts > 0 {
		fmt.Fprintf(os.Stderr, "  Conflicts:  %d sentences seen with both labels\n", total.LabelConflicts)
	}
	fmt.Fprintf(os.Stderr, "  Elapsed:    %v\n", report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")
}

// writeStats writes the YAML run report if --stats was given
func writeStats(report *model.Report) error {
	path := viper.GetString("stats")
	if path == "" {
		return nil
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create stats directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote stats: %s\n", path)
	return nil
}

func languageCodes(langs []model.Language) string {
	codes := make([]string, len(langs))
	for i, lang := range langs {
		codes[i] = lang.Code
	}
	return strings.Join(codes, ", ")
}
