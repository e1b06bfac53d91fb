package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/citeprep/internal/model"
	"github.com/ppiankov/citeprep/internal/pipeline"
	"github.com/spf13/cobra"
)

// fileCmd cleans a single dump outside the <code>wiki/ layout
var fileCmd = &cobra.Command{
	Use:   "file <input> <output>",
	Short: "Clean a single statement dump",
	Long: `Clean one statement dump into one training file, using the same cleaning,
deduplication and labeling rules as the batch run.

Example:
  citeprep file dumps/dewiki.txt out/german.tsv
  citeprep file dumps/dewiki.txt out/german.tsv --skip-malformed --order sorted`,
	Args: cobra.ExactArgs(2),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	p := pipeline.NewPipeline(cfg, newLogger(cfg.Output.Verbose))

	stats, err := p.ProcessFile(ctx, in, out)
	if err != nil {
		return fmt.Errorf("clean %s: %w", in, err)
	}

	fmt.Fprintf(os.Stderr, "✓ %s → %s (%d negatives, %d positives)\n", in, out, stats.Negatives, stats.Positives)

	return writeStats(&model.Report{
		StartedAt: started.UTC(),
		Elapsed:   time.Since(started),
		Languages: []model.LanguageStats{*stats},
	})
}
