package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/citeprep/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	noCache bool
	langs   []string
)

// rootCmd represents the base command; with no subcommand it runs the batch
var rootCmd = &cobra.Command{
	Use:   "citeprep",
	Short: "citeprep - Build citation-need training sets from statement dumps",
	Long: `citeprep turns per-language statement dumps scraped from wiki revisions
into cleaned, deduplicated, labeled training files.

For every configured language it reads <input-root>/<code>wiki/clean_statements.txt,
strips HTML from each statement, normalizes whitespace, deduplicates identical
sentences by content hash, labels each sentence by whether it carried a citation,
drops sentences of five tokens or fewer, and writes <output-root>/<name>.tsv with
uncited sentences first.

Run without arguments to process en, fr and it with the default layout.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runBatch,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of citeprep.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("citeprep v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := model.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	// Global flags
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.citeprep/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Cleaning flags, shared with the file command
	flags.Int("min-tokens", defaults.Filter.MinTokens, "keep sentences with more than this many space-separated tokens")
	flags.Bool("skip-malformed", defaults.Rows.SkipMalformed, "skip rows with fewer than 10 fields instead of failing")
	flags.Bool("consistent-labels", defaults.Output.ConsistentLabels, "group duplicate sentences by their final label instead of emitting them once per set")
	flags.String("order", defaults.Output.Order, "order within the negative and positive groups (insertion, sorted)")
	flags.BoolVar(&noCache, "no-cache", false, "disable the statement cache")
	flags.String("stats", "", "write a YAML run report to this path")

	// Batch flags
	rootCmd.Flags().String("input-root", defaults.Paths.InputRoot, "directory holding the <code>wiki/ dump directories")
	rootCmd.Flags().String("input-file", defaults.Paths.InputFile, "dump file name inside each <code>wiki/ directory")
	rootCmd.Flags().String("output-root", defaults.Paths.OutputRoot, "directory for the <name>.tsv outputs")
	rootCmd.Flags().StringSliceVar(&langs, "lang", nil, "only process these language codes (repeatable)")
	rootCmd.Flags().Int("concurrency", defaults.Concurrency.Workers, "number of languages processed at once")

	// Bind flags to viper
	bind := map[string]string{
		"output.verbose":           "verbose",
		"filter.min_tokens":        "min-tokens",
		"rows.skip_malformed":      "skip-malformed",
		"output.consistent_labels": "consistent-labels",
		"output.order":             "order",
		"stats":                    "stats",
	}
	for key, name := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}

	localBind := map[string]string{
		"paths.input_root":    "input-root",
		"paths.input_file":    "input-file",
		"paths.output_root":   "output-root",
		"concurrency.workers": "concurrency",
	}
	for key, name := range localBind {
		_ = viper.BindPFlag(key, rootCmd.Flags().Lookup(name))
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper(), model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.citeprep")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CITEPREP_*, e.g. CITEPREP_PATHS_INPUT_ROOT
	viper.SetEnvPrefix("CITEPREP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	} else if err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

// setDefaults registers every config key so env variables can override it
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("paths.input_root", cfg.Paths.InputRoot)
	v.SetDefault("paths.input_file", cfg.Paths.InputFile)
	v.SetDefault("paths.output_root", cfg.Paths.OutputRoot)
	v.SetDefault("languages", cfg.Languages)
	v.SetDefault("filter.min_tokens", cfg.Filter.MinTokens)
	v.SetDefault("rows.skip_malformed", cfg.Rows.SkipMalformed)
	v.SetDefault("rows.max_line_bytes", cfg.Rows.MaxLineBytes)
	v.SetDefault("output.order", cfg.Output.Order)
	v.SetDefault("output.consistent_labels", cfg.Output.ConsistentLabels)
	v.SetDefault("output.create_dirs", cfg.Output.CreateDirs)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.max_entries", cfg.Cache.MaxEntries)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
}

// loadConfig resolves the effective configuration for cmd.
// Precedence: flags, CITEPREP_* env, config file, defaults.
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	var cacheEnabled *bool
	if cmd.Flags().Changed("no-cache") {
		enabled := !noCache
		cacheEnabled = &enabled
	}
	return decodeConfig(viper.GetViper(), cacheEnabled, langs)
}

// decodeConfig builds a validated config from v. A non-nil cacheEnabled
// overrides cache.enabled; only restricts the languages.
func decodeConfig(v *viper.Viper, cacheEnabled *bool, only []string) (*model.Config, error) {
	cfg := model.DefaultConfig()
	// Supplied by the registered default or the config file; decoding into a
	// populated slice would keep stale trailing entries
	cfg.Languages = nil

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = model.DefaultLanguages()
	}

	if cacheEnabled != nil {
		cfg.Cache.Enabled = *cacheEnabled
	}

	cfg, err := cfg.SelectLanguages(only)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the stderr logger used by the pipeline
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
