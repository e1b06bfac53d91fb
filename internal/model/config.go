package model

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNoLanguages is returned when a configuration selects no languages.
	ErrNoLanguages = errors.New("no languages configured")

	// ErrUnknownLanguage is returned when a language filter names a code that is not configured.
	ErrUnknownLanguage = errors.New("unknown language")
)

// Output ordering within the negative and positive groups
const (
	OrderInsertion = "insertion" // first time a hash passed the filter
	OrderSorted    = "sorted"    // lexical order of the content hash
)

// Config holds the complete citeprep configuration
type Config struct {
	Paths       PathsConfig       `json:"paths" yaml:"paths" mapstructure:"paths"`
	Languages   []Language        `json:"languages" yaml:"languages" mapstructure:"languages"`
	Filter      FilterConfig      `json:"filter" yaml:"filter" mapstructure:"filter"`
	Rows        RowsConfig        `json:"rows" yaml:"rows" mapstructure:"rows"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	Cache       CacheConfig       `json:"cache" yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// PathsConfig locates input dumps and output files
type PathsConfig struct {
	InputRoot  string `json:"input_root" yaml:"input_root" mapstructure:"input_root"`
	InputFile  string `json:"input_file" yaml:"input_file" mapstructure:"input_file"`
	OutputRoot string `json:"output_root" yaml:"output_root" mapstructure:"output_root"`
}

// FilterConfig controls which cleaned sentences enter the training sets
type FilterConfig struct {
	MinTokens int `json:"min_tokens" yaml:"min_tokens" mapstructure:"min_tokens"` // sentences need more tokens than this
}

// RowsConfig controls input row handling
type RowsConfig struct {
	SkipMalformed bool `json:"skip_malformed" yaml:"skip_malformed" mapstructure:"skip_malformed"`
	MaxLineBytes  int  `json:"max_line_bytes" yaml:"max_line_bytes" mapstructure:"max_line_bytes"`
}

// OutputConfig controls how output files are written
type OutputConfig struct {
	Order            string `json:"order" yaml:"order" mapstructure:"order"`
	ConsistentLabels bool   `json:"consistent_labels" yaml:"consistent_labels" mapstructure:"consistent_labels"`
	CreateDirs       bool   `json:"create_dirs" yaml:"create_dirs" mapstructure:"create_dirs"`
	Verbose          bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// CacheConfig controls the statement memo cache
type CacheConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	MaxEntries int  `json:"max_entries" yaml:"max_entries" mapstructure:"max_entries"`
}

// ConcurrencyConfig controls how many languages are processed at once
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// DefaultConfig returns the configuration for the standard batch layout
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			InputRoot:  "../data_local/html_data/",
			InputFile:  "clean_statements.txt",
			OutputRoot: "../data_clean/",
		},
		Languages: DefaultLanguages(),
		Filter: FilterConfig{
			MinTokens: 5,
		},
		Rows: RowsConfig{
			SkipMalformed: false,
			MaxLineBytes:  16 * 1024 * 1024,
		},
		Output: OutputConfig{
			Order:            OrderInsertion,
			ConsistentLabels: false,
			CreateDirs:       true,
			Verbose:          false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
	}
}

// InputPath returns <input_root>/<code>wiki/<input_file>
func (c *Config) InputPath(lang Language) string {
	return filepath.Join(c.Paths.InputRoot, lang.WikiDir(), c.Paths.InputFile)
}

// OutputPath returns <output_root>/<name>.tsv
func (c *Config) OutputPath(lang Language) string {
	return filepath.Join(c.Paths.OutputRoot, lang.Name+".tsv")
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return ErrNoLanguages
	}

	seen := make(map[string]bool, len(c.Languages))
	for i, lang := range c.Languages {
		if lang.Code == "" || lang.Name == "" {
			return fmt.Errorf("language %d: code and name are required", i)
		}
		if seen[lang.Code] {
			return fmt.Errorf("language %q configured twice", lang.Code)
		}
		seen[lang.Code] = true
	}

	if c.Paths.InputFile == "" {
		return fmt.Errorf("paths.input_file is required")
	}
	if c.Filter.MinTokens < 0 {
		return fmt.Errorf("filter.min_tokens must be >= 0, got %d", c.Filter.MinTokens)
	}
	if c.Concurrency.Workers < 1 {
		return fmt.Errorf("concurrency.workers must be >= 1, got %d", c.Concurrency.Workers)
	}
	if c.Rows.MaxLineBytes < 1024 {
		return fmt.Errorf("rows.max_line_bytes must be >= 1024, got %d", c.Rows.MaxLineBytes)
	}

	switch c.Output.Order {
	case OrderInsertion, OrderSorted:
	default:
		return fmt.Errorf("output.order must be %q or %q, got %q", OrderInsertion, OrderSorted, c.Output.Order)
	}

	return nil
}

// SelectLanguages returns a copy of the config restricted to the given codes,
// keeping the configured order. An empty filter keeps every language.
func (c *Config) SelectLanguages(codes []string) (*Config, error) {
	out := *c
	out.Languages = append([]Language(nil), c.Languages...)
	if len(codes) == 0 {
		return &out, nil
	}

	want := make(map[string]bool, len(codes))
	for _, code := range codes {
		want[code] = true
	}

	selected := make([]Language, 0, len(codes))
	for _, lang := range c.Languages {
		if want[lang.Code] {
			selected = append(selected, lang)
			delete(want, lang.Code)
		}
	}

	for code := range want {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, code)
	}

	out.Languages = selected
	return &out, nil
}
