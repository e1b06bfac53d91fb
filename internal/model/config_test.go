package model

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Paths(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}

	tests := []struct {
		lang    Language
		wantIn  string
		wantOut string
	}{
		{Language{"en", "english"}, "../data_local/html_data/enwiki/clean_statements.txt", "../data_clean/english.tsv"},
		{Language{"fr", "french"}, "../data_local/html_data/frwiki/clean_statements.txt", "../data_clean/french.tsv"},
		{Language{"it", "italian"}, "../data_local/html_data/itwiki/clean_statements.txt", "../data_clean/italian.tsv"},
	}

	if len(cfg.Languages) != len(tests) {
		t.Fatalf("expected %d default languages, got %d", len(tests), len(cfg.Languages))
	}

	for i, tt := range tests {
		if cfg.Languages[i] != tt.lang {
			t.Errorf("language %d: expected %+v, got %+v", i, tt.lang, cfg.Languages[i])
		}
		if got := cfg.InputPath(tt.lang); got != filepath.Clean(tt.wantIn) {
			t.Errorf("InputPath(%s) = %s, want %s", tt.lang.Code, got, tt.wantIn)
		}
		if got := cfg.OutputPath(tt.lang); got != filepath.Clean(tt.wantOut) {
			t.Errorf("OutputPath(%s) = %s, want %s", tt.lang.Code, got, tt.wantOut)
		}
	}
}

func TestDefaultLanguages_FreshSlice(t *testing.T) {
	a := DefaultLanguages()
	a[0].Name = "changed"

	b := DefaultLanguages()
	if b[0].Name != "english" {
		t.Errorf("expected default languages to be unaffected by caller mutation, got %q", b[0].Name)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no languages", func(c *Config) { c.Languages = nil }, true},
		{"duplicate code", func(c *Config) { c.Languages = append(c.Languages, Language{"en", "english2"}) }, true},
		{"empty name", func(c *Config) { c.Languages[1].Name = "" }, true},
		{"negative min tokens", func(c *Config) { c.Filter.MinTokens = -1 }, true},
		{"zero workers", func(c *Config) { c.Concurrency.Workers = 0 }, true},
		{"unknown order", func(c *Config) { c.Output.Order = "random" }, true},
		{"sorted order", func(c *Config) { c.Output.Order = OrderSorted }, false},
		{"tiny line buffer", func(c *Config) { c.Rows.MaxLineBytes = 10 }, true},
		{"empty input file", func(c *Config) { c.Paths.InputFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Languages = nil
	if err := cfg.Validate(); !errors.Is(err, ErrNoLanguages) {
		t.Errorf("expected ErrNoLanguages, got %v", err)
	}
}

func TestConfig_SelectLanguages(t *testing.T) {
	cfg := DefaultConfig()

	all, err := cfg.SelectLanguages(nil)
	if err != nil {
		t.Fatalf("SelectLanguages(nil) failed: %v", err)
	}
	if len(all.Languages) != 3 {
		t.Errorf("expected 3 languages, got %d", len(all.Languages))
	}

	// Configured order wins over filter order
	sub, err := cfg.SelectLanguages([]string{"it", "en"})
	if err != nil {
		t.Fatalf("SelectLanguages failed: %v", err)
	}
	if len(sub.Languages) != 2 || sub.Languages[0].Code != "en" || sub.Languages[1].Code != "it" {
		t.Errorf("expected [en it], got %+v", sub.Languages)
	}
	if len(cfg.Languages) != 3 {
		t.Errorf("input config must not be modified, got %d languages", len(cfg.Languages))
	}

	_, err = cfg.SelectLanguages([]string{"de"})
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("expected ErrUnknownLanguage, got %v", err)
	}
}
