package cli

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/citeprep/internal/model"
	"github.com/spf13/viper"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	v.SetEnvPrefix("CITEPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := decodeConfig(newTestViper(), nil, nil)
	if err != nil {
		t.Fatalf("decodeConfig failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, model.DefaultConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestDecodeConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `paths:
  input_root: /data/dumps
  output_root: /data/clean
languages:
  - code: de
    name: german
  - code: es
    name: spanish
filter:
  min_tokens: 3
output:
  order: sorted
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := newTestViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg, err := decodeConfig(v, nil, nil)
	if err != nil {
		t.Fatalf("decodeConfig failed: %v", err)
	}

	if cfg.Paths.InputRoot != "/data/dumps" || cfg.Paths.OutputRoot != "/data/clean" {
		t.Errorf("unexpected paths: %+v", cfg.Paths)
	}
	// Unset keys keep their defaults
	if cfg.Paths.InputFile != "clean_statements.txt" {
		t.Errorf("expected default input file, got %q", cfg.Paths.InputFile)
	}

	want := []model.Language{{Code: "de", Name: "german"}, {Code: "es", Name: "spanish"}}
	if !reflect.DeepEqual(cfg.Languages, want) {
		t.Errorf("expected languages %+v, got %+v", want, cfg.Languages)
	}
	if cfg.Filter.MinTokens != 3 || cfg.Output.Order != model.OrderSorted {
		t.Errorf("unexpected filter/output: %+v %+v", cfg.Filter, cfg.Output)
	}

	if got := cfg.InputPath(want[0]); got != filepath.Join("/data/dumps", "dewiki", "clean_statements.txt") {
		t.Errorf("unexpected input path %s", got)
	}
}

func TestDecodeConfig_Env(t *testing.T) {
	t.Setenv("CITEPREP_FILTER_MIN_TOKENS", "2")
	t.Setenv("CITEPREP_ROWS_SKIP_MALFORMED", "true")

	cfg, err := decodeConfig(newTestViper(), nil, nil)
	if err != nil {
		t.Fatalf("decodeConfig failed: %v", err)
	}

	if cfg.Filter.MinTokens != 2 {
		t.Errorf("expected min tokens from env, got %d", cfg.Filter.MinTokens)
	}
	if !cfg.Rows.SkipMalformed {
		t.Error("expected skip_malformed from env")
	}
}

func TestDecodeConfig_Overrides(t *testing.T) {
	disabled := false
	cfg, err := decodeConfig(newTestViper(), &disabled, []string{"fr"})
	if err != nil {
		t.Fatalf("decodeConfig failed: %v", err)
	}

	if cfg.Cache.Enabled {
		t.Error("expected cache disabled by override")
	}
	if len(cfg.Languages) != 1 || cfg.Languages[0].Code != "fr" {
		t.Errorf("expected only fr, got %+v", cfg.Languages)
	}

	_, err = decodeConfig(newTestViper(), nil, []string{"xx"})
	if !errors.Is(err, model.ErrUnknownLanguage) {
		t.Errorf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestDecodeConfig_Invalid(t *testing.T) {
	v := newTestViper()
	v.Set("output.order", "random")

	if _, err := decodeConfig(v, nil, nil); err == nil {
		t.Error("expected validation error for unknown order")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".citeprep", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	// The written file decodes back to the defaults
	v := newTestViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}
	cfg, err := decodeConfig(v, nil, nil)
	if err != nil {
		t.Fatalf("decodeConfig failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, model.DefaultConfig()) {
		t.Errorf("expected written config to match defaults, got %+v", cfg)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestLanguageCodes(t *testing.T) {
	if got := languageCodes(model.DefaultLanguages()); got != "en, fr, it" {
		t.Errorf("expected 'en, fr, it', got %q", got)
	}
}
