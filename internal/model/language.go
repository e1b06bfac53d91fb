package model

// Language pairs a wiki short code with the full name used for output files
type Language struct {
	Code string `json:"code" yaml:"code" mapstructure:"code"` // e.g. "en", reads from enwiki/
	Name string `json:"name" yaml:"name" mapstructure:"name"` // e.g. "english", writes english.tsv
}

// WikiDir returns the dump subdirectory for the language (e.g. "enwiki")
func (l Language) WikiDir() string {
	return l.Code + "wiki"
}

// DefaultLanguages returns the languages processed when nothing else is configured.
// A fresh slice is returned on every call.
func DefaultLanguages() []Language {
	return []Language{
		{Code: "en", Name: "english"},
		{Code: "fr", Name: "french"},
		{Code: "it", Name: "italian"},
	}
}
