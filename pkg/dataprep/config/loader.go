package config

import (
	"fmt"

	"github.com/cognicore/dataprep/pkg/dataprep/ingest"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StoplistPath string
	Stemmer      string
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer *ingest.Tokenizer
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Tokenizer = ingest.NewTokenizer(stoplist.Terms)
	} else {
		comp.Tokenizer = ingest.NewTokenizer([]string{})
	}

	if err := comp.Tokenizer.SetStemmer(l.Stemmer); err != nil {
		return nil, fmt.Errorf("load stemmer: %w", err)
	}

	return comp, nil
}
