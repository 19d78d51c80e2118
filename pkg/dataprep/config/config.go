package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of a vectorization run.
type Config struct {
	Stoplist  string `yaml:"stoplist"`
	Stemmer   string `yaml:"stemmer"`
	Cull      Cull   `yaml:"cull"`
	Workers   int    `yaml:"workers"`
	StripHTML bool   `yaml:"strip_html"`
	DB        string `yaml:"db"`
}

// Cull holds the document frequency band kept in the vocabulary.
// A High of 0 means the number of training documents.
type Cull struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Cull:    Cull{Low: 1, High: 0},
		Workers: 1,
	}
}

// Load reads a YAML config file on top of Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects negative bounds and worker counts.
func (c *Config) Validate() error {
	if c.Cull.Low < 0 || c.Cull.High < 0 {
		return errors.New("cull bounds must not be negative")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file with a "terms" list.
// Other files are read as one word per line; '#' starts a comment line.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var sl Stoplist
		if err := yaml.Unmarshal(data, &sl); err != nil {
			return nil, err
		}
		return &sl, nil
	}

	sl := &Stoplist{Terms: []string{}}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sl.Terms = append(sl.Terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sl, nil
}
