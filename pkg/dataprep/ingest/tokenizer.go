package ingest

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/tebeka/snowball"
)

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stopwords map[string]struct{}

	// snowball stemmers keep C state and are not safe for concurrent use
	mu      sync.Mutex
	stemmer *snowball.Stemmer
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// SetStemmer enables snowball stemming for the given language ("english",
// "french", ...). An empty language disables stemming.
func (t *Tokenizer) SetStemmer(language string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stemmer != nil {
		t.stemmer.Close()
		t.stemmer = nil
	}
	if language == "" {
		return nil
	}

	stemmer, err := snowball.New(language)
	if err != nil {
		return fmt.Errorf("snowball %q: %w", language, err)
	}
	t.stemmer = stemmer
	return nil
}

// Close releases the stemmer, if any.
func (t *Tokenizer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stemmer != nil {
		t.stemmer.Close()
		t.stemmer = nil
	}
}

// Tokenize splits text into normalized tokens, removing stopwords.
// Tokens keep their order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// processToken applies cleaning, stopword filtering and stemming.
func (t *Tokenizer) processToken(token string) string {
	word := cleanToken(token)
	if len([]rune(word)) <= 1 {
		return ""
	}

	// Mixed tokens like "utf-8" or "mp3" are kept.
	if isNumericOnly(word) {
		return ""
	}

	if t.isStopword(word) {
		return ""
	}

	word = t.stem(word)
	if word == "" || t.isStopword(word) {
		return ""
	}

	return word
}

func (t *Tokenizer) stem(word string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stemmer == nil {
		return word
	}
	return t.stemmer.Stem(word)
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}
