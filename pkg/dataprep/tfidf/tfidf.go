package tfidf

import (
	"errors"
	"fmt"
	"math"

	"github.com/cognicore/dataprep/pkg/dataprep/docfreq"
	"github.com/cognicore/dataprep/pkg/dataprep/progress"
	"github.com/cognicore/dataprep/pkg/dataprep/vocab"
)

// ErrMissingDocFreq is returned when a vocabulary token found in a document
// has no document frequency in the map selected for idf.
var ErrMissingDocFreq = errors.New("token missing from document frequency map")

// FeatureVector holds one weight per vocabulary token.
type FeatureVector []float64

// LabeledVector pairs a feature vector with its class label, or with the
// document path in test mode.
type LabeledVector struct {
	Vector FeatureVector
	Label  string
}

// Options configures a vectorization pass.
type Options struct {
	// TestMode labels vectors with document paths and takes idf from
	// TestDocFreq when it is set.
	TestMode    bool
	TestDocFreq docfreq.Map
	Progress    progress.Reporter
}

// Vectorizer weights documents against a fixed vocabulary.
type Vectorizer struct {
	vocab *vocab.Vocabulary
	df    docfreq.Map
}

// NewVectorizer fixes the vocabulary to the keys of df, which is also the
// default idf source.
func NewVectorizer(df docfreq.Map) *Vectorizer {
	return &Vectorizer{vocab: vocab.FromDocFreq(df), df: df}
}

// Vocabulary returns the feature axis.
func (v *Vectorizer) Vocabulary() *vocab.Vocabulary {
	return v.vocab
}

// Vectorize is a one-shot NewVectorizer(df).Transform(docs, opts).
func Vectorize(docs docfreq.TokenizedCorpus, df docfreq.Map, opts Options) ([]LabeledVector, error) {
	return NewVectorizer(df).Transform(docs, opts)
}

// Transform computes one vector per document, in document order.
// The weight of token t in document d is (1 + ln tf) * ln(N / df(t)) where
// N is len(docs). Tokens outside the vocabulary are ignored.
func (v *Vectorizer) Transform(docs docfreq.TokenizedCorpus, opts Options) ([]LabeledVector, error) {
	idfSource := v.df
	if opts.TestMode && opts.TestDocFreq != nil {
		idfSource = opts.TestDocFreq
	}
	report := opts.Progress
	if report == nil {
		report = progress.Discard
	}

	n := len(docs)
	out := make([]LabeledVector, 0, n)

	for _, d := range docs {
		vec := make(FeatureVector, v.vocab.Len())

		counts, order := termCounts(d.Tokens)
		for _, token := range order {
			idx, ok := v.vocab.Index(token)
			if !ok {
				continue
			}
			df := idfSource.Count(token)
			if df == 0 {
				return nil, fmt.Errorf("document %s: %q: %w", d.Name, token, ErrMissingDocFreq)
			}
			vec[idx] = LogTF(counts[token]) * LogIDF(n, df)
		}

		label := d.Label
		if opts.TestMode {
			label = d.Path
		}
		out = append(out, LabeledVector{Vector: vec, Label: label})
		report.Tick()
	}

	return out, nil
}

// LogTF is the sub-linear term frequency 1 + ln(tf), or 0 when tf is 0.
func LogTF(tf int) float64 {
	if tf <= 0 {
		return 0
	}
	return 1 + math.Log(float64(tf))
}

// LogIDF is ln(n / df).
func LogIDF(n, df int) float64 {
	return math.Log(float64(n) / float64(df))
}

// termCounts counts each token once and returns the distinct tokens in
// first-seen order.
func termCounts(tokens []string) (map[string]int, []string) {
	counts := make(map[string]int, len(tokens))
	var order []string
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}
	return counts, order
}
