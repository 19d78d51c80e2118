package dataprep

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/cognicore/dataprep/pkg/dataprep/corpus"
	"github.com/cognicore/dataprep/pkg/dataprep/docfreq"
	"github.com/cognicore/dataprep/pkg/dataprep/progress"
	"github.com/cognicore/dataprep/pkg/dataprep/tfidf"
	"github.com/cognicore/dataprep/pkg/dataprep/vocab"
)

// Prepper turns a manifest of documents into TF-IDF feature vectors
type Prepper struct {
	tokenizer docfreq.Tokenizer
	manifest  string
	low       int
	high      int
	workers   int
	loader    corpus.Loader
	progress  io.Writer
}

// Options configures a Prepper instance
type Options struct {
	Tokenizer docfreq.Tokenizer
	// ManifestPath is a training manifest for Run and a test manifest for RunTest.
	ManifestPath string
	// Tokens are kept when Low < df < High. High <= 0 means the number of
	// training documents.
	Low       int
	High      int
	Workers   int
	StripHTML bool
	// Progress receives the loading bars. Nil disables them.
	Progress io.Writer
}

// New creates a Prepper with the given dependencies
func New(opts Options) *Prepper {
	return &Prepper{
		tokenizer: opts.Tokenizer,
		manifest:  opts.ManifestPath,
		low:       opts.Low,
		high:      opts.High,
		workers:   opts.Workers,
		loader:    corpus.Loader{StripHTML: opts.StripHTML},
		progress:  opts.Progress,
	}
}

// TrainResult is the outcome of a training run
type TrainResult struct {
	Vectors    []tfidf.LabeledVector
	DocFreq    docfreq.Map // culled; its keys are the vocabulary
	Vocabulary *vocab.Vocabulary
	Classes    []string
	Docs       int
	High       int // effective upper cull bound
}

// Run processes the training set and returns one labeled vector per document
func (p *Prepper) Run(ctx context.Context) (TrainResult, error) {
	log.Printf("[dataprep] Running on training set...")

	entries, err := corpus.LoadTrainingManifest(p.manifest)
	if err != nil {
		return TrainResult{}, fmt.Errorf("load manifest: %w", err)
	}

	docs, df, err := p.tokenize(ctx, entries)
	if err != nil {
		return TrainResult{}, err
	}

	high := p.high
	if high <= 0 {
		high = len(docs)
	}
	culled := df.Cull(p.low, high)

	vectorizer := tfidf.NewVectorizer(culled)
	log.Printf("[dataprep] Number of words in vocab: %d (df band %d < df < %d)", vectorizer.Vocabulary().Len(), p.low, high)

	vectors, err := p.vectorize(vectorizer, docs, tfidf.Options{})
	if err != nil {
		return TrainResult{}, err
	}

	return TrainResult{
		Vectors:    vectors,
		DocFreq:    culled,
		Vocabulary: vectorizer.Vocabulary(),
		Classes:    corpus.ClassNames(entries),
		Docs:       len(docs),
		High:       high,
	}, nil
}

// RunTest processes the test set against a vocabulary learned in training.
// Vectors are labeled with document paths. The idf term uses the test set's
// own document frequencies.
func (p *Prepper) RunTest(ctx context.Context, trainDF docfreq.Map) ([]tfidf.LabeledVector, error) {
	log.Printf("[dataprep] Running on test set...")

	entries, err := corpus.LoadTestManifest(p.manifest)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	docs, testDF, err := p.tokenize(ctx, entries)
	if err != nil {
		return nil, err
	}

	return p.vectorize(tfidf.NewVectorizer(trainDF), docs, tfidf.Options{
		TestMode:    true,
		TestDocFreq: testDF,
	})
}

func (p *Prepper) tokenize(ctx context.Context, entries []corpus.Entry) (docfreq.TokenizedCorpus, docfreq.Map, error) {
	log.Printf("[dataprep] Sampling %d texts from disk...", len(entries))
	c, err := p.loader.Load(ctx, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	bar := progress.NewBar(p.progress, c.Len(), "Tokenizing:", "Complete")
	docs, df, err := docfreq.Build(ctx, c, p.tokenizer, docfreq.BuildOptions{
		Workers:  p.workers,
		Progress: bar,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("tokenize: %w", err)
	}
	return docs, df, nil
}

func (p *Prepper) vectorize(v *tfidf.Vectorizer, docs docfreq.TokenizedCorpus, opts tfidf.Options) ([]tfidf.LabeledVector, error) {
	opts.Progress = progress.NewBar(p.progress, len(docs), "Setting up feature vectors:", "Complete")
	vectors, err := v.Transform(docs, opts)
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	return vectors, nil
}
