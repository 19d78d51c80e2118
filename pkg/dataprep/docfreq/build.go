package docfreq

import (
	"context"
	"sync"

	"github.com/cognicore/dataprep/pkg/dataprep/corpus"
	"github.com/cognicore/dataprep/pkg/dataprep/progress"
)

// Tokenizer turns raw text into an ordered token sequence.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizedDoc is a document after tokenization.
type TokenizedDoc struct {
	Name   string
	Path   string
	Label  string
	Tokens []string
}

// TokenizedCorpus holds tokenized documents in corpus order.
type TokenizedCorpus []TokenizedDoc

// BuildOptions configures Build.
type BuildOptions struct {
	// Workers > 1 tokenizes documents concurrently.
	Workers int
	// Progress is ticked once per tokenized document.
	Progress progress.Reporter
}

// Build tokenizes every document of c and accumulates the document frequency
// of each token. Tokens repeated within one document count once. The corpus
// is not modified; the tokenized form is returned in corpus order.
func Build(ctx context.Context, c *corpus.Corpus, tok Tokenizer, opts BuildOptions) (TokenizedCorpus, Map, error) {
	docs := c.Docs()
	report := opts.Progress
	if report == nil {
		report = progress.Discard
	}

	if opts.Workers <= 1 || len(docs) < 2 {
		return buildSequential(ctx, docs, tok, report)
	}
	return buildParallel(ctx, docs, tok, opts.Workers, report)
}

func buildSequential(ctx context.Context, docs []corpus.Document, tok Tokenizer, report progress.Reporter) (TokenizedCorpus, Map, error) {
	out := make(TokenizedCorpus, len(docs))
	df := NewMap()

	for i, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		out[i] = tokenizeDoc(d, tok)
		df.AddDocument(d.Name, unique(out[i].Tokens))
		report.Tick()
	}
	return out, df, nil
}

// buildParallel gives each worker a private partial map and merges the
// partials once all workers are done.
func buildParallel(ctx context.Context, docs []corpus.Document, tok Tokenizer, workers int, report progress.Reporter) (TokenizedCorpus, Map, error) {
	if workers > len(docs) {
		workers = len(docs)
	}

	out := make(TokenizedCorpus, len(docs))
	partials := make([]Map, workers)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		partials[w] = NewMap()
		wg.Add(1)
		go func(partial Map) {
			defer wg.Done()
			for i := range jobs {
				out[i] = tokenizeDoc(docs[i], tok)
				partial.AddDocument(docs[i].Name, unique(out[i].Tokens))
				report.Tick()
			}
		}(partials[w])
	}

	var err error
feed:
	for i := range docs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, nil, err
	}

	df := partials[0]
	for _, p := range partials[1:] {
		df.Merge(p)
	}
	return out, df, nil
}

func tokenizeDoc(d corpus.Document, tok Tokenizer) TokenizedDoc {
	tokens := tok.Tokenize(d.Text)
	if tokens == nil {
		tokens = []string{}
	}
	return TokenizedDoc{Name: d.Name, Path: d.Path, Label: d.Label, Tokens: tokens}
}

// unique returns the distinct tokens in first-seen order.
func unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
