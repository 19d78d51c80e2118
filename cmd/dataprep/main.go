package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cognicore/dataprep/internal/export"
	"github.com/cognicore/dataprep/pkg/dataprep"
	"github.com/cognicore/dataprep/pkg/dataprep/config"
	"github.com/cognicore/dataprep/pkg/dataprep/store"
	"github.com/cognicore/dataprep/pkg/dataprep/store/sqlite"
	"github.com/cognicore/dataprep/pkg/dataprep/tfidf"
)

// settings are the merged config file and command line values of one run.
type settings struct {
	manifest string
	modelID  string
	out      string
	cfg      config.Config
}

func usage() {
	fmt.Println("dataprep - TF-IDF feature vectors for text classification")
	fmt.Println()
	fmt.Println("Usage: dataprep <train|test> [options]")
	fmt.Println("    train --manifest FILE   vectorize a labeled corpus and learn the vocabulary")
	fmt.Println("    test  --manifest FILE   vectorize an unlabeled corpus against a stored model")
	fmt.Println()
	fmt.Println("Run 'dataprep <command> -h' for the options of a command.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		usage()
		return
	}
	if cmd != "train" && cmd != "test" {
		usage()
		os.Exit(1)
	}

	s, err := parseFlags(cmd, os.Args[2:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	ctx := context.Background()
	start := time.Now()

	switch cmd {
	case "train":
		err = runTrain(ctx, s, os.Stderr)
	case "test":
		err = runTest(ctx, s, os.Stderr)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Finished %s in %s", cmd, time.Since(start).Round(time.Millisecond))
}

// parseFlags reads the optional --config file first, then applies every
// flag that was set explicitly on top of it.
func parseFlags(cmd string, args []string, output io.Writer) (settings, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configPath = fs.String("config", "", "YAML config file (optional)")
		manifest   = fs.String("manifest", "", "Manifest listing the documents (required)")
		stoplist   = fs.String("stoplist", "", "Stopword list, YAML or one word per line")
		stemmer    = fs.String("stemmer", "", "Snowball stemmer language, empty to disable")
		low        = fs.Int("low", 0, "Keep tokens with document frequency above this")
		high       = fs.Int("high", 0, "Keep tokens with document frequency below this (0 = document count)")
		workers    = fs.Int("workers", 1, "Tokenizer workers")
		stripHTML  = fs.Bool("strip-html", false, "Extract text from .html/.htm documents")
		dbPath     = fs.String("db", "", "SQLite model database")
		out        = fs.String("out", "", "Write vectors to this JSONL file")
		modelID    = fs.String("model", "", "Model id to test against (default: latest)")
	)
	if err := fs.Parse(args); err != nil {
		return settings{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return settings{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stoplist":
			cfg.Stoplist = *stoplist
		case "stemmer":
			cfg.Stemmer = *stemmer
		case "low":
			cfg.Cull.Low = *low
		case "high":
			cfg.Cull.High = *high
		case "workers":
			cfg.Workers = *workers
		case "strip-html":
			cfg.StripHTML = *stripHTML
		case "db":
			cfg.DB = *dbPath
		}
	})

	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	if *manifest == "" {
		return settings{}, errors.New("--manifest required")
	}
	if cmd == "test" && cfg.DB == "" {
		return settings{}, errors.New("--db required for test")
	}
	if cmd == "test" && fs.NArg() > 0 {
		return settings{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return settings{manifest: *manifest, modelID: *modelID, out: *out, cfg: *cfg}, nil
}

func buildPrepper(s settings, progress io.Writer) (*dataprep.Prepper, func(), error) {
	loader := config.Loader{StoplistPath: s.cfg.Stoplist, Stemmer: s.cfg.Stemmer}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	p := dataprep.New(dataprep.Options{
		Tokenizer:    components.Tokenizer,
		ManifestPath: s.manifest,
		Low:          s.cfg.Cull.Low,
		High:         s.cfg.Cull.High,
		Workers:      s.cfg.Workers,
		StripHTML:    s.cfg.StripHTML,
		Progress:     progress,
	})
	return p, components.Tokenizer.Close, nil
}

func runTrain(ctx context.Context, s settings, progress io.Writer) error {
	p, cleanup, err := buildPrepper(s, progress)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	log.Printf("Vectorized %d documents over %d classes, vocabulary of %d tokens", len(res.Vectors), len(res.Classes), res.Vocabulary.Len())

	if s.cfg.DB != "" {
		st, err := sqlite.OpenSQLite(ctx, s.cfg.DB)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		model := store.Model{
			ID:        store.NewModelID(),
			CreatedAt: time.Now(),
			Low:       s.cfg.Cull.Low,
			High:      res.High,
			Docs:      res.Docs,
			DocFreq:   res.DocFreq,
		}
		if err := st.SaveModel(ctx, model); err != nil {
			return fmt.Errorf("save model: %w", err)
		}
		if err := st.SaveVectors(ctx, model.ID, store.SetTrain, res.Vectors); err != nil {
			return fmt.Errorf("save vectors: %w", err)
		}
		log.Printf("✓ Saved model %s to %s", model.ID, s.cfg.DB)
	}

	return writeVectors(s.out, res.Vectors)
}

func runTest(ctx context.Context, s settings, progress io.Writer) error {
	st, err := sqlite.OpenSQLite(ctx, s.cfg.DB)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	model, err := loadModel(ctx, st, s.modelID)
	if err != nil {
		return err
	}
	log.Printf("Testing against model %s (%d tokens)", model.ID, len(model.DocFreq))

	p, cleanup, err := buildPrepper(s, progress)
	if err != nil {
		return err
	}
	defer cleanup()

	vectors, err := p.RunTest(ctx, model.DocFreq)
	if err != nil {
		return fmt.Errorf("test: %w", err)
	}
	log.Printf("Vectorized %d test documents", len(vectors))

	if err := st.SaveVectors(ctx, model.ID, store.SetTest, vectors); err != nil {
		return fmt.Errorf("save vectors: %w", err)
	}

	return writeVectors(s.out, vectors)
}

func loadModel(ctx context.Context, st store.Store, id string) (store.Model, error) {
	if id != "" {
		m, err := st.LoadModel(ctx, id)
		if err != nil {
			return store.Model{}, fmt.Errorf("load model %s: %w", id, err)
		}
		return m, nil
	}

	m, found, err := st.LatestModel(ctx)
	if err != nil {
		return store.Model{}, fmt.Errorf("load latest model: %w", err)
	}
	if !found {
		return store.Model{}, errors.New("no trained model in database, run 'dataprep train' first")
	}
	return m, nil
}

func writeVectors(path string, vectors []tfidf.LabeledVector) error {
	if path == "" {
		return nil
	}
	if err := export.WriteFile(path, vectors); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	log.Printf("✓ Wrote %d vectors to %s", len(vectors), path)
	return nil
}
