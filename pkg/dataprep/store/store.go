package store

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/dataprep/pkg/dataprep/docfreq"
	"github.com/cognicore/dataprep/pkg/dataprep/tfidf"
)

// ErrNotFound is returned when a model id is unknown.
var ErrNotFound = errors.New("model not found")

// Vector set names used by the CLI.
const (
	SetTrain = "train"
	SetTest  = "test"
)

// Store persists trained models and their vectors
type Store interface {
	Close() error

	// Models
	SaveModel(ctx context.Context, m Model) error
	LoadModel(ctx context.Context, id string) (Model, error)
	LatestModel(ctx context.Context) (Model, bool, error)

	// Vectors
	SaveVectors(ctx context.Context, modelID, set string, vectors []tfidf.LabeledVector) error
	LoadVectors(ctx context.Context, modelID, set string) ([]tfidf.LabeledVector, error)
}

// Model is the outcome of a training run: the culled document frequency
// map that defines the vocabulary, and the parameters that produced it.
type Model struct {
	ID        string
	CreatedAt time.Time
	Low       int
	High      int
	Docs      int // training corpus size
	DocFreq   docfreq.Map
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewModelID returns a new, time-ordered model id.
func NewModelID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}
