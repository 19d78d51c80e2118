package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/dataprep/pkg/dataprep/store"
	"github.com/cognicore/dataprep/pkg/dataprep/tfidf"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	models  map[string]store.Model
	latest  string
	vectors map[vectorKey][]tfidf.LabeledVector
}

type vectorKey struct {
	model string
	set   string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		models:  make(map[string]store.Model),
		vectors: make(map[vectorKey][]tfidf.LabeledVector),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveModel stores a copy of m, replacing any model with the same id.
func (s *Store) SaveModel(ctx context.Context, m store.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.models[m.ID] = copyModel(m)
	if m.ID > s.latest {
		s.latest = m.ID
	}
	return nil
}

// LoadModel returns a model by id.
func (s *Store) LoadModel(ctx context.Context, id string) (store.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[id]
	if !ok {
		return store.Model{}, store.ErrNotFound
	}
	return copyModel(m), nil
}

// LatestModel returns the model with the greatest id.
func (s *Store) LatestModel(ctx context.Context) (store.Model, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == "" {
		return store.Model{}, false, nil
	}
	return copyModel(s.models[s.latest]), true, nil
}

// SaveVectors replaces the vectors of one set of a model.
func (s *Store) SaveVectors(ctx context.Context, modelID, set string, vectors []tfidf.LabeledVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.models[modelID]; !ok {
		return store.ErrNotFound
	}
	s.vectors[vectorKey{modelID, set}] = copyVectors(vectors)
	return nil
}

// LoadVectors returns the vectors of one set of a model, in saved order.
func (s *Store) LoadVectors(ctx context.Context, modelID, set string) ([]tfidf.LabeledVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.models[modelID]; !ok {
		return nil, store.ErrNotFound
	}
	return copyVectors(s.vectors[vectorKey{modelID, set}]), nil
}

func copyModel(m store.Model) store.Model {
	if m.DocFreq != nil {
		m.DocFreq = m.DocFreq.Clone()
	}
	return m
}

func copyVectors(in []tfidf.LabeledVector) []tfidf.LabeledVector {
	out := make([]tfidf.LabeledVector, len(in))
	for i, lv := range in {
		vec := make(tfidf.FeatureVector, len(lv.Vector))
		copy(vec, lv.Vector)
		out[i] = tfidf.LabeledVector{Vector: vec, Label: lv.Label}
	}
	return out
}
