package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/dataprep/pkg/dataprep/docfreq"
	"github.com/cognicore/dataprep/pkg/dataprep/store"
	"github.com/cognicore/dataprep/pkg/dataprep/tfidf"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS models (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	low INTEGER NOT NULL,
	high INTEGER NOT NULL,
	docs INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS model_df (
	model_id TEXT NOT NULL,
	token TEXT NOT NULL,
	doc TEXT NOT NULL,
	PRIMARY KEY(model_id, token, doc),
	FOREIGN KEY(model_id) REFERENCES models(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS vectors (
	model_id TEXT NOT NULL,
	set_name TEXT NOT NULL,
	position INTEGER NOT NULL,
	label TEXT NOT NULL,
	weights TEXT NOT NULL,
	PRIMARY KEY(model_id, set_name, position),
	FOREIGN KEY(model_id) REFERENCES models(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveModel inserts or replaces a model and its document frequency map
func (s *sqliteStore) SaveModel(ctx context.Context, m store.Model) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO models (id, created_at, low, high, docs)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	low=excluded.low,
	high=excluded.high,
	docs=excluded.docs;
`
	if _, err := tx.ExecContext(ctx, stmt, m.ID, m.CreatedAt.UTC().Format(time.RFC3339Nano), m.Low, m.High, m.Docs); err != nil {
		return fmt.Errorf("upsert model: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM model_df WHERE model_id = ?`, m.ID); err != nil {
		return err
	}

	ins, err := tx.PrepareContext(ctx, `INSERT INTO model_df (model_id, token, doc) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ins.Close()

	for _, token := range m.DocFreq.Tokens() {
		for _, doc := range m.DocFreq[token].Names() {
			if _, err := ins.ExecContext(ctx, m.ID, token, doc); err != nil {
				return fmt.Errorf("insert df %q: %w", token, err)
			}
		}
	}

	return tx.Commit()
}

// LoadModel returns a model by id
func (s *sqliteStore) LoadModel(ctx context.Context, id string) (store.Model, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, created_at, low, high, docs FROM models WHERE id = ?`, id)
	return s.scanModel(ctx, row)
}

// LatestModel returns the most recent model. ULIDs sort by creation time.
func (s *sqliteStore) LatestModel(ctx context.Context) (store.Model, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, created_at, low, high, docs FROM models ORDER BY id DESC LIMIT 1`)
	m, err := s.scanModel(ctx, row)
	if errors.Is(err, store.ErrNotFound) {
		return store.Model{}, false, nil
	}
	if err != nil {
		return store.Model{}, false, err
	}
	return m, true, nil
}

func (s *sqliteStore) scanModel(ctx context.Context, row *sql.Row) (store.Model, error) {
	var (
		m       store.Model
		created string
	)
	if err := row.Scan(&m.ID, &created, &m.Low, &m.High, &m.Docs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Model{}, store.ErrNotFound
		}
		return store.Model{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Model{}, fmt.Errorf("model %s created_at: %w", m.ID, err)
	}
	m.CreatedAt = t

	df, err := s.loadDocFreq(ctx, m.ID)
	if err != nil {
		return store.Model{}, err
	}
	m.DocFreq = df
	return m, nil
}

func (s *sqliteStore) loadDocFreq(ctx context.Context, modelID string) (docfreq.Map, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT token, doc FROM model_df WHERE model_id = ?`, modelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	df := docfreq.NewMap()
	for rows.Next() {
		var token, doc string
		if err := rows.Scan(&token, &doc); err != nil {
			return nil, err
		}
		df.Add(token, doc)
	}
	return df, rows.Err()
}

// SaveVectors replaces the vectors of one set of a model
func (s *sqliteStore) SaveVectors(ctx context.Context, modelID, set string, vectors []tfidf.LabeledVector) error {
	if err := s.modelExists(ctx, modelID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vectors WHERE model_id = ? AND set_name = ?`, modelID, set); err != nil {
		return err
	}

	ins, err := tx.PrepareContext(ctx, `INSERT INTO vectors (model_id, set_name, position, label, weights) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ins.Close()

	for i, lv := range vectors {
		weights, err := json.Marshal([]float64(lv.Vector))
		if err != nil {
			return fmt.Errorf("encode vector %d: %w", i, err)
		}
		if _, err := ins.ExecContext(ctx, modelID, set, i, lv.Label, string(weights)); err != nil {
			return fmt.Errorf("insert vector %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadVectors returns the vectors of one set of a model in saved order
func (s *sqliteStore) LoadVectors(ctx context.Context, modelID, set string) ([]tfidf.LabeledVector, error) {
	if err := s.modelExists(ctx, modelID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT label, weights FROM vectors WHERE model_id = ? AND set_name = ? ORDER BY position`, modelID, set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []tfidf.LabeledVector{}
	for rows.Next() {
		var label, weights string
		if err := rows.Scan(&label, &weights); err != nil {
			return nil, err
		}
		var vec tfidf.FeatureVector
		if err := json.Unmarshal([]byte(weights), &vec); err != nil {
			return nil, fmt.Errorf("decode vector: %w", err)
		}
		if vec == nil {
			vec = tfidf.FeatureVector{}
		}
		out = append(out, tfidf.LabeledVector{Vector: vec, Label: label})
	}
	return out, rows.Err()
}

func (s *sqliteStore) modelExists(ctx context.Context, id string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM models WHERE id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
