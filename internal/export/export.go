package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/dataprep/pkg/dataprep/tfidf"
)

// Record is the JSONL form of one labeled vector.
type Record struct {
	Label  string    `json:"label"`
	Vector []float64 `json:"vector"`
}

// WriteJSONL writes one record per line.
func WriteJSONL(w io.Writer, vectors []tfidf.LabeledVector) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i, lv := range vectors {
		vec := []float64(lv.Vector)
		if vec == nil {
			vec = []float64{}
		}
		if err := enc.Encode(Record{Label: lv.Label, Vector: vec}); err != nil {
			return fmt.Errorf("encode vector %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes vectors to path as JSONL, replacing the file.
func WriteFile(path string, vectors []tfidf.LabeledVector) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSONL(f, vectors); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSONL loads vectors written by WriteJSONL. Blank lines are skipped;
// a malformed line is an error.
func ReadJSONL(path string) ([]tfidf.LabeledVector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var vectors []tfidf.LabeledVector
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("malformed JSON at line %d in %s: %w", i+1, path, err)
		}
		vec := tfidf.FeatureVector(rec.Vector)
		if vec == nil {
			vec = tfidf.FeatureVector{}
		}
		vectors = append(vectors, tfidf.LabeledVector{Vector: vec, Label: rec.Label})
	}

	return vectors, nil
}
