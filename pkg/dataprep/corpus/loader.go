package corpus

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/cognicore/dataprep/pkg/dataprep/ingest"
)

// Loader reads the documents listed in a manifest.
type Loader struct {
	// StripHTML extracts the text of .html/.htm documents before returning them.
	StripHTML bool
}

// Load reads every entry into a new corpus, in manifest order. Documents are
// decoded as ISO-8859-1 so every byte maps to exactly one rune. The first
// unreadable file aborts the load.
func (l Loader) Load(ctx context.Context, entries []Entry) (*Corpus, error) {
	c := New()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := l.read(e.Path)
		if err != nil {
			return nil, err
		}
		c.Add(Document{Name: e.Name, Path: e.Path, Label: e.Label, Text: text})
	}
	return c, nil
}

func (l Loader) read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	if l.StripHTML && isHTML(path) {
		text, err := ingest.ExtractHTMLText(bytes.NewReader(decoded))
		if err != nil {
			return "", &FileError{Path: path, Err: err}
		}
		return text, nil
	}
	return string(decoded), nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
