package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/dataprep/pkg/dataprep/ingest"
)

// Entry is one manifest line: a document name, its path and optional class.
type Entry struct {
	Name  string
	Path  string
	Label string
}

// ParseTrainingManifest reads lines of the form "path<whitespace>label".
// The document name is the final path segment. Blank lines are skipped.
func ParseTrainingManifest(r io.Reader) ([]Entry, error) {
	return parseManifest(r, func(n int, line string) (Entry, error) {
		path, label, ok := ingest.SplitOnWhitespaceFromBack(line)
		if !ok {
			return Entry{}, &ManifestError{Line: n, Text: line, Reason: "expected path and class label"}
		}
		name, err := documentName(n, line, path)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Name: name, Path: path, Label: ingest.StripNewline(label)}, nil
	})
}

// ParseTestManifest reads one document path per line.
func ParseTestManifest(r io.Reader) ([]Entry, error) {
	return parseManifest(r, func(n int, line string) (Entry, error) {
		path := strings.TrimSpace(ingest.StripNewline(line))
		name, err := documentName(n, line, path)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Name: name, Path: path}, nil
	})
}

// LoadTrainingManifest opens and parses a training manifest file.
func LoadTrainingManifest(path string) ([]Entry, error) {
	return loadManifest(path, ParseTrainingManifest)
}

// LoadTestManifest opens and parses a test manifest file.
func LoadTestManifest(path string) ([]Entry, error) {
	return loadManifest(path, ParseTestManifest)
}

func loadManifest(path string, parse func(io.Reader) ([]Entry, error)) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	entries, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func parseManifest(r io.Reader, parseLine func(int, string) (Entry, error)) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseLine(n, line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return entries, nil
}

func documentName(n int, line, path string) (string, error) {
	_, name, ok := ingest.SplitOnSlashFromBack(path)
	if !ok {
		return "", &ManifestError{Line: n, Text: line, Reason: "path has no directory separator"}
	}
	if name == "" {
		return "", &ManifestError{Line: n, Text: line, Reason: "path has no file name"}
	}
	return name, nil
}

// ClassNames returns the distinct labels in first-seen order.
func ClassNames(entries []Entry) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range entries {
		if _, ok := seen[e.Label]; ok {
			continue
		}
		seen[e.Label] = struct{}{}
		names = append(names, e.Label)
	}
	return names
}

// EntriesForClass returns the entries labeled class, at most limit of them.
// A limit <= 0 returns all of them.
func EntriesForClass(entries []Entry, class string, limit int) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Label != class {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, e)
	}
	return out
}
