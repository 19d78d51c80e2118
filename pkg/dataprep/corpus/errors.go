package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestFormat marks a manifest line that cannot be split into its fields.
	ErrManifestFormat = errors.New("manifest format")
	// ErrFileAccess marks a document that cannot be opened or read.
	ErrFileAccess = errors.New("file access")
)

// ManifestError reports a malformed manifest line.
type ManifestError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest line %d %q: %s", e.Line, e.Text, e.Reason)
}

func (e *ManifestError) Unwrap() error { return ErrManifestFormat }

// FileError reports a document that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("read document %s: %v", e.Path, e.Err)
}

func (e *FileError) Is(target error) bool { return target == ErrFileAccess }

func (e *FileError) Unwrap() error { return e.Err }
