package ingest

import (
	"strings"
	"unicode"
)

// SplitOnWhitespaceFromBack splits s at its last run of whitespace,
// ignoring trailing whitespace. ok is false when s holds a single field.
func SplitOnWhitespaceFromBack(s string) (head, tail string, ok bool) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	i := strings.LastIndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, "", false
	}
	head = strings.TrimRightFunc(s[:i], unicode.IsSpace)
	tail = s[i+1:]
	if head == "" {
		return s, "", false
	}
	return head, tail, true
}

// SplitOnSlashFromBack splits a path at its last '/'.
func SplitOnSlashFromBack(s string) (dir, name string, ok bool) {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}

// StripNewline removes trailing line terminators.
func StripNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}
