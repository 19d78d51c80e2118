package docfreq

import "sort"

// DocSet is the set of document names containing a token.
type DocSet map[string]struct{}

// Len returns the document frequency.
func (s DocSet) Len() int {
	return len(s)
}

// Names returns the document names sorted.
func (s DocSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Map records, for every token, the documents it appears in.
type Map map[string]DocSet

// NewMap creates an empty map.
func NewMap() Map {
	return make(Map)
}

// Add records that token occurs in doc. Repeated calls are idempotent.
func (m Map) Add(token, doc string) {
	set, ok := m[token]
	if !ok {
		set = make(DocSet)
		m[token] = set
	}
	set[doc] = struct{}{}
}

// AddDocument records every distinct token of one document.
func (m Map) AddDocument(doc string, tokens []string) {
	for _, t := range tokens {
		m.Add(t, doc)
	}
}

// Count returns the number of documents containing token.
func (m Map) Count(token string) int {
	return len(m[token])
}

// Tokens returns all tokens sorted.
func (m Map) Tokens() []string {
	tokens := make([]string, 0, len(m))
	for t := range m {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Merge folds other into m by set union.
func (m Map) Merge(other Map) {
	for token, docs := range other {
		for d := range docs {
			m.Add(token, d)
		}
	}
}

// Cull returns a new map holding only tokens with low < df < high.
// The receiver is not modified. low >= high yields an empty map.
func (m Map) Cull(low, high int) Map {
	culled := make(Map)
	for token, docs := range m {
		if n := len(docs); n > low && n < high {
			culled[token] = docs.clone()
		}
	}
	return culled
}

// Clone returns a deep copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for token, docs := range m {
		out[token] = docs.clone()
	}
	return out
}

func (s DocSet) clone() DocSet {
	out := make(DocSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}
