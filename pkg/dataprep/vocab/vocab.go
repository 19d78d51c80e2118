// Package vocab holds the ordered token axis shared by every feature vector.
package vocab

import "github.com/cognicore/dataprep/pkg/dataprep/docfreq"

// Vocabulary is an ordered set of distinct tokens. The position of a token
// is its feature index and never changes once built.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// New builds a vocabulary from tokens in the given order.
// Duplicates keep their first position.
func New(tokens []string) *Vocabulary {
	v := &Vocabulary{
		tokens: make([]string, 0, len(tokens)),
		index:  make(map[string]int, len(tokens)),
	}
	for _, t := range tokens {
		if _, ok := v.index[t]; ok {
			continue
		}
		v.index[t] = len(v.tokens)
		v.tokens = append(v.tokens, t)
	}
	return v
}

// FromDocFreq builds a vocabulary from the keys of df, sorted.
func FromDocFreq(df docfreq.Map) *Vocabulary {
	return New(df.Tokens())
}

// Len returns the number of tokens.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Index returns the feature index of token.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Contains reports whether token is part of the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.index[token]
	return ok
}

// Token returns the token at index i.
func (v *Vocabulary) Token(i int) string {
	return v.tokens[i]
}

// Tokens returns a copy of the tokens in index order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}
