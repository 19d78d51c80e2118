package corpus

// Document is a single raw text read from disk.
type Document struct {
	Name  string
	Path  string
	Label string // empty in test mode
	Text  string
}

// Corpus is an insertion-ordered collection of documents keyed by name.
type Corpus struct {
	docs  []Document
	index map[string]int
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{index: make(map[string]int)}
}

// Add inserts d. A document with the same name is replaced in place,
// keeping its original position.
func (c *Corpus) Add(d Document) {
	if i, ok := c.index[d.Name]; ok {
		c.docs[i] = d
		return
	}
	c.index[d.Name] = len(c.docs)
	c.docs = append(c.docs, d)
}

// Get returns the document with the given name.
func (c *Corpus) Get(name string) (Document, bool) {
	i, ok := c.index[name]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Docs returns the documents in insertion order. The slice is a copy.
func (c *Corpus) Docs() []Document {
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}
