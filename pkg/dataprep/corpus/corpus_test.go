package corpus

import "testing"

func TestCorpusPreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(Document{Name: "b", Text: "second"})
	c.Add(Document{Name: "a", Text: "first"})
	c.Add(Document{Name: "c", Text: "third"})

	docs := c.Docs()
	if len(docs) != 3 {
		t.Fatalf("Expected 3 docs, got %d", len(docs))
	}
	for i, want := range []string{"b", "a", "c"} {
		if docs[i].Name != want {
			t.Errorf("docs[%d] = %s, want %s", i, docs[i].Name, want)
		}
	}
}

func TestCorpusReplaceKeepsPosition(t *testing.T) {
	c := New()
	c.Add(Document{Name: "a", Text: "old"})
	c.Add(Document{Name: "b", Text: "other"})
	c.Add(Document{Name: "a", Text: "new"})

	if c.Len() != 2 {
		t.Fatalf("Expected 2 docs, got %d", c.Len())
	}
	if docs := c.Docs(); docs[0].Name != "a" || docs[0].Text != "new" {
		t.Errorf("Expected replaced doc at index 0, got %+v", docs[0])
	}

	d, ok := c.Get("a")
	if !ok || d.Text != "new" {
		t.Errorf("Get(a) = %+v, %v", d, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should not be found")
	}
}

func TestCorpusDocsIsCopy(t *testing.T) {
	c := New()
	c.Add(Document{Name: "a", Text: "text"})

	docs := c.Docs()
	docs[0].Text = "mutated"

	if d, _ := c.Get("a"); d.Text != "text" {
		t.Error("Docs() should return a copy")
	}
}
