package ingest

import "testing"

func TestSplitOnWhitespaceFromBack(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantHead string
		wantTail string
		wantOK   bool
	}{
		{"path and label", "data/train/doc1.txt sports\n", "data/train/doc1.txt", "sports", true},
		{"tab separated", "a/b.txt\tpolitics", "a/b.txt", "politics", true},
		{"spaces in path", "my docs/b.txt  tech", "my docs/b.txt", "tech", true},
		{"single field", "a/b.txt\n", "a/b.txt", "", false},
		{"leading space only", "  label", "  label", "", false},
		{"empty", "", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			head, tail, ok := SplitOnWhitespaceFromBack(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if head != tc.wantHead || tail != tc.wantTail {
				t.Errorf("got (%q, %q), want (%q, %q)", head, tail, tc.wantHead, tc.wantTail)
			}
		})
	}
}

func TestSplitOnSlashFromBack(t *testing.T) {
	dir, name, ok := SplitOnSlashFromBack("data/train/doc1.txt")
	if !ok || dir != "data/train" || name != "doc1.txt" {
		t.Errorf("got (%q, %q, %v)", dir, name, ok)
	}

	_, name, ok = SplitOnSlashFromBack("doc1.txt")
	if ok {
		t.Error("expected ok=false without a slash")
	}
	if name != "doc1.txt" {
		t.Errorf("name = %q, want doc1.txt", name)
	}
}

func TestStripNewline(t *testing.T) {
	for in, want := range map[string]string{
		"sports\n":   "sports",
		"sports\r\n": "sports",
		"sports":     "sports",
		"\n":         "",
	} {
		if got := StripNewline(in); got != want {
			t.Errorf("StripNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
