package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarRendersAndCompletes(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, 2, "Tokenizing:", "Complete")

	if !strings.Contains(buf.String(), "0.0%") {
		t.Errorf("Expected initial 0.0%%, got %q", buf.String())
	}

	bar.Tick()
	if bar.Percent() != 50 {
		t.Errorf("Percent = %v, want 50", bar.Percent())
	}
	if !strings.Contains(buf.String(), strings.Repeat("█", 50)+strings.Repeat("-", 50)) {
		t.Error("Expected half filled bar")
	}

	bar.Tick()
	out := buf.String()
	if !strings.HasSuffix(out, "100.0% Complete\n") {
		t.Errorf("Expected completed line, got %q", out[len(out)-30:])
	}

	// Extra ticks never exceed the total
	bar.Tick()
	if bar.Percent() != 100 {
		t.Errorf("Percent = %v after overflow, want 100", bar.Percent())
	}
}

func TestBarNilWriter(t *testing.T) {
	bar := NewBar(nil, 3, "x", "y")
	bar.Tick()
	if bar.Percent() <= 33 || bar.Percent() >= 34 {
		t.Errorf("Percent = %v", bar.Percent())
	}
}

func TestBarEmptyTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, 0, "Vectors:", "Complete")
	if bar.Percent() != 100 {
		t.Errorf("Percent = %v, want 100", bar.Percent())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("Empty bar should render as complete")
	}
}

func TestDiscard(t *testing.T) {
	Discard.Tick()
}
