// Package progress renders a single-line terminal loading bar.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const width = 100

// Reporter is notified once per processed item.
type Reporter interface {
	Tick()
}

type discard struct{}

func (discard) Tick() {}

// Discard ignores all ticks.
var Discard Reporter = discard{}

// Bar draws "\r<label> |███---| 42.0% <done>" and ends the line at 100%.
type Bar struct {
	mu    sync.Mutex
	w     io.Writer
	total int
	n     int
	label string
	done  string
}

// NewBar creates a bar for total items and draws it at 0%.
// A nil writer returns a bar that draws nothing.
func NewBar(w io.Writer, total int, label, done string) *Bar {
	b := &Bar{w: w, total: total, label: label, done: done}
	b.draw()
	return b
}

// Tick advances the bar by one item.
func (b *Bar) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.n < b.total {
		b.n++
	}
	b.draw()
}

// Percent returns the completed share in [0, 100].
func (b *Bar) Percent() float64 {
	if b.total <= 0 {
		return 100
	}
	return float64(b.n) / float64(b.total) * 100
}

func (b *Bar) draw() {
	if b.w == nil {
		return
	}
	pct := b.Percent()
	filled := int(pct)
	bar := strings.Repeat("█", filled) + strings.Repeat("-", width-filled)
	fmt.Fprintf(b.w, "\r%s |%s| %.1f%% %s", b.label, bar, pct, b.done)
	if pct >= 100 {
		fmt.Fprintln(b.w)
	}
}
