package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Text renders a view as plain lines.
func Text(v View) string {
	lines := []string{v.Title}
	if v.Value != "" {
		value := v.Value
		if v.Unit != "" {
			value += " " + v.Unit
		}
		lines = append(lines, value)
	}
	if v.Detail != "" {
		lines = append(lines, v.Detail)
	}
	return strings.Join(lines, "\n")
}

// WriterDisplay prints every view to a writer, one block per view.
type WriterDisplay struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterDisplay creates a display that writes to w.
func NewWriterDisplay(w io.Writer) *WriterDisplay {
	return &WriterDisplay{w: w}
}

// Show writes the text rendering of v.
func (d *WriterDisplay) Show(v View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintln(d.w, Text(v))
}

// Recorder keeps every view shown, newest last.
type Recorder struct {
	mu    sync.Mutex
	views []View
}

// Show records v.
func (r *Recorder) Show(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

// Views returns a copy of the recorded views.
func (r *Recorder) Views() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]View(nil), r.views...)
}

// Last returns the most recent view.
func (r *Recorder) Last() (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return View{}, false
	}
	return r.views[len(r.views)-1], true
}
