package console

import (
	"fmt"
	"io"
	"os"

	"charm.land/bubbles/v2/progress"
	"golang.org/x/term"
)

const (
	progressWidth = 40
	// redraw at most once per this many bytes
	progressStep = 32 * 1024
)

// ProgressBar is an io.Writer that renders transfer progress on a terminal.
// Tee a response body into it; when the output is not a terminal it only counts.
type ProgressBar struct {
	out      io.Writer
	bar      progress.Model
	label    string
	total    int64
	current  int64
	lastDraw int64
	enabled  bool
}

// NewProgressBar creates a bar writing to stderr. total <= 0 means unknown size.
func NewProgressBar(label string, total int64) *ProgressBar {
	return &ProgressBar{
		out:     os.Stderr,
		bar:     progress.New(progress.WithWidth(progressWidth)),
		label:   label,
		total:   total,
		enabled: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Write counts the bytes passing through.
func (p *ProgressBar) Write(b []byte) (int, error) {
	p.current += int64(len(b))
	if p.current-p.lastDraw >= progressStep || (p.total > 0 && p.current >= p.total) {
		p.render()
	}
	return len(b), nil
}

// Current returns the number of bytes counted so far.
func (p *ProgressBar) Current() int64 {
	return p.current
}

// Finish draws the final state and ends the line.
func (p *ProgressBar) Finish() {
	if !p.enabled {
		return
	}
	p.render()
	fmt.Fprintln(p.out)
}

func (p *ProgressBar) render() {
	p.lastDraw = p.current
	if !p.enabled {
		return
	}
	kb := float64(p.current) / 1024
	if p.total > 0 {
		percent := min(float64(p.current)/float64(p.total), 1)
		fmt.Fprintf(p.out, "\r%s %s %.1f KB", p.label, p.bar.ViewAs(percent), kb)
		return
	}
	fmt.Fprintf(p.out, "\r%s %.1f KB", p.label, kb)
}
