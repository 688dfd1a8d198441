// Package progress reports how far a multi-step CLI operation has got.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback. Step may be called from several
// goroutines.
type Reporter interface {
	Start(total int, description string)
	Step(message string)
	Finish()
}

// NewReporter returns a TerminalReporter writing to w, or a CIReporter if
// the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w   io.Writer
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Step(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	w       io.Writer
	mu      sync.Mutex
	total   int
	current int
}

func (r *CIReporter) Start(total int, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total, r.current = total, 0
	fmt.Fprintf(r.w, "%s (%d steps)\n", description, total)
}

func (r *CIReporter) Step(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current++
	fmt.Fprintf(r.w, "[%d/%d] %s\n", r.current, r.total, message)
}

func (r *CIReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, "done")
}
