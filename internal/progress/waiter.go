// Package progress provides waiting feedback while a generation request
// is in flight.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Waiter shows that a request is in progress. Unlike a counted bar, a
// waiter has no known total; it spins until Stop.
type Waiter interface {
	Start(message string)
	Stop()
}

// NewWaiter returns a TerminalWaiter for interactive use, or a CIWaiter
// when running under CI.
func NewWaiter() Waiter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIWaiter{}
	}
	return &TerminalWaiter{}
}

// TerminalWaiter displays an animated spinner in the terminal.
type TerminalWaiter struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (w *TerminalWaiter) Start(message string) {
	w.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	w.done = make(chan struct{})

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				_ = w.bar.Add(1)
			}
		}
	}()
}

func (w *TerminalWaiter) Stop() {
	if w.done != nil {
		close(w.done)
		w.done = nil
	}
	if w.bar != nil {
		_ = w.bar.Finish()
	}
}

// CIWaiter prints single lines suitable for CI logs.
type CIWaiter struct{}

func (w *CIWaiter) Start(message string) {
	fmt.Fprintf(os.Stderr, "%s...\n", message)
}

func (w *CIWaiter) Stop() {}
