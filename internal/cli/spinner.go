package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerInterval paces the braille animation.
const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a progress line on stderr while a carve or solve runs.
// It also watches the surrounding context, so Ctrl-C leaves a clean line
// behind instead of a half-drawn frame.
type Spinner struct {
	message string
	out     io.Writer
	parent  context.Context
	halt    chan struct{} // closed by Stop
	fin     chan struct{} // closed when the animation goroutine exits
	once    sync.Once
}

// newSpinnerWithContext creates a spinner bound to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		parent:  ctx,
		halt:    make(chan struct{}),
		fin:     make(chan struct{}),
	}
}

// Start begins the animation in the background.
func (s *Spinner) Start() {
	go func() {
		defer close(s.fin)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.parent.Done():
				return
			case <-s.halt:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			}
		}
	}()
}

// Stop halts the animation, waits for the goroutine to finish, and clears
// the line. Calling it more than once is safe.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.halt) })
	<-s.fin
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Cancelled reports whether the surrounding context was cancelled while
// the spinner ran.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
