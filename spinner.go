// spinner.go
//
// Terminal progress spinner shown while a narration request is in flight.
// Purely cosmetic: it wraps a narrator, animates dots on stderr for the
// duration of the call, and clears the line before the message prints.
// It has no effect on engine state.
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robalobadob/randy/internal/game"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"Processing.  ", "Processing.. ", "Processing..."}

// spinnerNarrator decorates a narrator with the processing animation.
type spinnerNarrator struct {
	inner game.Narrator
	out   io.Writer
}

// withSpinner wraps n so every narration call animates on w.
func withSpinner(n game.Narrator, w io.Writer) game.Narrator {
	return &spinnerNarrator{inner: n, out: w}
}

// Narrate runs the animation until the wrapped call returns.
func (s *spinnerNarrator) Narrate(ctx context.Context, req game.NarrationRequest) string {
	stop := s.start()
	defer stop()
	return s.inner.Narrate(ctx, req)
}

// start launches the animation goroutine and returns a function that stops
// it and clears the spinner line. The returned function blocks until the
// goroutine is gone, so frames never print over the narration.
func (s *spinnerNarrator) start() func() {
	done := make(chan struct{})
	gone := make(chan struct{})

	go func() {
		defer close(gone)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			fmt.Fprintf(s.out, "\r%s", spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		close(done)
		<-gone
	}
}
