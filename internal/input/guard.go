// internal/input/guard.go
//
// Guard bounds how long the game waits for one line of player input.
// Responsibilities:
//   - Pump lines from a reader (normally os.Stdin) into a channel from a
//     single long-lived goroutine.
//   - Race line arrival against a per-round deadline and the session context;
//     whichever resolves first wins.
//   - Discard stale input: a line typed after a round timed out is dropped at
//     the start of the next Await, never echoed into a later round.
//
// Notes:
//   - Reads on a terminal cannot be cancelled, so the pump goroutine is
//     started once and owns the reader for the guard's lifetime.
//   - Await is called from the single session goroutine; the guard is not
//     safe for concurrent Await calls.
//   - Duration validation happens at configuration time, not here.
package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"
)

// ErrTimedOut reports that the round deadline elapsed before a line arrived.
var ErrTimedOut = errors.New("timed out waiting for input")

// ErrClosed reports that the underlying reader was exhausted (e.g. stdin was
// closed); no further input will ever arrive.
var ErrClosed = errors.New("input source closed")

// Guard owns the pending input buffer for the duration of one round.
type Guard struct {
	lines chan string
	done  chan struct{} // closed when the pump goroutine exits
	err   error         // read error observed by the pump, if any
	stale bool          // previous round timed out; drop its late line
}

// NewGuard starts the line pump on r and returns the guard.
func NewGuard(r io.Reader) *Guard {
	g := &Guard{
		lines: make(chan string, 1),
		done:  make(chan struct{}),
	}
	go g.pump(r)
	return g
}

// pump scans lines until the reader is drained, then records the terminal
// error and closes done.
func (g *Guard) pump(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		g.lines <- sc.Text()
	}
	g.err = sc.Err()
	close(g.done)
}

// Await blocks until a line arrives, d elapses, or ctx is cancelled.
// On timeout it returns ErrTimedOut and marks the round's late keystroke, if
// one ever lands, for disposal before the next round is armed.
func (g *Guard) Await(ctx context.Context, d time.Duration) (string, error) {
	// The disposal window closes once the next round is armed: a late line
	// already pumped by now belonged to the timed-out prompt and is dropped;
	// a line arriving from here on was typed under the live prompt and
	// counts as this round's guess.
	if g.stale {
		select {
		case <-g.lines:
		default:
		}
		g.stale = false
	}

	// A line already buffered beats both the timer and a closed pump.
	select {
	case line := <-g.lines:
		return line, nil
	default:
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case line := <-g.lines:
		return line, nil
	case <-timer.C:
		g.stale = true
		return "", ErrTimedOut
	case <-ctx.Done():
		return "", ctx.Err()
	case <-g.done:
		// The pump may have buffered a final line right before exiting.
		select {
		case line := <-g.lines:
			return line, nil
		default:
		}
		if g.err != nil {
			return "", g.err
		}
		return "", ErrClosed
	}
}
