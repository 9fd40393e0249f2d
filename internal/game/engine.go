// internal/game/engine.go
//
// Stateless core of the guessing game.
// Responsibilities:
//   - Validate ranges (lower <= upper, inclusive on both ends).
//   - Draw a uniformly distributed secret from a validated range.
//   - Parse raw guess text into an integer.
//   - Classify a guess against the secret (too low / too high / correct).
//
// Notes:
//   - Secret draws use math/rand/v2, which seeds itself from OS entropy;
//     both range endpoints are reachable.
//   - Evaluate is a pure function; the session layer owns all mutation.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned by NewRange when lower > upper.
var ErrInvalidRange = errors.New("invalid range: lower bound exceeds upper bound")

// NewRange validates bounds and constructs a Range.
// Both endpoints are inclusive; a single-value range like [3,3] is legal.
func NewRange(lower, upper int) (Range, error) {
	if lower > upper {
		return Range{}, fmt.Errorf("%w (%d..%d)", ErrInvalidRange, lower, upper)
	}
	return Range{Lower: lower, Upper: upper}, nil
}

// Contains reports whether n falls inside the range, endpoints included.
func (r Range) Contains(n int) bool { return n >= r.Lower && n <= r.Upper }

// String renders the range in the n..m form the CLI accepts.
func (r Range) String() string { return fmt.Sprintf("%d..%d", r.Lower, r.Upper) }

// Secret draws one uniformly distributed value from the range.
// The draw is inclusive on both ends and goes through the unsigned width:
// the span of a range like 0..MaxInt does not fit in a signed int, and the
// full MinInt..MaxInt span does not fit in a uint64 at all (it wraps to 0).
// Two's-complement wraparound makes Lower plus the unsigned offset land on
// the mathematically correct value in [Lower, Upper].
func (r Range) Secret() int {
	span := uint64(r.Upper) - uint64(r.Lower) + 1
	if span == 0 {
		// Every representable integer is in range.
		return int(rand.Uint64())
	}
	return r.Lower + int(rand.Uint64N(span))
}

// ParseGuess converts raw player input into an integer guess.
// Surrounding whitespace is ignored; anything that is not a plain base-10
// integer is an error.
func ParseGuess(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("guess %q is not a whole number", strings.TrimSpace(raw))
	}
	return n, nil
}

// Evaluate classifies a numeric guess against the secret.
// Out-of-range guesses are OutcomeInvalid; in-range guesses resolve to
// exactly one of too_low/too_high/correct by integer ordering.
func Evaluate(guess, secret int, r Range) Outcome {
	switch {
	case !r.Contains(guess):
		return OutcomeInvalid
	case guess < secret:
		return OutcomeTooLow
	case guess > secret:
		return OutcomeTooHigh
	default:
		return OutcomeCorrect
	}
}
