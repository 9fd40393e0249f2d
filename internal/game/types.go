// internal/game/types.go
//
// Core type definitions for the guessing-game engine.
// Defines:
//   - Outcome: classification of a single guess (too low/too high/correct/...).
//   - Range: validated inclusive bounds the secret is drawn from.
//   - Budget: per-session attempt and extra-time accounting.
//   - State: coarse session lifecycle (configuring/in-progress/terminal).
//   - Result: what a finished session reports back to the front end.

package game

// Outcome represents the evaluation result of a single round.
// Possible values:
//   - "too_low":   the guess is below the secret.
//   - "too_high":  the guess is above the secret.
//   - "correct":   the guess equals the secret.
//   - "invalid":   the guess did not parse or fell outside the range.
//   - "timed_out": no guess arrived before the round deadline.
type Outcome string

const (
	OutcomeTooLow   Outcome = "too_low"
	OutcomeTooHigh  Outcome = "too_high"
	OutcomeCorrect  Outcome = "correct"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeTimedOut Outcome = "timed_out"
)

// State is the session lifecycle phase.
// "won", "exhausted" and "abandoned" are terminal; no rounds run after them.
type State string

const (
	StateConfiguring State = "configuring"
	StateInProgress  State = "in_progress"
	StateWon         State = "won"
	StateExhausted   State = "exhausted"
	StateAbandoned   State = "abandoned"
)

// Terminal reports whether no further rounds may be played in this state.
func (s State) Terminal() bool {
	return s == StateWon || s == StateExhausted || s == StateAbandoned
}

// Range holds validated inclusive bounds for the secret number.
// Construct via NewRange; Lower <= Upper always holds afterwards.
type Range struct {
	Lower int // smallest guessable value (inclusive)
	Upper int // largest guessable value (inclusive)
}

// Budget tracks attempt consumption for one session.
// A new session creates a new Budget; there is no reset.
type Budget struct {
	AttemptsUsed     int // wrong guesses and uncredited timeouts so far
	AttemptsAllowed  int // total attempts before the session is exhausted
	ExtraTimeCredits int // remaining timeout waivers, never replenished
}

// Exhausted reports whether every allowed attempt has been spent.
func (b Budget) Exhausted() bool { return b.AttemptsUsed >= b.AttemptsAllowed }

// Result is returned once a session reaches a terminal state.
// Secret is revealed here and nowhere else.
type Result struct {
	State        State // won, exhausted or abandoned
	Secret       int   // the number that was to be guessed
	AttemptsUsed int   // attempts consumed before termination
}
