// internal/game/session.go
//
// Session: the guess-loop orchestrator.
// Responsibilities:
//   - Validate configuration once (range, attempts, round duration, credits).
//   - Draw the secret and initialise the attempt budget.
//   - Drive rounds: await a guess (bounded by the input guard), evaluate it,
//     narrate the outcome, print exactly one line, update the budget.
//   - Track state transitions: configuring → in_progress → won/exhausted/abandoned.
//
// Notes:
//   - The narrator and the guess source are injected as narrow interfaces;
//     the session never touches the network or the terminal directly beyond
//     the message writer it is handed.
//   - A timed-out round spends one extra-time credit (when available) to
//     re-arm the same round without consuming an attempt. Credits never
//     replenish. Without credits a timeout costs an attempt.
//   - Context cancellation is observed at the top of every round and inside
//     the input race; it terminates the session as abandoned.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/randy/internal/input"
)

// ErrInvalidTimeout is returned at configuration time for non-positive
// round durations; it is never deferred to round time.
var ErrInvalidTimeout = errors.New("invalid timeout: round duration must be positive")

// ErrInvalidAttempts is returned at configuration time when the attempt
// allowance is not positive.
var ErrInvalidAttempts = errors.New("invalid attempts: allowance must be positive")

// GuessSource yields one line of player input per round, bounded by a
// deadline. Implemented by input.Guard; faked in tests.
type GuessSource interface {
	Await(ctx context.Context, d time.Duration) (string, error)
}

// NarrationRequest is the minimal per-round context handed to the narrator.
type NarrationRequest struct {
	Outcome      Outcome
	Range        Range
	AttemptsUsed int
}

// Narrator renders one displayable line for a round outcome. Implementations
// must always return a non-empty line; degraded backends fall back to stock
// text rather than failing the round.
type Narrator interface {
	Narrate(ctx context.Context, req NarrationRequest) string
}

// Config carries everything a session needs, resolved by the front end.
type Config struct {
	Range            Range
	AttemptsAllowed  int
	RoundDuration    time.Duration // per-guess deadline
	ExtraTimeCredits int           // timeout waivers for the whole session
}

// Session owns all per-run state. One Session is one complete game; it is
// not reusable after Run returns.
type Session struct {
	id      string
	cfg     Config
	secret  int
	budget  Budget
	state   State
	source  GuessSource
	narrate Narrator
	out     io.Writer
	log     zerolog.Logger
}

// NewSession validates cfg, draws the secret and prepares the budget.
// Any validation failure aborts before the session can enter in_progress.
func NewSession(cfg Config, src GuessSource, n Narrator, out io.Writer, log zerolog.Logger) (*Session, error) {
	if cfg.RoundDuration <= 0 {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidTimeout, cfg.RoundDuration)
	}
	if cfg.AttemptsAllowed <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidAttempts, cfg.AttemptsAllowed)
	}
	if cfg.ExtraTimeCredits < 0 {
		return nil, fmt.Errorf("invalid extra time credits: %d", cfg.ExtraTimeCredits)
	}
	if cfg.Range.Lower > cfg.Range.Upper {
		return nil, fmt.Errorf("%w (%s)", ErrInvalidRange, cfg.Range)
	}

	id := uuid.NewString()
	return &Session{
		id:     id,
		cfg:    cfg,
		secret: cfg.Range.Secret(),
		budget: Budget{
			AttemptsAllowed:  cfg.AttemptsAllowed,
			ExtraTimeCredits: cfg.ExtraTimeCredits,
		},
		state:   StateConfiguring,
		source:  src,
		narrate: n,
		out:     out,
		log:     log.With().Str("session", id).Logger(),
	}, nil
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// State reports the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Run drives rounds until a terminal state is reached, then reports it along
// with the revealed secret. The secret is exposed nowhere else.
func (s *Session) Run(ctx context.Context) Result {
	s.state = StateInProgress
	s.log.Info().
		Str("range", s.cfg.Range.String()).
		Int("attempts", s.cfg.AttemptsAllowed).
		Dur("round_duration", s.cfg.RoundDuration).
		Int("extra_time", s.cfg.ExtraTimeCredits).
		Msg("session started")

	for !s.state.Terminal() {
		// Abort must win at every round boundary, not only mid-race.
		if ctx.Err() != nil {
			s.state = StateAbandoned
			break
		}
		s.playRound(ctx)
	}

	s.log.Info().
		Str("state", string(s.state)).
		Int("attempts_used", s.budget.AttemptsUsed).
		Msg("session finished")
	return Result{State: s.state, Secret: s.secret, AttemptsUsed: s.budget.AttemptsUsed}
}

// playRound runs one guess/outcome/narration cycle and applies the budget
// rules for the outcome.
func (s *Session) playRound(ctx context.Context) {
	s.prompt()

	raw, err := s.source.Await(ctx, s.cfg.RoundDuration)
	switch {
	case err == nil:
		// fallthrough to evaluation below
	case errors.Is(err, input.ErrTimedOut):
		s.handleTimeout(ctx)
		return
	default:
		// Cancelled context, closed stdin: the player is gone.
		s.state = StateAbandoned
		return
	}

	outcome := s.classify(raw)
	s.show(ctx, outcome)

	switch outcome {
	case OutcomeCorrect:
		s.state = StateWon
	case OutcomeInvalid:
		// Re-prompt; invalid input never costs an attempt.
	case OutcomeTooLow, OutcomeTooHigh:
		s.budget.AttemptsUsed++
		if s.budget.Exhausted() {
			s.state = StateExhausted
		}
	}
}

// classify parses raw input and evaluates it against the secret.
func (s *Session) classify(raw string) Outcome {
	guess, err := ParseGuess(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("unparseable guess")
		return OutcomeInvalid
	}
	return Evaluate(guess, s.secret, s.cfg.Range)
}

// handleTimeout applies the extra-time policy: while credits remain, a
// timeout re-arms the same round for free; afterwards it costs an attempt.
func (s *Session) handleTimeout(ctx context.Context) {
	s.show(ctx, OutcomeTimedOut)

	if s.budget.ExtraTimeCredits > 0 {
		s.budget.ExtraTimeCredits--
		s.log.Info().Int("credits_left", s.budget.ExtraTimeCredits).Msg("extra time granted")
		return
	}
	s.budget.AttemptsUsed++
	if s.budget.Exhausted() {
		s.state = StateExhausted
	}
}

// show narrates the outcome and prints the single displayed line for this
// round. The narrator contract guarantees a non-empty line even when the
// remote call fails.
func (s *Session) show(ctx context.Context, outcome Outcome) {
	line := s.narrate.Narrate(ctx, NarrationRequest{
		Outcome:      outcome,
		Range:        s.cfg.Range,
		AttemptsUsed: s.budget.AttemptsUsed,
	})
	fmt.Fprintln(s.out, line)
}

// prompt prints the per-round input invitation.
func (s *Session) prompt() {
	left := s.cfg.AttemptsAllowed - s.budget.AttemptsUsed
	fmt.Fprintf(s.out, "Pick a number in %s (%d attempt(s) left): ", s.cfg.Range, left)
}
