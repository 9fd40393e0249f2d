// internal/config/config.go
//
// Runtime configuration for the game, resolved once in main and injected
// from there (no package reads the environment ambiently).
//
// Resolution order, per source:
//   1. Command-line flags (--api-key, --model, --range, --attempts,
//      --timeout, --extra-time, --log-level).
//   2. Environment variables (OPENROUTER_API, OPENROUTER_MODEL, LOG_LEVEL).
//   3. Built-in defaults (model defaults to the free Qwerky 72B id).
//
// Flags win over environment whenever both are present. The API key has no
// default; a missing key is a configuration error.

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/robalobadob/randy/internal/narrator"
)

// Configuration errors, all fatal before the first round.
var (
	ErrMissingKey      = errors.New("missing API key: set OPENROUTER_API or pass --api-key")
	ErrMalformedRange  = errors.New("malformed range: expected n..m (both inclusive)")
	ErrInvalidTimeout  = errors.New("invalid timeout: must be a positive duration")
	ErrInvalidAttempts = errors.New("invalid attempts: must be positive")
	ErrInvalidCredits  = errors.New("invalid extra time: must not be negative")
)

// rangeRe matches the n..m form the original CLI accepted, with optional
// signs on either bound.
var rangeRe = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)$`)

// Defaults applied when neither flag nor environment supplies a value.
const (
	DefaultRange    = "1..100"
	DefaultAttempts = 5
	DefaultTimeout  = 30 * time.Second
	DefaultCredits  = 1
	DefaultLogLevel = "warn"
)

// Config describes all runtime settings for one game run.
type Config struct {
	APIKey string
	Model  string

	Lower int // inclusive range bounds; ordering is validated by the engine
	Upper int

	AttemptsAllowed  int
	RoundDuration    time.Duration
	ExtraTimeCredits int

	LogLevel string
}

// Load parses args (excluding the program name), applies env fallbacks and
// defaults, and validates what can be validated without the engine.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("randy", flag.ContinueOnError)
	fs.Usage = func() { usage(fs) }

	var (
		apiKey   = fs.String("api-key", "", "OpenRouter API key (overrides OPENROUTER_API)")
		model    = fs.String("model", "", "model id for the narration requests (overrides OPENROUTER_MODEL)")
		rng      = fs.String("range", DefaultRange, "guessing range in the form n..m, both inclusive")
		attempts = fs.Int("attempts", DefaultAttempts, "wrong guesses allowed before the game is lost")
		timeout  = fs.Duration("timeout", DefaultTimeout, "time allowed per guess")
		extra    = fs.Int("extra-time", DefaultCredits, "timed-out rounds that may be retried without losing an attempt")
		logLevel = fs.String("log-level", "", "zerolog level: trace|debug|info|warn|error (overrides LOG_LEVEL)")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var c Config
	c.APIKey = firstOf(*apiKey, os.Getenv("OPENROUTER_API"))
	c.Model = firstOf(*model, os.Getenv("OPENROUTER_MODEL"), narrator.DefaultModel)
	c.LogLevel = firstOf(*logLevel, os.Getenv("LOG_LEVEL"), DefaultLogLevel)
	c.AttemptsAllowed = *attempts
	c.RoundDuration = *timeout
	c.ExtraTimeCredits = *extra

	lower, upper, err := parseRange(*rng)
	if err != nil {
		return Config{}, err
	}
	c.Lower, c.Upper = lower, upper

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the engine would refuse, before any round runs.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingKey
	}
	if c.RoundDuration <= 0 {
		return fmt.Errorf("%w (got %s)", ErrInvalidTimeout, c.RoundDuration)
	}
	if c.AttemptsAllowed <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidAttempts, c.AttemptsAllowed)
	}
	if c.ExtraTimeCredits < 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidCredits, c.ExtraTimeCredits)
	}
	return nil
}

// ModelIsDefault reports whether the run uses the built-in model id, in which
// case the startup model check is skipped.
func (c Config) ModelIsDefault() bool { return c.Model == narrator.DefaultModel }

// parseRange splits "n..m" into its integer bounds. Ordering is left to the
// engine's range validation.
func parseRange(s string) (int, int, error) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w (got %q)", ErrMalformedRange, s)
	}
	lower, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w (got %q)", ErrMalformedRange, s)
	}
	upper, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w (got %q)", ErrMalformedRange, s)
	}
	return lower, upper, nil
}

// firstOf returns the first non-empty value.
func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// usage prints flag help plus the precedence rules.
func usage(fs *flag.FlagSet) {
	fmt.Fprintln(fs.Output(), "randy — guess a number, get heckled by a cowboy")
	fmt.Fprintln(fs.Output(), "")
	fmt.Fprintln(fs.Output(), "Usage: randy [flags]")
	fmt.Fprintln(fs.Output(), "")
	fs.PrintDefaults()
	fmt.Fprintln(fs.Output(), "")
	fmt.Fprintln(fs.Output(), "Flags take precedence over environment variables (OPENROUTER_API,")
	fmt.Fprintln(fs.Output(), "OPENROUTER_MODEL, LOG_LEVEL). The API key is required; everything")
	fmt.Fprintln(fs.Output(), "else has a default.")
}
