// main.go
//
// CLI front end for randy.
// Responsibilities:
//   - Bootstrap: .env loading, zerolog console logging, flag/env resolution.
//   - Fail fast on configuration errors (bad range/timeout, missing or
//     rejected API key) before any round starts.
//   - Wire the input guard onto stdin, the narrator onto OpenRouter, and run
//     one game session under a signal-aware context.
//   - Map the terminal state plus the revealed secret to a final message and
//     a process exit status.
//
// Exit codes:
//
//	0   won
//	1   ran out of attempts
//	2   configuration error
//	130 abandoned (interrupt)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/randy/internal/config"
	"github.com/robalobadob/randy/internal/game"
	"github.com/robalobadob/randy/internal/input"
	"github.com/robalobadob/randy/internal/narrator"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fatal(err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	rng, err := game.NewRange(cfg.Lower, cfg.Upper)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := narrator.New(narrator.Config{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}, log.Logger)
	if err := client.Preflight(ctx, !cfg.ModelIsDefault()); err != nil {
		fatal(err)
	}

	sess, err := game.NewSession(game.Config{
		Range:            rng,
		AttemptsAllowed:  cfg.AttemptsAllowed,
		RoundDuration:    cfg.RoundDuration,
		ExtraTimeCredits: cfg.ExtraTimeCredits,
	}, input.NewGuard(os.Stdin), withSpinner(client, os.Stderr), os.Stdout, log.Logger)
	if err != nil {
		fatal(err)
	}

	res := sess.Run(ctx)
	os.Exit(report(os.Stdout, res))
}

// report prints the final message (the only place the secret is revealed)
// and returns the process exit status for the terminal state.
func report(w io.Writer, res game.Result) int {
	switch res.State {
	case game.StateWon:
		fmt.Fprintf(w, "You got it in %d wrong turn(s). The number was %d.\n", res.AttemptsUsed, res.Secret)
		return 0
	case game.StateExhausted:
		fmt.Fprintf(w, "Out of attempts. The number was %d.\n", res.Secret)
		return 1
	default:
		fmt.Fprintf(w, "\nGame abandoned. The number was %d.\n", res.Secret)
		return 130
	}
}

// fatal reports a configuration error once and exits non-zero.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, "randy:", err)
	os.Exit(2)
}
