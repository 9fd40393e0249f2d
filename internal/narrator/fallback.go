// internal/narrator/fallback.go
//
// Stock cowboy lines used when the remote narrator is unavailable.
// The table is fixed and keyed by outcome so fallback behavior stays
// deterministic: the line for a given outcome and attempt count never
// changes between runs.

package narrator

import "github.com/robalobadob/randy/internal/game"

// fallbackLines holds at least two lines per outcome variant. Every outcome
// the engine can produce has an entry; FallbackLine never returns "".
var fallbackLines = map[game.Outcome][]string{
	game.OutcomeCorrect: {
		"Well I'll be! Ya hit the nail square on the head, partner.",
		"Yeehaw! That's the number, sure as sunrise.",
	},
	game.OutcomeTooLow: {
		"Aim higher, partner. That shot landed short of the mark.",
		"Too low, cowpoke. Raise them sights a notch.",
	},
	game.OutcomeTooHigh: {
		"Whoa there, that one sailed clean over the barn.",
		"Too high, partner. Rein it in some.",
	},
	game.OutcomeInvalid: {
		"That ain't a number I can wrangle. Give it another go.",
		"Can't read that brand, partner. Numbers only out here.",
	},
	game.OutcomeTimedOut: {
		"Sun's gone down on that one, partner. Clock ran clean out.",
		"Too slow on the draw. Time's up.",
	},
}

// FallbackLine picks the stock line for an outcome. The pick rotates with the
// attempt count so consecutive fallbacks vary, yet stays a pure function of
// its inputs.
func FallbackLine(o game.Outcome, attempt int) string {
	lines, ok := fallbackLines[o]
	if !ok || len(lines) == 0 {
		return "The trail's gone quiet, partner. Ride on."
	}
	if attempt < 0 {
		attempt = 0
	}
	return lines[attempt%len(lines)]
}
