package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/randy/internal/game"
)

func TestReport_MapsStatesToExitCodes(t *testing.T) {
	cases := []struct {
		name string
		res  game.Result
		code int
		want string
	}{
		{"won", game.Result{State: game.StateWon, Secret: 7, AttemptsUsed: 2}, 0, "The number was 7."},
		{"exhausted", game.Result{State: game.StateExhausted, Secret: 5, AttemptsUsed: 3}, 1, "The number was 5."},
		{"abandoned", game.Result{State: game.StateAbandoned, Secret: 9}, 130, "The number was 9."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := report(&buf, tc.res)
			assert.Equal(t, tc.code, code)
			require.Contains(t, buf.String(), tc.want, "the secret is revealed in the final message")
		})
	}
}
