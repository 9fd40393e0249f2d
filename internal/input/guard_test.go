package input

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwait_DeliversLineBeforeDeadline(t *testing.T) {
	g := NewGuard(strings.NewReader("42\n17\n"))

	line, err := g.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "42", line)

	line, err = g.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "17", line)
}

func TestAwait_TimesOutNotBeforeDeadline(t *testing.T) {
	r, _ := io.Pipe() // never written to
	g := NewGuard(r)

	const d = 50 * time.Millisecond
	start := time.Now()
	_, err := g.Await(context.Background(), d)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrTimedOut)
	assert.GreaterOrEqual(t, elapsed, d, "timeout fired early")
}

func TestAwait_DiscardsStaleLineAfterTimeout(t *testing.T) {
	r, w := io.Pipe()
	g := NewGuard(r)

	_, err := g.Await(context.Background(), 20*time.Millisecond)
	require.ErrorIs(t, err, ErrTimedOut)

	// The keystroke for the timed-out round lands late, followed by the next
	// round's real input.
	go func() {
		io.WriteString(w, "late\n")
		io.WriteString(w, "fresh\n")
	}()
	time.Sleep(50 * time.Millisecond) // let the pump buffer the late line

	line, err := g.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "fresh", line, "stale input leaked into the next round")
}

func TestAwait_LineTypedUnderLivePromptCounts(t *testing.T) {
	r, w := io.Pipe()
	g := NewGuard(r)

	_, err := g.Await(context.Background(), 20*time.Millisecond)
	require.ErrorIs(t, err, ErrTimedOut)

	// Nothing was typed before the next round armed, so a line arriving
	// while it waits belongs to the live prompt and must be delivered.
	go func() {
		time.Sleep(30 * time.Millisecond)
		io.WriteString(w, "7\n")
	}()

	line, err := g.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "7", line)
}

func TestAwait_LineAfterNormalRoundIsKept(t *testing.T) {
	g := NewGuard(strings.NewReader("1\n2\n"))

	line, err := g.Await(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, "1", line)

	// No timeout happened, so the buffered second line must survive.
	line, err = g.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "2", line)
}

func TestAwait_CancelledContextWinsRace(t *testing.T) {
	r, _ := io.Pipe()
	g := NewGuard(r)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := g.Await(ctx, 10*time.Second)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "abort should not wait for the round deadline")
}

func TestAwait_ClosedSource(t *testing.T) {
	g := NewGuard(strings.NewReader(""))

	_, err := g.Await(context.Background(), time.Second)
	require.ErrorIs(t, err, ErrClosed)
}
