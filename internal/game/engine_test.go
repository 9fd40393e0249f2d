package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange(t *testing.T) {
	r, err := NewRange(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Lower)
	assert.Equal(t, 10, r.Upper)

	_, err = NewRange(10, 1)
	require.ErrorIs(t, err, ErrInvalidRange)

	// A single-value range is legal.
	_, err = NewRange(3, 3)
	require.NoError(t, err)

	// Negative bounds are fine as long as ordering holds.
	_, err = NewRange(-10, -1)
	require.NoError(t, err)
}

func TestSecret_WithinBoundsAndEndpointsReachable(t *testing.T) {
	r, err := NewRange(1, 10)
	require.NoError(t, err)

	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		n := r.Secret()
		require.True(t, r.Contains(n), "secret %d outside %s", n, r)
		seen[n] = true
	}
	// Both endpoints must be reachable; 2000 draws over a span of 10 make a
	// miss astronomically unlikely.
	assert.True(t, seen[1], "lower endpoint never drawn")
	assert.True(t, seen[10], "upper endpoint never drawn")
}

func TestSecret_ExtremeWidthRanges(t *testing.T) {
	// Spans wider than a signed int can hold must still draw in bounds
	// instead of panicking.
	cases := []struct {
		name  string
		lower int
		upper int
	}{
		{"zero to max", 0, math.MaxInt},
		{"min to zero", math.MinInt, 0},
		{"full width", math.MinInt, math.MaxInt},
		{"upper edge", math.MaxInt - 1, math.MaxInt},
		{"lower edge", math.MinInt, math.MinInt + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRange(tc.lower, tc.upper)
			require.NoError(t, err)
			for i := 0; i < 200; i++ {
				n := r.Secret()
				require.True(t, r.Contains(n), "secret %d outside %s", n, r)
			}
		})
	}
}

func TestSecret_TwoValueRangeReachesBothEndpoints(t *testing.T) {
	r, err := NewRange(math.MaxInt-1, math.MaxInt)
	require.NoError(t, err)

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[r.Secret()] = true
	}
	assert.True(t, seen[math.MaxInt-1], "lower endpoint never drawn")
	assert.True(t, seen[math.MaxInt], "upper endpoint never drawn")
}

func TestSecret_SingleValueRange(t *testing.T) {
	r, err := NewRange(3, 3)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.Equal(t, 3, r.Secret())
	}
}

func TestEvaluate(t *testing.T) {
	r, err := NewRange(1, 10)
	require.NoError(t, err)

	cases := []struct {
		name   string
		guess  int
		secret int
		want   Outcome
	}{
		{"below secret", 3, 7, OutcomeTooLow},
		{"above secret", 9, 7, OutcomeTooHigh},
		{"equal", 7, 7, OutcomeCorrect},
		{"lower endpoint", 1, 1, OutcomeCorrect},
		{"upper endpoint", 10, 10, OutcomeCorrect},
		{"below range", 0, 5, OutcomeInvalid},
		{"above range", 11, 5, OutcomeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.guess, tc.secret, r)
			assert.Equal(t, tc.want, got)
			// Pure function: the same inputs classify the same way again.
			assert.Equal(t, got, Evaluate(tc.guess, tc.secret, r))
		})
	}
}

func TestParseGuess(t *testing.T) {
	n, err := ParseGuess("  42\t")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = ParseGuess("-5")
	require.NoError(t, err)
	assert.Equal(t, -5, n)

	for _, bad := range []string{"", "abc", "4.5", "1 2", "7seven"} {
		_, err := ParseGuess(bad)
		assert.Error(t, err, "input %q should not parse", bad)
	}
}
