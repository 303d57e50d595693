package console

import (
	"context"
	"strings"
	"testing"

	"runway/services/runway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, k int, input string) string {
	t.Helper()
	var out strings.Builder
	c := New(strings.NewReader(input), &out, WithColor(false))
	svc := runway.NewDefaultRunwayService(runway.NewStore(k), nil)
	require.NoError(t, c.Run(context.Background(), svc))
	return out.String()
}

func TestRunScenario(t *testing.T) {
	out := runSession(t, 10, "1 09:00 1 09:05 1 09:15 2 4 8 9")

	assert.Equal(t, 2, strings.Count(out, "Reservation successfully made."))
	assert.Contains(t, out, conflictMessage)
	assert.Contains(t, out, "Plane landed successfully at time 9:00.")
	assert.Contains(t, out, "Minimum Landing Time: 9:15")
	assert.Contains(t, out, "Landing times reserved at the moment: 9:15\n")
	assert.True(t, strings.HasSuffix(out, "Exiting program.\n"))
}

func TestRunEmptyStore(t *testing.T) {
	out := runSession(t, 5, "2 3 4 5 8 9")

	assert.Contains(t, out, "No reservations to land.")
	assert.Equal(t, 3, strings.Count(out, "No reservations made."))
	assert.Contains(t, out, "Landing times reserved at the moment: \n")
}

func TestRunSearchAndRank(t *testing.T) {
	out := runSession(t, 5, "1 0:10 1 0:30 1 0:50 6 00:30 6 00:31 7 0:50 7 1:00 9")

	assert.Contains(t, out, "Reservation already made for the requested landing time.")
	assert.Contains(t, out, "No reservation at this landing time.")
	assert.Contains(t, out, "Number of reservations before 0:50: 2")
	assert.Contains(t, out, "No reservation made at this time.")
}

func TestRunRejectsBadInput(t *testing.T) {
	out := runSession(t, 5, "12 abc 1 0900 1 24:00 9")

	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please try again."))
	assert.Contains(t, out, "Invalid time format.")
	assert.Contains(t, out, "Invalid time value.")
	assert.NotContains(t, out, "Reservation successfully made.")
}

func TestRunStopsAtEOF(t *testing.T) {
	out := runSession(t, 5, "1 09:00")
	assert.Contains(t, out, "Reservation successfully made.")
	assert.NotContains(t, out, "Exiting program.")

	// EOF while a time is being asked for.
	out = runSession(t, 5, "1")
	assert.NotContains(t, out, "Reservation successfully made.")
}

func TestPromptK(t *testing.T) {
	var out strings.Builder
	c := New(strings.NewReader("-3 ten 7"), &out, WithColor(false))

	k, err := c.PromptK()
	require.NoError(t, err)
	assert.Equal(t, 7, k)
	assert.Equal(t, 2, strings.Count(out.String(), "k must be a non-negative whole number of minutes."))

	_, err = New(strings.NewReader(""), &out).PromptK()
	assert.Error(t, err)
}
