package routine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum-lambda/internal/routine"
)

var loc = time.UTC

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, loc)
}

func TestNextStreakStateContinuation(t *testing.T) {
	yesterday := at(2025, time.March, 9, 22)
	r := &routine.Routine{Streak: 4, LastCompletedAt: &yesterday}

	now := at(2025, time.March, 10, 8)
	state, ok := routine.NextStreakState(r, now, loc)

	require.True(t, ok)
	assert.Equal(t, 5, state.Streak)
	assert.Equal(t, now, state.LastCompletedAt)
}

func TestNextStreakStateReset(t *testing.T) {
	threeDaysAgo := at(2025, time.March, 7, 12)
	r := &routine.Routine{Streak: 10, LastCompletedAt: &threeDaysAgo}

	state, ok := routine.NextStreakState(r, at(2025, time.March, 10, 12), loc)

	require.True(t, ok)
	assert.Equal(t, 1, state.Streak, "a missed day hard-resets the streak")
}

func TestNextStreakStateFirstCompletion(t *testing.T) {
	r := &routine.Routine{Streak: 0, LastCompletedAt: nil}

	state, ok := routine.NextStreakState(r, at(2025, time.March, 10, 12), loc)

	require.True(t, ok)
	assert.Equal(t, 1, state.Streak)
}

func TestNextStreakStateSameDayNoOp(t *testing.T) {
	thisMorning := at(2025, time.March, 10, 7)
	r := &routine.Routine{Streak: 5, LastCompletedAt: &thisMorning}

	state, ok := routine.NextStreakState(r, at(2025, time.March, 10, 23), loc)

	assert.False(t, ok, "second completion on the same calendar date is rejected")
	assert.Equal(t, 5, state.Streak)
	assert.Equal(t, thisMorning, state.LastCompletedAt)
}

func TestNextStreakStateCalendarDateNotElapsedHours(t *testing.T) {
	// 23:00 yesterday to 07:00 today is only 8 hours apart but crosses a
	// calendar boundary, so it continues the streak.
	lateYesterday := at(2025, time.March, 9, 23)
	r := &routine.Routine{Streak: 2, LastCompletedAt: &lateYesterday}

	state, ok := routine.NextStreakState(r, at(2025, time.March, 10, 7), loc)

	require.True(t, ok)
	assert.Equal(t, 3, state.Streak)
}

func TestNextStreakStateTwoDayGapResets(t *testing.T) {
	twoDaysAgo := at(2025, time.March, 8, 12)
	r := &routine.Routine{Streak: 7, LastCompletedAt: &twoDaysAgo}

	state, ok := routine.NextStreakState(r, at(2025, time.March, 10, 12), loc)

	require.True(t, ok)
	assert.Equal(t, 1, state.Streak)
}

func TestMissedDay(t *testing.T) {
	now := at(2025, time.March, 10, 12)

	t.Run("NeverCompleted", func(t *testing.T) {
		assert.False(t, routine.MissedDay(nil, now, loc))
	})

	t.Run("CompletedToday", func(t *testing.T) {
		today := at(2025, time.March, 10, 6)
		assert.False(t, routine.MissedDay(&today, now, loc))
	})

	t.Run("CompletedYesterday", func(t *testing.T) {
		yesterday := at(2025, time.March, 9, 6)
		assert.False(t, routine.MissedDay(&yesterday, now, loc))
	})

	t.Run("CompletedTwoDaysAgo", func(t *testing.T) {
		stale := at(2025, time.March, 8, 6)
		assert.True(t, routine.MissedDay(&stale, now, loc))
	})
}

func TestBuildDayWindow(t *testing.T) {
	now := at(2025, time.March, 10, 12)
	completions := []routine.RoutineCompletion{
		{Day: "2025-03-08"},
		{Day: "2025-03-10"},
	}

	window := routine.BuildDayWindow(completions, now, loc)

	require.Len(t, window, 31)
	assert.Equal(t, "2025-02-23", window[0].Date)
	assert.Equal(t, "2025-03-25", window[30].Date)

	byDate := map[string]bool{}
	for _, d := range window {
		byDate[d.Date] = d.Completed
	}
	assert.True(t, byDate["2025-03-08"])
	assert.True(t, byDate["2025-03-10"])
	assert.False(t, byDate["2025-03-09"])
}
