package goal_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/momentumhq/momentum-lambda/internal/goal"
	"github.com/momentumhq/momentum-lambda/internal/timer"
)

func completedTimer(tags []string, durationSeconds int) *timer.Timer {
	now := time.Now()
	return &timer.Timer{
		ID:          uuid.New(),
		Title:       "session",
		Duration:    durationSeconds,
		Status:      timer.StatusCompleted,
		Tags:        tags,
		CompletedAt: &now,
	}
}

func timeGoal(tags []string, targetHours float64) *goal.Goal {
	return &goal.Goal{
		ID:          uuid.New(),
		Title:       "deep work",
		Type:        goal.TypeTime,
		TargetHours: targetHours,
		Tags:        tags,
		IsActive:    true,
	}
}

func TestComputeProgressTagIntersection(t *testing.T) {
	g := timeGoal([]string{"work", "deep"}, 10)
	timers := []*timer.Timer{
		completedTimer([]string{"work"}, 3600),
		completedTimer([]string{"personal"}, 7200),
	}

	p := goal.ComputeProgress(g, timers)

	assert.Equal(t, 1.0, p.CurrentHours, "only the work-tagged timer counts")
	assert.Equal(t, 10.0, p.PercentageComplete)
	assert.Equal(t, 9.0, p.RemainingHours)
}

func TestComputeProgressIgnoresUnfinishedTimers(t *testing.T) {
	g := timeGoal([]string{"work"}, 1)

	active := completedTimer([]string{"work"}, 3600)
	active.Status = timer.StatusActive
	active.CompletedAt = nil

	noTimestamp := completedTimer([]string{"work"}, 3600)
	noTimestamp.CompletedAt = nil

	p := goal.ComputeProgress(g, []*timer.Timer{active, noTimestamp})

	assert.Equal(t, 0.0, p.CurrentHours)
	assert.Equal(t, 0.0, p.PercentageComplete)
}

func TestComputeProgressCapsAtHundred(t *testing.T) {
	g := timeGoal([]string{"work"}, 1)
	timers := []*timer.Timer{completedTimer([]string{"work"}, 3*3600)}

	p := goal.ComputeProgress(g, timers)

	assert.Equal(t, 3.0, p.CurrentHours)
	assert.Equal(t, 100.0, p.PercentageComplete)
	assert.Equal(t, 0.0, p.RemainingHours)
}

func TestComputeProgressZeroTargetSafety(t *testing.T) {
	g := timeGoal([]string{"work"}, 0)

	p := goal.ComputeProgress(g, nil)

	assert.Equal(t, 100.0, p.PercentageComplete)
	assert.Equal(t, 0.0, p.RemainingHours)
}

func TestComputeProgressCompletionLatch(t *testing.T) {
	g := timeGoal([]string{"work"}, 1)
	timers := []*timer.Timer{completedTimer([]string{"work"}, 3600)}

	p := goal.ComputeProgress(g, timers)
	assert.Equal(t, 100.0, p.PercentageComplete)
	assert.True(t, goal.ShouldAutoComplete(g, p))

	completed := goal.ApplyCompletion(*g, time.Now())
	assert.NotNil(t, completed.CompletedAt)
	assert.False(t, completed.IsActive)
	assert.Nil(t, g.CompletedAt, "ApplyCompletion must not mutate its input")

	// Timers edited away after completion: the latch keeps reporting 100.
	p2 := goal.ComputeProgress(&completed, nil)
	assert.Equal(t, 100.0, p2.PercentageComplete)
	assert.False(t, goal.ShouldAutoComplete(&completed, p2), "latch is one-shot")
}

func TestComputeProgressRoundsToTwoDecimals(t *testing.T) {
	g := timeGoal([]string{"work"}, 10)
	timers := []*timer.Timer{completedTimer([]string{"work"}, 4000)} // 1.111... hours

	p := goal.ComputeProgress(g, timers)

	assert.Equal(t, 1.11, p.CurrentHours)
	assert.Equal(t, 8.89, p.RemainingHours)
}

func TestComputeProgressCountGoal(t *testing.T) {
	g := &goal.Goal{
		ID:           uuid.New(),
		Title:        "read books",
		Type:         goal.TypeCount,
		TargetCount:  4,
		CurrentCount: 3,
		IsActive:     true,
	}

	p := goal.ComputeProgress(g, nil)
	assert.Equal(t, 3, p.CurrentCount)
	assert.Equal(t, 75.0, p.PercentageComplete)
	assert.False(t, goal.ShouldAutoComplete(g, p))

	g.CurrentCount = 4
	p = goal.ComputeProgress(g, nil)
	assert.Equal(t, 100.0, p.PercentageComplete)
	assert.True(t, goal.ShouldAutoComplete(g, p))
}
