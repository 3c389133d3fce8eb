package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/momentumhq/momentum-lambda/internal/timer"
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

func completedTimer(duration int, tags ...string) *timer.Timer {
	done := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &timer.Timer{
		Title:       "done",
		Duration:    duration,
		Status:      timer.StatusCompleted,
		Tags:        datatypes.JSONSlice[string](tags),
		CompletedAt: &done,
	}
}

func TestComputeTagStats_CompletedOnly(t *testing.T) {
	timers := []*timer.Timer{
		completedTimer(3600, "work", "deep"),
		completedTimer(1800, "work"),
		{
			Title:    "still running",
			Duration: 7200,
			Status:   timer.StatusActive,
			Tags:     datatypes.JSONSlice[string]{"work"},
		},
	}

	stats := ComputeTagStats(timers)
	require.Len(t, stats, 2)

	assert.Equal(t, "work", stats[0].Tag)
	assert.Equal(t, 2, stats[0].TimerCount)
	assert.Equal(t, 5400, stats[0].TotalSeconds)
	assert.Equal(t, 1.5, stats[0].TotalHours)

	assert.Equal(t, "deep", stats[1].Tag)
	assert.Equal(t, 1, stats[1].TimerCount)
	assert.Equal(t, 1.0, stats[1].TotalHours)
}

func TestComputeTagStats_SortsBySecondsThenTag(t *testing.T) {
	timers := []*timer.Timer{
		completedTimer(600, "b"),
		completedTimer(600, "a"),
		completedTimer(1200, "c"),
	}

	stats := ComputeTagStats(timers)
	require.Len(t, stats, 3)
	assert.Equal(t, "c", stats[0].Tag)
	assert.Equal(t, "a", stats[1].Tag)
	assert.Equal(t, "b", stats[2].Tag)
}

func TestComputeDashboard(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := util.FromTimePtr(ptrTime(now.Add(-time.Hour)))
	future := util.FromTimePtr(ptrTime(now.Add(time.Hour)))

	timers := []*timer.Timer{
		{Title: "running", Duration: 1500, Status: timer.StatusActive, DueAt: past},
		{Title: "waiting", Duration: 1500, Status: timer.StatusPaused, DueAt: future},
		completedTimer(3600, "work"),
	}
	timers[2].DueAt = past

	resp := ComputeDashboard(timers, now)

	assert.Equal(t, 3, resp.Stats.Total)
	assert.Equal(t, 1, resp.Stats.Active)
	assert.Equal(t, 1, resp.Stats.Paused)
	assert.Equal(t, 1, resp.Stats.Completed)
	// Completed timers never count as overdue, even past their due date.
	assert.Equal(t, 1, resp.Stats.Overdue)
	assert.Equal(t, 1.0, resp.TotalFocusHours)
	require.Len(t, resp.LastTimers, 3)
}

func TestComputeDashboard_LimitsLastTimers(t *testing.T) {
	var timers []*timer.Timer
	for i := 0; i < 8; i++ {
		timers = append(timers, &timer.Timer{Title: "t", Duration: 60, Status: timer.StatusPaused})
	}

	resp := ComputeDashboard(timers, time.Now())
	assert.Len(t, resp.LastTimers, 5)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
