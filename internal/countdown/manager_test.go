package countdown_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum-lambda/internal/countdown"
)

func collectUntilComplete(t *testing.T, m *countdown.Manager, timeout time.Duration) []countdown.Event {
	t.Helper()
	var events []countdown.Event
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-m.Events():
			events = append(events, ev)
			if ev.Completed {
				return events
			}
		case <-deadline:
			t.Fatalf("no completion event within %v (got %d events)", timeout, len(events))
		}
	}
}

func TestCountdownRunsToCompletion(t *testing.T) {
	m := countdown.NewManagerWithInterval(time.Millisecond)
	id := uuid.New()

	m.Start(id, 3)
	events := collectUntilComplete(t, m, time.Second)

	require.Len(t, events, 3)
	assert.Equal(t, countdown.Event{TimerID: id, Remaining: 2}, events[0])
	assert.Equal(t, countdown.Event{TimerID: id, Remaining: 1}, events[1])
	assert.Equal(t, countdown.Event{TimerID: id, Remaining: 0, Completed: true}, events[2])
	assert.Eventually(t, func() bool { return !m.Running(id) }, time.Second, time.Millisecond)
}

func TestZeroRemainingCompletesImmediately(t *testing.T) {
	m := countdown.NewManagerWithInterval(time.Hour)
	id := uuid.New()

	m.Start(id, 0)
	events := collectUntilComplete(t, m, time.Second)

	require.Len(t, events, 1)
	assert.True(t, events[0].Completed)
	assert.Equal(t, 0, events[0].Remaining)
}

func TestNegativeRemainingNeverGoesNegative(t *testing.T) {
	m := countdown.NewManagerWithInterval(time.Hour)
	id := uuid.New()

	m.Start(id, -5)
	events := collectUntilComplete(t, m, time.Second)

	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Remaining)
}

func TestStopIsIdempotent(t *testing.T) {
	m := countdown.NewManagerWithInterval(time.Millisecond)
	id := uuid.New()

	m.Start(id, 1000)
	m.Stop(id)
	assert.NotPanics(t, func() { m.Stop(id) })
	assert.False(t, m.Running(id))

	// A stopped countdown must not emit a completion afterwards.
	select {
	case ev := <-m.Events():
		assert.False(t, ev.Completed)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRestartReplacesPriorCountdown(t *testing.T) {
	m := countdown.NewManagerWithInterval(2 * time.Millisecond)
	id := uuid.New()

	m.Start(id, 1000)
	m.Start(id, 3)

	events := collectUntilComplete(t, m, time.Second)

	// Every event after the restart belongs to the short countdown; a
	// surviving first stream would show remaining values near 1000.
	for _, ev := range events {
		assert.Equal(t, id, ev.TimerID)
		assert.LessOrEqual(t, ev.Remaining, 3)
	}
	assert.True(t, events[len(events)-1].Completed)
}

func TestIndependentTimersTickSeparately(t *testing.T) {
	m := countdown.NewManagerWithInterval(time.Millisecond)
	a, b := uuid.New(), uuid.New()

	m.Start(a, 2)
	m.Start(b, 2)

	completed := map[uuid.UUID]bool{}
	deadline := time.After(time.Second)
	for len(completed) < 2 {
		select {
		case ev := <-m.Events():
			if ev.Completed {
				completed[ev.TimerID] = true
			}
		case <-deadline:
			t.Fatal("both countdowns should complete")
		}
	}
	assert.True(t, completed[a])
	assert.True(t, completed[b])
}
