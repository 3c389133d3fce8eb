package goal

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/momentumhq/momentum-lambda/internal/timer"
)

// Progress is derived, never persisted: recomputed from the timer set on
// every read.
type Progress struct {
	GoalID             uuid.UUID `json:"goal_id"`
	CurrentHours       float64   `json:"current_hours"`
	CurrentCount       int       `json:"current_count"`
	PercentageComplete float64   `json:"percentage_complete"`
	RemainingHours     float64   `json:"remaining_hours"`
}

// ComputeProgress aggregates a goal's progress from the owner's complete
// timer set. TIME goals accrue the duration of completed timers sharing at
// least one tag with the goal; COUNT goals read the stored counter. A goal
// with completed_at set always reports 100%, no matter what the timer set
// says now: completion is a one-way latch.
func ComputeProgress(g *Goal, timers []*timer.Timer) Progress {
	p := Progress{GoalID: g.ID, CurrentCount: g.CurrentCount}

	switch g.Type {
	case TypeCount:
		p.PercentageComplete = percentage(float64(g.CurrentCount), float64(g.TargetCount), g.CompletedAt)
	default:
		var totalSeconds int
		for _, t := range timers {
			if t.Status != timer.StatusCompleted || t.CompletedAt == nil {
				continue
			}
			if !t.HasAnyTag(g.Tags) {
				continue
			}
			totalSeconds += t.Duration
		}

		p.CurrentHours = round2(float64(totalSeconds) / 3600)
		p.PercentageComplete = percentage(p.CurrentHours, g.TargetHours, g.CompletedAt)
		p.RemainingHours = math.Max(round2(g.TargetHours-p.CurrentHours), 0)
	}

	return p
}

func percentage(current, target float64, completedAt *time.Time) float64 {
	if completedAt != nil {
		return 100
	}
	if target <= 0 {
		// Zero or unset target: nothing to accrue towards, report done.
		return 100
	}
	return math.Min(round2(current/target*100), 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ShouldAutoComplete reports whether the completion policy fires: full
// progress on a goal whose completion latch is not yet set.
func ShouldAutoComplete(g *Goal, p Progress) bool {
	return p.PercentageComplete >= 100 && g.CompletedAt == nil
}

// ApplyCompletion returns a completed copy of the goal. Value semantics:
// the caller's goal is untouched until the write is confirmed, so a failed
// persist can be retried from a fresh read.
func ApplyCompletion(g Goal, now time.Time) Goal {
	g.CompletedAt = &now
	g.IsActive = false
	return g
}
