package routine

import "time"

// StreakState is the next persisted streak value after a completion action.
type StreakState struct {
	Streak          int
	LastCompletedAt time.Time
}

const dayLayout = "2006-01-02"

// NextStreakState evaluates the streak transition for a "mark complete
// today" action. Returns ok=false when the routine was already completed
// on now's calendar date, in which case the state is unchanged and the
// caller must not write anything.
//
// Transition rule: first-ever completion or a completion whose previous
// one was exactly yesterday continues the streak; a gap of two or more
// calendar days resets it to 1. Days are compared by calendar date in loc,
// not by elapsed hours.
func NextStreakState(r *Routine, now time.Time, loc *time.Location) (StreakState, bool) {
	if r.LastCompletedAt != nil && SameDay(*r.LastCompletedAt, now, loc) {
		return StreakState{Streak: r.Streak, LastCompletedAt: *r.LastCompletedAt}, false
	}

	streak := 1
	if r.LastCompletedAt == nil || SameDay(*r.LastCompletedAt, now.AddDate(0, 0, -1), loc) {
		streak = r.Streak + 1
	}

	return StreakState{Streak: streak, LastCompletedAt: now}, true
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// MissedDay reports whether at least one full calendar day passed with no
// completion: the last completion date is before yesterday.
func MissedDay(lastCompletedAt *time.Time, now time.Time, loc *time.Location) bool {
	if lastCompletedAt == nil {
		return false
	}
	yesterday := now.AddDate(0, 0, -1)
	return !SameDay(*lastCompletedAt, now, loc) &&
		!SameDay(*lastCompletedAt, yesterday, loc) &&
		lastCompletedAt.In(loc).Before(yesterday.In(loc))
}

// DayProgress is one entry of the read-time day window.
type DayProgress struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// BuildDayWindow projects completion rows onto a ±15 day window around
// now's calendar date (31 entries, oldest first).
func BuildDayWindow(completions []RoutineCompletion, now time.Time, loc *time.Location) []DayProgress {
	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		done[c.Day] = true
	}

	window := make([]DayProgress, 0, 31)
	for offset := -15; offset <= 15; offset++ {
		day := DayKey(now.AddDate(0, 0, offset), loc)
		window = append(window, DayProgress{Date: day, Completed: done[day]})
	}
	return window
}
