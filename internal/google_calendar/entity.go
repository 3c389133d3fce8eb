package googlecalendar

import (
	"time"

	"github.com/google/uuid"
)

// CalendarTimer is the slice of a timer the calendar sync cares about.
// Duration is in seconds and derives the event start when only a due date
// is known.
type CalendarTimer struct {
	ID                    uuid.UUID
	Title                 string
	Duration              int
	DueAt                 *time.Time
	GoogleCalendarEventID *string
}
