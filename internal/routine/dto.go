package routine

type CreateRoutineDTO struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        RoutineType `json:"type"`
	DailyTarget int         `json:"daily_target"`
}

type UpdateRoutineDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DailyTarget *int    `json:"daily_target"`
}

// RoutineResponse embeds the 31-day completion window, recomputed per read.
type RoutineResponse struct {
	Routine  *Routine      `json:"routine"`
	Progress []DayProgress `json:"progress"`
}

// CompletionResult is the outcome of a mark-complete-today action. A
// same-day repeat is a soft no-op, flagged rather than errored.
type CompletionResult struct {
	Routine          *Routine `json:"routine"`
	AlreadyCompleted bool     `json:"already_completed"`
}
