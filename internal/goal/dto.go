package goal

type CreateGoalDTO struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        GoalType     `json:"type"`
	TargetHours float64      `json:"target_hours"`
	TargetCount int          `json:"target_count"`
	Priority    GoalPriority `json:"priority"`
	Tags        []string     `json:"tags"`
}

type UpdateGoalDTO struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Priority    *GoalPriority `json:"priority"`
	Tags        *[]string     `json:"tags"`
	IsActive    *bool         `json:"is_active"`
}

// GoalWithProgress pairs a goal with its derived progress snapshot.
type GoalWithProgress struct {
	Goal     *Goal    `json:"goal"`
	Progress Progress `json:"progress"`
}
