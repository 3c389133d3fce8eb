package stats

import "github.com/momentumhq/momentum-lambda/internal/timer"

type TagStat struct {
	Tag          string  `json:"tag"`
	TimerCount   int     `json:"timer_count"`
	TotalSeconds int     `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
}

type TimerStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Paused    int `json:"paused"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

type DashboardResponse struct {
	Stats           TimerStats     `json:"stats"`
	TotalFocusHours float64        `json:"total_focus_hours"`
	LastTimers      []*timer.Timer `json:"last_timers"`
}
