package timer

import (
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

type CreateTimerDTO struct {
	Title       string              `json:"title"`
	Duration    int                 `json:"duration"`
	Tags        []string            `json:"tags"`
	DueAt       *util.LocalDateTime `json:"due_at"`
	StartPaused bool                `json:"start_paused"`
}

type UpdateTimerDTO struct {
	Title *string             `json:"title"`
	Tags  *[]string           `json:"tags"`
	DueAt *util.LocalDateTime `json:"due_at"`
}

type AddCommentDTO struct {
	Content string `json:"content"`
}
