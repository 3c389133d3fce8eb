package goal

import (
	"gorm.io/gorm"

	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/timer"
)

type GoalContainer struct {
	Handler *Handler
	Service GoalService
}

func NewGoalContainer(db *gorm.DB, timerRepo timer.TimerRepository, clk clock.Clock) *GoalContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, timerRepo, clk)
	handler := NewHandler(service)

	return &GoalContainer{
		Handler: handler,
		Service: service,
	}
}
