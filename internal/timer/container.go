package timer

import (
	"gorm.io/gorm"

	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/countdown"
	googlecalendar "github.com/momentumhq/momentum-lambda/internal/google_calendar"
)

type TimerContainer struct {
	Handler *Handler
	Service TimerService
	Repo    TimerRepository
}

func NewTimerContainer(
	db *gorm.DB,
	countdowns *countdown.Manager,
	calendarManager googlecalendar.CalendarManager,
	clk clock.Clock,
) *TimerContainer {
	repo := NewRepository(db)
	service := NewService(repo, countdowns, calendarManager, clk)
	handler := NewHandler(service)

	return &TimerContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
