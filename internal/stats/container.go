package stats

import (
	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/timer"
)

type StatsContainer struct {
	Handler *Handler
	Service StatsService
}

func NewStatsContainer(timerRepo timer.TimerRepository, clk clock.Clock) *StatsContainer {
	service := NewService(timerRepo, clk)
	handler := NewHandler(service)

	return &StatsContainer{
		Handler: handler,
		Service: service,
	}
}
