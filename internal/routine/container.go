package routine

import (
	"gorm.io/gorm"

	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/notification"
)

type RoutineContainer struct {
	Handler       *Handler
	Service       RoutineService
	MissedChecker *MissedChecker
}

func NewRoutineContainer(db *gorm.DB, sink notification.Sink, clk clock.Clock) *RoutineContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, clk)
	handler := NewHandler(service)

	return &RoutineContainer{
		Handler:       handler,
		Service:       service,
		MissedChecker: NewMissedChecker(repo, sink, clk),
	}
}
