package routine

import (
	"context"
	"fmt"
	"time"

	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/notification"
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

// MissedChecker scans for routines whose last completion is more than one
// calendar day old and raises a notification. Observational only: it never
// touches streak values, the reset happens on the next completion action.
type MissedChecker struct {
	repo RoutineRepository
	sink notification.Sink
	clk  clock.Clock
}

func NewMissedChecker(repo RoutineRepository, sink notification.Sink, clk clock.Clock) *MissedChecker {
	return &MissedChecker{repo: repo, sink: sink, clk: clk}
}

// Run checks once per interval until ctx is cancelled.
func (c *MissedChecker) Run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.CheckOnce(ctx)
		}
	}
}

func (c *MissedChecker) CheckOnce(ctx context.Context) {
	log := config.WithContext(ctx)

	now := c.clk.Now()
	loc := util.AppLocation()

	// Anything completed before the start of yesterday has a missed day.
	y, m, d := now.In(loc).AddDate(0, 0, -1).Date()
	startOfYesterday := time.Date(y, m, d, 0, 0, 0, 0, loc)

	routines, err := c.repo.FindStale(startOfYesterday)
	if err != nil {
		log.WithError(err).Error("Failed to scan for missed routines")
		return
	}

	for _, r := range routines {
		if !MissedDay(r.LastCompletedAt, now, loc) {
			continue
		}
		c.sink.Notify(ctx, r.UserID, fmt.Sprintf("You missed a day of %q - complete it today to start a new streak", r.Title))
	}
}
