package container

import (
	"context"
	"log"
	"os"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/countdown"
	"github.com/momentumhq/momentum-lambda/internal/goal"
	googlecalendar "github.com/momentumhq/momentum-lambda/internal/google_calendar"
	"github.com/momentumhq/momentum-lambda/internal/journal"
	"github.com/momentumhq/momentum-lambda/internal/notification"
	"github.com/momentumhq/momentum-lambda/internal/routine"
	"github.com/momentumhq/momentum-lambda/internal/stats"
	"github.com/momentumhq/momentum-lambda/internal/timer"
	"github.com/momentumhq/momentum-lambda/internal/user"
)

type Container struct {
	UserContainer           *user.UserContainer
	TimerContainer          *timer.TimerContainer
	GoalContainer           *goal.GoalContainer
	RoutineContainer        *routine.RoutineContainer
	JournalContainer        *journal.JournalContainer
	StatsContainer          *stats.StatsContainer
	GoogleCalendarContainer *googlecalendar.GoogleCalendarContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.Migrate(
		&user.User{},
		&timer.Timer{},
		&timer.TimerComment{},
		&goal.Goal{},
		&routine.Routine{},
		&routine.RoutineCompletion{},
		&journal.JournalEntry{},
	); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	clk := clock.System()
	countdowns := countdown.NewManager()
	sink := notification.NewLogSink()

	userContainer := user.NewUserContainer(config.DB)
	calendarContainer := googlecalendar.NewGoogleCalendarContainer(userContainer.Repo)
	timerContainer := timer.NewTimerContainer(
		config.DB,
		countdowns,
		calendarContainer.CalendarManager,
		clk,
	)
	goalContainer := goal.NewGoalContainer(config.DB, timerContainer.Repo, clk)
	routineContainer := routine.NewRoutineContainer(config.DB, sink, clk)
	journalContainer := journal.NewJournalContainer(config.DB)
	statsContainer := stats.NewStatsContainer(timerContainer.Repo, clk)

	go timerContainer.Service.ConsumeCountdownEvents(context.Background())

	return &Container{
		UserContainer:           userContainer,
		TimerContainer:          timerContainer,
		GoalContainer:           goalContainer,
		RoutineContainer:        routineContainer,
		JournalContainer:        journalContainer,
		StatsContainer:          statsContainer,
		GoogleCalendarContainer: calendarContainer,
	}
}
