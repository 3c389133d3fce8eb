package stats

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/timer"
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

var ErrUnauthorized = errors.New("unauthorized")

const lastTimersLimit = 5

type StatsService interface {
	TagStats(ctx context.Context) ([]TagStat, error)
	Dashboard(ctx context.Context) (*DashboardResponse, error)
}

type statsService struct {
	timerRepo timer.TimerRepository
	clk       clock.Clock
}

func NewService(timerRepo timer.TimerRepository, clk clock.Clock) StatsService {
	return &statsService{timerRepo: timerRepo, clk: clk}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warn("Attempt to read stats without authentication")
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *statsService) TagStats(ctx context.Context) ([]TagStat, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log)
	if err != nil {
		return nil, err
	}

	timers, err := s.timerRepo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load timers for tag stats")
		return nil, err
	}

	return ComputeTagStats(timers), nil
}

// ComputeTagStats aggregates completed focus time per tag.
func ComputeTagStats(timers []*timer.Timer) []TagStat {
	byTag := map[string]*TagStat{}
	for _, t := range timers {
		if t.Status != timer.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		for _, tag := range t.Tags {
			stat, ok := byTag[tag]
			if !ok {
				stat = &TagStat{Tag: tag}
				byTag[tag] = stat
			}
			stat.TimerCount++
			stat.TotalSeconds += t.Duration
		}
	}

	stats := make([]TagStat, 0, len(byTag))
	for _, stat := range byTag {
		stat.TotalHours = round2(float64(stat.TotalSeconds) / 3600)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalSeconds != stats[j].TotalSeconds {
			return stats[i].TotalSeconds > stats[j].TotalSeconds
		}
		return stats[i].Tag < stats[j].Tag
	})
	return stats
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log)
	if err != nil {
		return nil, err
	}

	timers, err := s.timerRepo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load timers for dashboard")
		return nil, err
	}

	return ComputeDashboard(timers, s.clk.Now()), nil
}

func ComputeDashboard(timers []*timer.Timer, now time.Time) *DashboardResponse {
	resp := &DashboardResponse{}
	var focusSeconds int

	for _, t := range timers {
		resp.Stats.Total++
		switch t.Status {
		case timer.StatusActive:
			resp.Stats.Active++
		case timer.StatusPaused:
			resp.Stats.Paused++
		case timer.StatusCompleted:
			resp.Stats.Completed++
			focusSeconds += t.Duration
		}
		if due := util.ToTimePtr(t.DueAt); due != nil && t.Status != timer.StatusCompleted && due.Before(now) {
			resp.Stats.Overdue++
		}
	}

	resp.TotalFocusHours = round2(float64(focusSeconds) / 3600)

	// FindAllByUserID returns newest first.
	limit := lastTimersLimit
	if len(timers) < limit {
		limit = len(timers)
	}
	resp.LastTimers = timers[:limit]

	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
