package timer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/countdown"
	googlecalendar "github.com/momentumhq/momentum-lambda/internal/google_calendar"
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

var (
	ErrTimerNotFound       = errors.New("timer not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidID           = errors.New("invalid id format")
	ErrValidation          = errors.New("validation failed")
	ErrTimerAlreadyRunning = errors.New("another timer is already running")
	ErrTimerCompleted      = errors.New("timer is already completed")
)

type TimerService interface {
	CreateTimer(ctx context.Context, dto CreateTimerDTO) (*Timer, error)
	FindAllByUser(ctx context.Context) ([]*Timer, error)
	FindByID(ctx context.Context, id string) (*Timer, error)
	UpdateTimer(ctx context.Context, id string, dto UpdateTimerDTO) (*Timer, error)
	DeleteByID(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string, dto AddCommentDTO) (*Timer, error)
	StartTimer(ctx context.Context, id string) (*Timer, error)
	PauseTimer(ctx context.Context, id string) (*Timer, error)
	CompleteTimer(ctx context.Context, id string) (*Timer, error)
	ConsumeCountdownEvents(ctx context.Context)
}

type timerService struct {
	repo            TimerRepository
	countdowns      *countdown.Manager
	calendarManager googlecalendar.CalendarManager
	clk             clock.Clock
}

func NewService(repo TimerRepository, countdowns *countdown.Manager, calendarManager googlecalendar.CalendarManager, clk clock.Clock) TimerService {
	return &timerService{
		repo:            repo,
		countdowns:      countdowns,
		calendarManager: calendarManager,
		clk:             clk,
	}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

// loadOwned fetches a timer and hides rows owned by other users behind
// ErrTimerNotFound, so existence never leaks across accounts.
func (s *timerService) loadOwned(ctx context.Context, log logrus.FieldLogger, id string) (*Timer, error) {
	timerID, err := parseUUID(log, id, "timer")
	if err != nil {
		return nil, err
	}
	userID, err := getUserIDFromContext(ctx, log, "access timer")
	if err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(timerID)
	if err != nil {
		log.WithError(err).Error("Failed to load timer")
		return nil, err
	}
	if t == nil || t.UserID != userID {
		return nil, ErrTimerNotFound
	}
	return t, nil
}

func validateCreate(dto CreateTimerDTO) error {
	if dto.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if dto.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	return nil
}

func (s *timerService) CreateTimer(ctx context.Context, dto CreateTimerDTO) (*Timer, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create timer")
	if err != nil {
		return nil, err
	}

	if err := validateCreate(dto); err != nil {
		return nil, err
	}

	status := StatusActive
	if dto.StartPaused {
		status = StatusPaused
	}

	if status == StatusActive {
		if err := s.ensureNoActiveTimer(log, userID, uuid.Nil); err != nil {
			return nil, err
		}
	}

	t := &Timer{
		ID:            uuid.New(),
		Title:         dto.Title,
		Duration:      dto.Duration,
		RemainingTime: dto.Duration,
		Status:        status,
		Tags:          dto.Tags,
		DueAt:         dto.DueAt,
		UserID:        userID,
	}

	if err := s.repo.Create(t); err != nil {
		log.WithError(err).Error("Failed to create timer")
		return nil, err
	}

	if status == StatusActive {
		s.countdowns.Start(t.ID, t.RemainingTime)
	}

	s.syncCalendar(ctx, t)

	log.WithField("timer_id", t.ID).Info("Timer created successfully")
	return t, nil
}

func (s *timerService) FindAllByUser(ctx context.Context) ([]*Timer, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list timers")
	if err != nil {
		return nil, err
	}

	timers, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list timers")
		return nil, err
	}
	return timers, nil
}

func (s *timerService) FindByID(ctx context.Context, id string) (*Timer, error) {
	log := config.WithContext(ctx)
	return s.loadOwned(ctx, log, id)
}

func (s *timerService) UpdateTimer(ctx context.Context, id string, dto UpdateTimerDTO) (*Timer, error) {
	log := config.WithContext(ctx)

	t, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		if *dto.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		t.Title = *dto.Title
	}
	if dto.Tags != nil {
		t.Tags = *dto.Tags
	}
	if dto.DueAt != nil {
		t.DueAt = dto.DueAt
	}

	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to update timer")
		return nil, err
	}

	s.syncCalendar(ctx, t)

	return t, nil
}

func (s *timerService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	t, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return err
	}

	s.countdowns.Stop(t.ID)

	if t.GoogleCalendarEventID != "" {
		if err := s.calendarManager.RemoveTimer(ctx, t.UserID, t.GoogleCalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to remove calendar event for timer %s", t.ID)
		}
	}

	if err := s.repo.Delete(t.ID); err != nil {
		log.WithError(err).Error("Failed to delete timer")
		return err
	}

	log.WithField("timer_id", t.ID).Info("Timer deleted")
	return nil
}

func (s *timerService) AddComment(ctx context.Context, id string, dto AddCommentDTO) (*Timer, error) {
	log := config.WithContext(ctx)

	if dto.Content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}

	t, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountComments(t.ID)
	if err != nil {
		log.WithError(err).Error("Failed to count timer comments")
		return nil, err
	}

	comment := &TimerComment{
		TimerID:    t.ID,
		Content:    dto.Content,
		OrderIndex: int(count),
	}
	if err := s.repo.AddComment(comment); err != nil {
		log.WithError(err).Error("Failed to add timer comment")
		return nil, err
	}

	return s.loadOwned(ctx, log, id)
}

func (s *timerService) ensureNoActiveTimer(log logrus.FieldLogger, userID, exceptID uuid.UUID) error {
	active, err := s.repo.FindActiveByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to check for active timer")
		return err
	}
	if active != nil && active.ID != exceptID {
		return ErrTimerAlreadyRunning
	}
	return nil
}

func (s *timerService) StartTimer(ctx context.Context, id string) (*Timer, error) {
	log := config.WithContext(ctx)

	t, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if t.Status == StatusCompleted {
		return nil, ErrTimerCompleted
	}
	if err := s.ensureNoActiveTimer(log, t.UserID, t.ID); err != nil {
		return nil, err
	}

	t.Status = StatusActive
	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to start timer")
		return nil, err
	}

	s.countdowns.Start(t.ID, t.RemainingTime)

	log.WithField("timer_id", t.ID).Info("Timer started")
	return t, nil
}

func (s *timerService) PauseTimer(ctx context.Context, id string) (*Timer, error) {
	log := config.WithContext(ctx)

	t, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if t.Status == StatusCompleted {
		return nil, ErrTimerCompleted
	}

	s.countdowns.Stop(t.ID)

	t.Status = StatusPaused
	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to pause timer")
		return nil, err
	}

	log.WithField("timer_id", t.ID).Info("Timer paused")
	return t, nil
}

func (s *timerService) CompleteTimer(ctx context.Context, id string) (*Timer, error) {
	log := config.WithContext(ctx)

	t, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	return s.complete(ctx, log, t)
}

// complete applies the terminal transition. Completing an already-completed
// timer is a no-op so the countdown consumer and explicit user actions
// cannot double-apply it.
func (s *timerService) complete(ctx context.Context, log logrus.FieldLogger, t *Timer) (*Timer, error) {
	if t.Status == StatusCompleted {
		return t, nil
	}

	s.countdowns.Stop(t.ID)

	now := s.clk.Now()
	t.Status = StatusCompleted
	t.RemainingTime = 0
	t.CompletedAt = &now

	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to complete timer")
		return nil, err
	}

	log.WithField("timer_id", t.ID).Info("Timer completed")
	return t, nil
}

// ConsumeCountdownEvents drains the countdown manager's event stream,
// persisting tick updates optimistically and completions authoritatively.
// Runs until ctx is cancelled; intended as a single background goroutine.
func (s *timerService) ConsumeCountdownEvents(ctx context.Context) {
	log := config.WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.countdowns.Events():
			if ev.Completed {
				s.completeFromCountdown(ctx, ev.TimerID)
				continue
			}
			if err := s.repo.UpdateRemainingTime(ev.TimerID, ev.Remaining); err != nil {
				log.WithError(err).Warnf("Failed to persist remaining time for timer %s", ev.TimerID)
			}
		}
	}
}

func (s *timerService) completeFromCountdown(ctx context.Context, timerID uuid.UUID) {
	log := config.WithContext(ctx)

	t, err := s.repo.FindByID(timerID)
	if err != nil {
		log.WithError(err).Errorf("Failed to load timer %s after countdown completion", timerID)
		return
	}
	if t == nil {
		return
	}

	if _, err := s.complete(ctx, log, t); err != nil {
		log.WithError(err).Errorf("Failed to persist countdown completion for timer %s", timerID)
	}
}

func (s *timerService) syncCalendar(ctx context.Context, t *Timer) {
	log := config.WithContext(ctx)

	var eventID *string
	if t.GoogleCalendarEventID != "" {
		eventID = &t.GoogleCalendarEventID
	}

	calTimer := &googlecalendar.CalendarTimer{
		ID:                    t.ID,
		Title:                 t.Title,
		Duration:              t.Duration,
		DueAt:                 util.ToTimePtr(t.DueAt),
		GoogleCalendarEventID: eventID,
	}

	newEventID, err := s.calendarManager.SyncTimer(ctx, t.UserID, calTimer)
	if err != nil {
		log.WithError(err).Warnf("Failed to sync timer %s to Google Calendar", t.ID)
		return
	}

	if newEventID != t.GoogleCalendarEventID {
		t.GoogleCalendarEventID = newEventID
		if err := s.repo.Update(t); err != nil {
			log.WithError(err).Error("Failed to update timer with Google Calendar Event ID")
		}
	}
}
