package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/clock"
	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/timer"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidID     = errors.New("invalid id format")
	ErrValidation    = errors.New("validation failed")
	ErrGoalCompleted = errors.New("goal is already completed")
	ErrNotCountGoal  = errors.New("goal is not a count goal")
)

type GoalService interface {
	Create(ctx context.Context, dto CreateGoalDTO) (*Goal, error)
	List(ctx context.Context) ([]GoalWithProgress, error)
	Get(ctx context.Context, id string) (*GoalWithProgress, error)
	Update(ctx context.Context, id string, dto UpdateGoalDTO) (*Goal, error)
	Delete(ctx context.Context, id string) error
	Increment(ctx context.Context, id string) (*GoalWithProgress, error)
}

type goalService struct {
	repo      GoalRepository
	timerRepo timer.TimerRepository
	db        *gorm.DB
	clk       clock.Clock
}

func NewService(db *gorm.DB, repo GoalRepository, timerRepo timer.TimerRepository, clk clock.Clock) GoalService {
	return &goalService{
		repo:      repo,
		timerRepo: timerRepo,
		db:        db,
		clk:       clk,
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

func validateCreate(dto CreateGoalDTO) error {
	if dto.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !dto.Type.IsValid() {
		return fmt.Errorf("%w: type must be TIME or COUNT", ErrValidation)
	}
	if dto.Priority != "" && !dto.Priority.IsValid() {
		return fmt.Errorf("%w: priority must be HIGH, MEDIUM or LOW", ErrValidation)
	}
	switch dto.Type {
	case TypeTime:
		if dto.TargetHours <= 0 {
			return fmt.Errorf("%w: target_hours must be positive", ErrValidation)
		}
		if len(dto.Tags) == 0 {
			return fmt.Errorf("%w: at least one tag is required for a time goal", ErrValidation)
		}
	case TypeCount:
		if dto.TargetCount <= 0 {
			return fmt.Errorf("%w: target_count must be positive", ErrValidation)
		}
	}
	return nil
}

func (s *goalService) Create(ctx context.Context, dto CreateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create goal")
	if err != nil {
		return nil, err
	}

	if err := validateCreate(dto); err != nil {
		return nil, err
	}

	priority := dto.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	g := &Goal{
		ID:          uuid.New(),
		Title:       dto.Title,
		Description: dto.Description,
		Type:        dto.Type,
		TargetHours: dto.TargetHours,
		TargetCount: dto.TargetCount,
		Priority:    priority,
		Tags:        dto.Tags,
		IsActive:    true,
		UserID:      userID,
	}

	if err := s.repo.Create(g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created successfully")
	return g, nil
}

func (s *goalService) List(ctx context.Context) ([]GoalWithProgress, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list goals")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}

	// One timer fetch per recomputation pass; the aggregator needs the
	// complete set, partial windows silently undercount.
	timers, err := s.timerRepo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load timers for goal progress")
		return nil, err
	}

	results := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		results = append(results, s.withProgress(ctx, g, timers))
	}
	return results, nil
}

func (s *goalService) Get(ctx context.Context, id string) (*GoalWithProgress, error) {
	log := config.WithContext(ctx)

	g, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	timers, err := s.timerRepo.FindAllByUserID(g.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load timers for goal progress")
		return nil, err
	}

	result := s.withProgress(ctx, g, timers)
	return &result, nil
}

// withProgress computes the derived snapshot and fires the completion
// policy when progress crosses the target.
func (s *goalService) withProgress(ctx context.Context, g *Goal, timers []*timer.Timer) GoalWithProgress {
	log := config.WithContext(ctx)

	progress := ComputeProgress(g, timers)
	if ShouldAutoComplete(g, progress) {
		latched, err := s.latchCompletion(g.ID)
		if err != nil {
			// Leave the goal untouched; the next read retries the latch.
			log.WithError(err).Warnf("Failed to latch completion for goal %s", g.ID)
		} else {
			g = latched
			progress = ComputeProgress(g, timers)
		}
	}

	return GoalWithProgress{Goal: g, Progress: progress}
}

// latchCompletion sets completed_at exactly once under a row lock, so two
// concurrent recomputation passes cannot double-apply it.
func (s *goalService) latchCompletion(id uuid.UUID) (*Goal, error) {
	var g Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&g, "id = ?", id).Error; err != nil {
			return err
		}
		if g.CompletedAt != nil {
			return nil
		}
		g = ApplyCompletion(g, s.clk.Now())
		return tx.Save(&g).Error
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *goalService) loadOwned(ctx context.Context, log logrus.FieldLogger, id string) (*Goal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid goal ID")
		return nil, ErrInvalidID
	}
	userID, err := getUserIDFromContext(ctx, log, "access goal")
	if err != nil {
		return nil, err
	}

	g, err := s.repo.FindByID(goalID)
	if err != nil {
		log.WithError(err).Error("Failed to load goal")
		return nil, err
	}
	if g == nil || g.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return g, nil
}

func (s *goalService) Update(ctx context.Context, id string, dto UpdateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx)

	g, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		if *dto.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		g.Title = *dto.Title
	}
	if dto.Description != nil {
		g.Description = *dto.Description
	}
	if dto.Priority != nil {
		if !dto.Priority.IsValid() {
			return nil, fmt.Errorf("%w: priority must be HIGH, MEDIUM or LOW", ErrValidation)
		}
		g.Priority = *dto.Priority
	}
	if dto.Tags != nil {
		if g.Type == TypeTime && len(*dto.Tags) == 0 {
			return nil, fmt.Errorf("%w: a time goal needs at least one tag", ErrValidation)
		}
		g.Tags = *dto.Tags
	}
	if dto.IsActive != nil && g.CompletedAt == nil {
		g.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to update goal")
		return nil, err
	}

	return g, nil
}

func (s *goalService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	g, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(g.ID); err != nil {
		log.WithError(err).Error("Failed to delete goal")
		return err
	}
	return nil
}

// Increment advances a count goal by one inside a row-locked transaction;
// crossing the target sets the completion latch in the same write.
func (s *goalService) Increment(ctx context.Context, id string) (*GoalWithProgress, error) {
	log := config.WithContext(ctx)

	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	userID, err := getUserIDFromContext(ctx, log, "increment goal")
	if err != nil {
		return nil, err
	}

	var g Goal
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&g, "id = ?", goalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGoalNotFound
			}
			return err
		}
		if g.UserID != userID {
			return ErrGoalNotFound
		}
		if g.Type != TypeCount {
			return ErrNotCountGoal
		}
		if g.CompletedAt != nil {
			return ErrGoalCompleted
		}

		g.CurrentCount++
		if g.CurrentCount >= g.TargetCount {
			g = ApplyCompletion(g, s.clk.Now())
		}
		return tx.Save(&g).Error
	})
	if err != nil {
		if !errors.Is(err, ErrGoalNotFound) && !errors.Is(err, ErrNotCountGoal) && !errors.Is(err, ErrGoalCompleted) {
			log.WithError(err).Error("Failed to increment goal")
		}
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal incremented")
	return &GoalWithProgress{Goal: &g, Progress: ComputeProgress(&g, nil)}, nil
}
