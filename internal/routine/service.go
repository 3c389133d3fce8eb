package routine

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
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidID       = errors.New("invalid id format")
	ErrValidation      = errors.New("validation failed")
)

type RoutineService interface {
	Create(ctx context.Context, dto CreateRoutineDTO) (*Routine, error)
	List(ctx context.Context) ([]RoutineResponse, error)
	Get(ctx context.Context, id string) (*RoutineResponse, error)
	Update(ctx context.Context, id string, dto UpdateRoutineDTO) (*Routine, error)
	Delete(ctx context.Context, id string) error
	CompleteToday(ctx context.Context, id string) (*CompletionResult, error)
}

type routineService struct {
	repo RoutineRepository
	db   *gorm.DB
	clk  clock.Clock
}

func NewService(db *gorm.DB, repo RoutineRepository, clk clock.Clock) RoutineService {
	return &routineService{repo: repo, db: db, clk: clk}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *routineService) Create(ctx context.Context, dto CreateRoutineDTO) (*Routine, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create routine")
	if err != nil {
		return nil, err
	}

	if dto.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !dto.Type.IsValid() {
		return nil, fmt.Errorf("%w: type must be TIME or COUNT", ErrValidation)
	}
	if dto.DailyTarget < 0 {
		return nil, fmt.Errorf("%w: daily_target must be positive", ErrValidation)
	}
	if dto.DailyTarget == 0 {
		dto.DailyTarget = 1
	}

	r := &Routine{
		ID:          uuid.New(),
		Title:       dto.Title,
		Description: dto.Description,
		Type:        dto.Type,
		DailyTarget: dto.DailyTarget,
		Streak:      0,
		UserID:      userID,
	}

	if err := s.repo.Create(r); err != nil {
		log.WithError(err).Error("Failed to create routine")
		return nil, err
	}

	log.WithField("routine_id", r.ID).Info("Routine created successfully")
	return r, nil
}

func (s *routineService) List(ctx context.Context) ([]RoutineResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list routines")
	if err != nil {
		return nil, err
	}

	routines, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list routines")
		return nil, err
	}

	responses := make([]RoutineResponse, 0, len(routines))
	for _, r := range routines {
		resp, err := s.toResponse(r)
		if err != nil {
			log.WithError(err).Errorf("Failed to project day window for routine %s", r.ID)
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *routineService) Get(ctx context.Context, id string) (*RoutineResponse, error) {
	log := config.WithContext(ctx)

	r, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(r)
}

func (s *routineService) toResponse(r *Routine) (*RoutineResponse, error) {
	now := s.clk.Now()
	loc := util.AppLocation()

	from := DayKey(now.AddDate(0, 0, -15), loc)
	to := DayKey(now.AddDate(0, 0, 15), loc)
	completions, err := s.repo.FindCompletions(r.ID, from, to)
	if err != nil {
		return nil, err
	}

	return &RoutineResponse{
		Routine:  r,
		Progress: BuildDayWindow(completions, now, loc),
	}, nil
}

func (s *routineService) loadOwned(ctx context.Context, log logrus.FieldLogger, id string) (*Routine, error) {
	routineID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid routine ID")
		return nil, ErrInvalidID
	}
	userID, err := getUserIDFromContext(ctx, log, "access routine")
	if err != nil {
		return nil, err
	}

	r, err := s.repo.FindByID(routineID)
	if err != nil {
		log.WithError(err).Error("Failed to load routine")
		return nil, err
	}
	if r == nil || r.UserID != userID {
		return nil, ErrRoutineNotFound
	}
	return r, nil
}

func (s *routineService) Update(ctx context.Context, id string, dto UpdateRoutineDTO) (*Routine, error) {
	log := config.WithContext(ctx)

	r, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		if *dto.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		r.Title = *dto.Title
	}
	if dto.Description != nil {
		r.Description = *dto.Description
	}
	if dto.DailyTarget != nil {
		if *dto.DailyTarget <= 0 {
			return nil, fmt.Errorf("%w: daily_target must be positive", ErrValidation)
		}
		r.DailyTarget = *dto.DailyTarget
	}

	if err := s.repo.Update(r); err != nil {
		log.WithError(err).Error("Failed to update routine")
		return nil, err
	}
	return r, nil
}

func (s *routineService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	r, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(r.ID); err != nil {
		log.WithError(err).Error("Failed to delete routine")
		return err
	}
	return nil
}

// CompleteToday applies the streak transition under a row lock: the read
// of last_completed_at and the write of the new streak happen atomically,
// so two concurrent completions cannot double-increment.
func (s *routineService) CompleteToday(ctx context.Context, id string) (*CompletionResult, error) {
	log := config.WithContext(ctx)

	routineID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	userID, err := getUserIDFromContext(ctx, log, "complete routine")
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	loc := util.AppLocation()

	var r Routine
	var already bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&r, "id = ?", routineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoutineNotFound
			}
			return err
		}
		if r.UserID != userID {
			return ErrRoutineNotFound
		}

		next, ok := NextStreakState(&r, now, loc)
		if !ok {
			already = true
			return nil
		}

		r.Streak = next.Streak
		r.LastCompletedAt = &next.LastCompletedAt

		completion := RoutineCompletion{
			RoutineID:   r.ID,
			Day:         DayKey(now, loc),
			CompletedAt: now,
		}
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}
		return tx.Save(&r).Error
	})
	if err != nil {
		if !errors.Is(err, ErrRoutineNotFound) {
			log.WithError(err).Error("Failed to complete routine")
		}
		return nil, err
	}

	if already {
		log.WithField("routine_id", r.ID).Info("Routine already completed today")
	} else {
		log.WithField("routine_id", r.ID).WithField("streak", r.Streak).Info("Routine completed")
	}

	return &CompletionResult{Routine: &r, AlreadyCompleted: already}, nil
}
