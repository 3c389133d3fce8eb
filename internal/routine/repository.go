package routine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoutineRepository interface {
	Create(r *Routine) error
	FindAllByUserID(userID uuid.UUID) ([]*Routine, error)
	FindByID(id uuid.UUID) (*Routine, error)
	Update(r *Routine) error
	Delete(id uuid.UUID) error
	FindCompletions(routineID uuid.UUID, fromDay, toDay string) ([]RoutineCompletion, error)
	FindStale(before time.Time) ([]*Routine, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) RoutineRepository {
	return &repository{db: db}
}

func (r *repository) Create(routine *Routine) error {
	return r.db.Create(routine).Error
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Routine, error) {
	var routines []*Routine
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&routines).Error; err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *repository) FindByID(id uuid.UUID) (*Routine, error) {
	var routine Routine
	if err := r.db.First(&routine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &routine, nil
}

func (r *repository) Update(routine *Routine) error {
	return r.db.Save(routine).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Routine{}, "id = ?", id).Error
}

func (r *repository) FindCompletions(routineID uuid.UUID, fromDay, toDay string) ([]RoutineCompletion, error) {
	var completions []RoutineCompletion
	err := r.db.
		Where("routine_id = ? AND day >= ? AND day <= ?", routineID, fromDay, toDay).
		Order("day ASC").
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

// FindStale returns routines whose last completion predates the cutoff.
// Never-completed routines are not stale: there is nothing to have missed.
func (r *repository) FindStale(before time.Time) ([]*Routine, error) {
	var routines []*Routine
	err := r.db.
		Where("last_completed_at IS NOT NULL AND last_completed_at < ?", before).
		Find(&routines).Error
	if err != nil {
		return nil, err
	}
	return routines, nil
}
