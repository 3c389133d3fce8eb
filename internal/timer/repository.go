package timer

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimerRepository interface {
	Create(t *Timer) error
	FindAllByUserID(userID uuid.UUID) ([]*Timer, error)
	FindByID(id uuid.UUID) (*Timer, error)
	FindActiveByUserID(userID uuid.UUID) (*Timer, error)
	Update(t *Timer) error
	UpdateRemainingTime(id uuid.UUID, remaining int) error
	Delete(id uuid.UUID) error
	AddComment(c *TimerComment) error
	CountComments(timerID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TimerRepository {
	return &repository{db: db}
}

func (r *repository) Create(t *Timer) error {
	return r.db.Create(t).Error
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Timer, error) {
	var timers []*Timer
	err := r.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&timers).Error
	if err != nil {
		return nil, err
	}
	return timers, nil
}

func (r *repository) FindByID(id uuid.UUID) (*Timer, error) {
	var t Timer
	err := r.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindActiveByUserID(userID uuid.UUID) (*Timer, error) {
	var t Timer
	err := r.db.First(&t, "user_id = ? AND status = ?", userID, StatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(t *Timer) error {
	return r.db.Save(t).Error
}

func (r *repository) UpdateRemainingTime(id uuid.UUID, remaining int) error {
	return r.db.Model(&Timer{}).Where("id = ?", id).
		Update("remaining_time", remaining).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Timer{}, "id = ?", id).Error
}

func (r *repository) AddComment(c *TimerComment) error {
	return r.db.Create(c).Error
}

func (r *repository) CountComments(timerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&TimerComment{}).Where("timer_id = ?", timerID).Count(&count).Error
	return count, err
}
