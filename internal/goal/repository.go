package goal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(g *Goal) error
	FindAllByUserID(userID uuid.UUID) ([]*Goal, error)
	FindByID(id uuid.UUID) (*Goal, error)
	Update(g *Goal) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GoalRepository {
	return &repository{db: db}
}

func (r *repository) Create(g *Goal) error {
	return r.db.Create(g).Error
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Goal, error) {
	var goals []*Goal
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) FindByID(id uuid.UUID) (*Goal, error) {
	var g Goal
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *repository) Update(g *Goal) error {
	return r.db.Save(g).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Goal{}, "id = ?", id).Error
}
