package journal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalRepository interface {
	Create(e *JournalEntry) error
	FindAllByUserID(userID uuid.UUID) ([]*JournalEntry, error)
	FindByID(id uuid.UUID) (*JournalEntry, error)
	Update(e *JournalEntry) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) JournalRepository {
	return &repository{db: db}
}

func (r *repository) Create(e *JournalEntry) error {
	return r.db.Create(e).Error
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*JournalEntry, error) {
	var entries []*JournalEntry
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) FindByID(id uuid.UUID) (*JournalEntry, error) {
	var e JournalEntry
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(e *JournalEntry) error {
	return r.db.Save(e).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&JournalEntry{}, "id = ?", id).Error
}
