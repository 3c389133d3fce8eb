package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/config"
)

var (
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidID     = errors.New("invalid id format")
	ErrValidation    = errors.New("validation failed")
)

type JournalService interface {
	Create(ctx context.Context, dto CreateEntryDTO) (*JournalEntry, error)
	List(ctx context.Context) ([]*JournalEntry, error)
	Get(ctx context.Context, id string) (*JournalEntry, error)
	Update(ctx context.Context, id string, dto UpdateEntryDTO) (*JournalEntry, error)
	Delete(ctx context.Context, id string) error
}

type journalService struct {
	repo JournalRepository
}

func NewService(repo JournalRepository) JournalService {
	return &journalService{repo: repo}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *journalService) Create(ctx context.Context, dto CreateEntryDTO) (*JournalEntry, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create journal entry")
	if err != nil {
		return nil, err
	}

	if dto.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	e := &JournalEntry{
		ID:      uuid.New(),
		Title:   dto.Title,
		Content: dto.Content,
		Tags:    dto.Tags,
		UserID:  userID,
	}

	if err := s.repo.Create(e); err != nil {
		log.WithError(err).Error("Failed to create journal entry")
		return nil, err
	}

	return e, nil
}

func (s *journalService) List(ctx context.Context) ([]*JournalEntry, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list journal entries")
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list journal entries")
		return nil, err
	}
	return entries, nil
}

func (s *journalService) loadOwned(ctx context.Context, log logrus.FieldLogger, id string) (*JournalEntry, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid journal entry ID")
		return nil, ErrInvalidID
	}
	userID, err := getUserIDFromContext(ctx, log, "access journal entry")
	if err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(entryID)
	if err != nil {
		log.WithError(err).Error("Failed to load journal entry")
		return nil, err
	}
	if e == nil || e.UserID != userID {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

func (s *journalService) Get(ctx context.Context, id string) (*JournalEntry, error) {
	log := config.WithContext(ctx)
	return s.loadOwned(ctx, log, id)
}

func (s *journalService) Update(ctx context.Context, id string, dto UpdateEntryDTO) (*JournalEntry, error) {
	log := config.WithContext(ctx)

	e, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		if *dto.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		e.Title = *dto.Title
	}
	if dto.Content != nil {
		e.Content = *dto.Content
	}
	if dto.Tags != nil {
		e.Tags = *dto.Tags
	}

	if err := s.repo.Update(e); err != nil {
		log.WithError(err).Error("Failed to update journal entry")
		return nil, err
	}
	return e, nil
}

func (s *journalService) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	e, err := s.loadOwned(ctx, log, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(e.ID); err != nil {
		log.WithError(err).Error("Failed to delete journal entry")
		return err
	}
	return nil
}
