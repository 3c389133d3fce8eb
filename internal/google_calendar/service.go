package googlecalendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/user"
)

var (
	ErrUserNotFound          = errors.New("user not found for calendar integration")
	ErrDecryptionFailed      = errors.New("failed to decrypt user's google token")
	ErrMissingCalendarTokens = errors.New("user has no google access token")
)

type CalendarService interface {
	AddEventToCalendar(ctx context.Context, userID uuid.UUID, timer *CalendarTimer) (string, error)
	UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, timer *CalendarTimer) error
	DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error
}

type calendarService struct {
	userRepo    user.UserRepository
	oauthConfig *oauth2.Config
}

func NewCalendarService(userRepo user.UserRepository, oauthConfig *oauth2.Config) CalendarService {
	return &calendarService{
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
	}
}

func (s *calendarService) getCalendarClient(ctx context.Context, userID uuid.UUID) (*gcal.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.GetByID(userID.String())
	if err != nil {
		log.WithError(err).Error("Failed to retrieve user for calendar client")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if u.EncryptedGoogleAccessToken == "" {
		return nil, ErrMissingCalendarTokens
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptionFailed
	}

	refreshToken := ""
	if u.EncryptedGoogleRefreshToken != "" {
		refreshToken, err = config.Decrypt(u.EncryptedGoogleRefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptionFailed
		}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	if _, err := tokenSource.Token(); err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	client := oauth2.NewClient(ctx, tokenSource)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}

	return srv, nil
}

func (s *calendarService) buildCalendarEvent(timer *CalendarTimer) *gcal.Event {
	if timer.DueAt == nil {
		return nil
	}

	// Block out the timer's duration ending at the due date.
	length := time.Duration(timer.Duration) * time.Second
	if length <= 0 {
		length = time.Hour
	}

	return &gcal.Event{
		Summary: timer.Title,
		Reminders: &gcal.EventReminders{
			UseDefault: false,
		},
		Start: &gcal.EventDateTime{
			DateTime: timer.DueAt.Add(-length).Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: timer.DueAt.Format(time.RFC3339),
		},
	}
}

func (s *calendarService) AddEventToCalendar(ctx context.Context, userID uuid.UUID, timer *CalendarTimer) (string, error) {
	log := config.WithContext(ctx)
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return "", err
	}

	event := s.buildCalendarEvent(timer)
	if event == nil {
		log.Warnf("Timer %s has no due date to create a calendar event", timer.ID)
		return "", nil
	}

	calEvent, err := srv.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to insert calendar event")
		return "", err
	}

	return calEvent.Id, nil
}

func (s *calendarService) UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, timer *CalendarTimer) error {
	log := config.WithContext(ctx)
	if timer.GoogleCalendarEventID == nil || *timer.GoogleCalendarEventID == "" {
		return errors.New("cannot update event: missing Google Calendar Event ID")
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return err
	}

	event := s.buildCalendarEvent(timer)
	if event == nil {
		log.Warnf("Timer %s no longer has a due date, attempting to delete calendar event", timer.ID)
		return s.DeleteEventFromCalendar(ctx, userID, *timer.GoogleCalendarEventID)
	}

	_, err = srv.Events.Update("primary", *timer.GoogleCalendarEventID, event).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to update calendar event")
		return err
	}

	return nil
}

func (s *calendarService) DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error {
	log := config.WithContext(ctx)
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrDecryptionFailed) {
			log.Warnf("Skipping Google Calendar deletion for event %s due to missing/invalid token", googleEventID)
			return nil
		}
		return err
	}

	err = srv.Events.Delete("primary", googleEventID).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			log.Warnf("Calendar event %s not found on Google, considering deleted", googleEventID)
			return nil
		}
		log.WithError(err).Error("Failed to delete calendar event")
		return err
	}

	return nil
}
