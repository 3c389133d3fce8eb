package googlecalendar

import (
	"context"

	"github.com/google/uuid"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

type CalendarManager interface {
	SyncTimer(ctx context.Context, userID uuid.UUID, timer *CalendarTimer) (eventID string, err error)
	RemoveTimer(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarManager struct {
	calendarService CalendarService
}

func NewCalendarManager(calendarService CalendarService) CalendarManager {
	return &calendarManager{
		calendarService: calendarService,
	}
}

func (m *calendarManager) SyncTimer(ctx context.Context, userID uuid.UUID, timer *CalendarTimer) (string, error) {
	log := config.WithContext(ctx)

	hasEventID := timer.GoogleCalendarEventID != nil && *timer.GoogleCalendarEventID != ""

	if hasEventID && timer.DueAt == nil {
		log.Infof("Timer %s no longer has a due date, deleting calendar event", timer.ID)
		if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, *timer.GoogleCalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to delete calendar event for timer %s", timer.ID)
		}
		return "", nil
	}

	if timer.DueAt == nil {
		return "", nil
	}

	if hasEventID {
		if err := m.calendarService.UpdateEventInCalendar(ctx, userID, timer); err != nil {
			log.WithError(err).Warnf("Failed to update calendar event for timer %s", timer.ID)
			return *timer.GoogleCalendarEventID, err
		}
		return *timer.GoogleCalendarEventID, nil
	}

	eventID, err := m.calendarService.AddEventToCalendar(ctx, userID, timer)
	if err != nil {
		log.WithError(err).Warnf("Failed to create calendar event for timer %s", timer.ID)
		return "", err
	}

	if eventID == "" {
		log.Warnf("Calendar service returned empty event ID for timer %s", timer.ID)
		return "", nil
	}

	log.Infof("Created calendar event %s for timer %s", eventID, timer.ID)
	return eventID, nil
}

func (m *calendarManager) RemoveTimer(ctx context.Context, userID uuid.UUID, eventID string) error {
	if eventID == "" {
		return nil
	}

	log := config.WithContext(ctx)

	if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, eventID); err != nil {
		log.WithError(err).Warnf("Failed to delete calendar event %s", eventID)
		return err
	}

	return nil
}
