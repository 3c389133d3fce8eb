package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/momentumhq/momentum-lambda/internal/config"
)

// Sink receives user-visible alerts. Fire-and-forget: callers never act on
// delivery failures.
type Sink interface {
	Notify(ctx context.Context, userID uuid.UUID, message string)
}

type logSink struct{}

func NewLogSink() Sink {
	return &logSink{}
}

func (s *logSink) Notify(ctx context.Context, userID uuid.UUID, message string) {
	config.WithContext(ctx).
		WithField("user_id", userID).
		WithField("notification", message).
		Info("User notification")
}
