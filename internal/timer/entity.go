package timer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/momentumhq/momentum-lambda/internal/user"
	util "github.com/momentumhq/momentum-lambda/internal/utils"
)

type Timer struct {
	ID                    uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title                 string                      `gorm:"not null" json:"title"`
	Duration              int                         `gorm:"not null" json:"duration"`
	RemainingTime         int                         `json:"remaining_time"`
	Status                TimerStatus                 `gorm:"type:text;not null" json:"status"`
	Tags                  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	DueAt                 *util.LocalDateTime         `json:"due_at,omitempty"`
	GoogleCalendarEventID string                      `json:"-"`
	UserID                uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User                  user.User                   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt             time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt           *time.Time                  `json:"completed_at,omitempty"`

	Comments []TimerComment `gorm:"foreignKey:TimerID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

type TimerComment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TimerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"timer_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	OrderIndex int       `gorm:"not null" json:"order_index"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// HasAnyTag reports whether the timer shares at least one tag with tags.
func (t *Timer) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}
