package routine

import (
	"time"

	"github.com/google/uuid"

	"github.com/momentumhq/momentum-lambda/internal/user"
)

type Routine struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string      `gorm:"not null" json:"title"`
	Description     string      `json:"description,omitempty"`
	Type            RoutineType `gorm:"type:text;not null" json:"type"`
	DailyTarget     int         `gorm:"not null;default:1" json:"daily_target"`
	Streak          int         `gorm:"not null;default:0" json:"streak"`
	LastCompletedAt *time.Time  `json:"last_completed_at,omitempty"`
	UserID          uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User            user.User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Completions []RoutineCompletion `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"-"`
}

// RoutineCompletion records one confirmed completion per calendar day.
// These rows are the source of truth; the day window returned to clients
// is a read-time projection over them.
type RoutineCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoutineID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_routine_completion_day" json:"routine_id"`
	Day         string    `gorm:"type:text;not null;uniqueIndex:idx_routine_completion_day" json:"day"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
}
