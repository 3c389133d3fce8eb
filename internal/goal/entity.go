package goal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/momentumhq/momentum-lambda/internal/user"
)

type Goal struct {
	ID           uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `json:"description,omitempty"`
	Type         GoalType                    `gorm:"type:text;not null" json:"type"`
	TargetHours  float64                     `json:"target_hours"`
	TargetCount  int                         `json:"target_count"`
	CurrentCount int                         `json:"current_count"`
	Priority     GoalPriority                `gorm:"type:text;not null;default:MEDIUM" json:"priority"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	IsActive     bool                        `gorm:"default:true" json:"is_active"`
	UserID       uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User         user.User                   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt  *time.Time                  `json:"completed_at,omitempty"`
}
