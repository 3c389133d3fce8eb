package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/momentumhq/momentum-lambda/internal/user"
)

type JournalEntry struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string                      `gorm:"not null" json:"title"`
	Content   string                      `gorm:"type:text" json:"content"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	UserID    uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User      user.User                   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}
