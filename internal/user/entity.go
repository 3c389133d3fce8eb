package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                        string    `json:"name"`
	Email                       string    `gorm:"uniqueIndex;not null" json:"email"`
	Picture                     string    `json:"picture,omitempty"`
	Role                        string    `gorm:"default:user" json:"role"`
	GoogleID                    string    `gorm:"index" json:"-"`
	EncryptedGoogleAccessToken  string    `json:"-"`
	EncryptedGoogleRefreshToken string    `json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}
