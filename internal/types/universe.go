package types

import (
	"time"

	"github.com/google/uuid"
)

// Universe is a generated fictional setting. Created once from a user prompt,
// immutable afterwards.
type Universe struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Prompt    string    `gorm:"not null" json:"prompt"`
}

func (Universe) TableName() string {
	return "universes"
}
