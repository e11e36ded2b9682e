package types

import (
	"time"

	"github.com/google/uuid"
)

// Article is one generated encyclopedia entry. Append-only: never updated or
// deleted by the backend after its conditional insert. The unique index on
// slug doubles as the concurrency-control primitive for racing generations.
type Article struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
	UniverseID uuid.UUID `gorm:"type:uuid;not null;index" json:"universe_id"`
	Slug       string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Text       string    `gorm:"not null" json:"text"`

	Universe *Universe `gorm:"foreignKey:UniverseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Article) TableName() string {
	return "articles"
}
