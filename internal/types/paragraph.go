package types

import "github.com/google/uuid"

// Paragraph is an indexed excerpt of an article body, markdown stripped. The
// set of paragraphs is a derived, rebuildable search structure, not a source
// of truth.
type Paragraph struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;index" json:"article_id"`
	Text      string    `gorm:"not null" json:"text"`

	Article *Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Paragraph) TableName() string {
	return "paragraphs"
}
