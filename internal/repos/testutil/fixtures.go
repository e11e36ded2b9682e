package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fictiverse/fictiverse-backend/internal/types"
)

func SeedUniverse(tb testing.TB, ctx context.Context, db *gorm.DB, slug string) *types.Universe {
	tb.Helper()
	u := &types.Universe{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Slug:      slug,
		Name:      "Test Universe",
		Prompt:    "A land where trees are used for data storage",
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed universe: %v", err)
	}
	return u
}

func SeedArticle(tb testing.TB, ctx context.Context, db *gorm.DB, universeID uuid.UUID, slug, text string) *types.Article {
	tb.Helper()
	a := &types.Article{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UniverseID: universeID,
		Slug:       slug,
		Title:      slug,
		Text:       text,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed article: %v", err)
	}
	return a
}

func SeedParagraph(tb testing.TB, ctx context.Context, db *gorm.DB, articleID uuid.UUID, text string) *types.Paragraph {
	tb.Helper()
	p := &types.Paragraph{
		ID:        uuid.New(),
		ArticleID: articleID,
		Text:      text,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed paragraph: %v", err)
	}
	return p
}
