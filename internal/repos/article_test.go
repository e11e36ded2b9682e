package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/repos/testutil"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

func TestArticleRepoCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.New(ctx)
	repo := NewArticleRepo(db, testutil.Logger(t))

	verse := testutil.SeedUniverse(t, ctx, db, "test-universe")

	first := &types.Article{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UniverseID: verse.ID,
		Slug:       "ancient-ruins",
		Title:      "Ancient Ruins",
		Text:       "the first writer's text",
	}
	if err := repo.CreateIfAbsent(dbc, first); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}

	// A second insert for the same slug is silently discarded.
	second := &types.Article{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UniverseID: verse.ID,
		Slug:       "ancient-ruins",
		Title:      "Ancient Ruins",
		Text:       "the second writer's text",
	}
	if err := repo.CreateIfAbsent(dbc, second); err != nil {
		t.Fatalf("CreateIfAbsent conflict: %v", err)
	}

	stored, err := repo.GetBySlug(dbc, verse.ID, "ancient-ruins")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if stored.ID != first.ID || stored.Text != first.Text {
		t.Fatalf("first writer should win, got article %v", stored.ID)
	}

	var count int64
	if err := db.Model(&types.Article{}).Where("slug = ?", "ancient-ruins").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 article row, got %d", count)
	}
}

func TestArticleRepoGetBySlugNotFound(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewArticleRepo(db, testutil.Logger(t))

	verse := testutil.SeedUniverse(t, ctx, db, "empty-universe")

	_, err := repo.GetBySlug(dbctx.New(ctx), verse.ID, "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleRepoFirstByUniverse(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.New(ctx)
	repo := NewArticleRepo(db, testutil.Logger(t))

	verse := testutil.SeedUniverse(t, ctx, db, "ordered-universe")

	older := &types.Article{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC().Add(-2 * time.Hour),
		UniverseID: verse.ID,
		Slug:       "older-entry",
		Title:      "Older Entry",
		Text:       "old",
	}
	newer := &types.Article{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC().Add(-1 * time.Hour),
		UniverseID: verse.ID,
		Slug:       "newer-entry",
		Title:      "Newer Entry",
		Text:       "new",
	}
	if err := repo.CreateIfAbsent(dbc, newer); err != nil {
		t.Fatalf("seed newer: %v", err)
	}
	if err := repo.CreateIfAbsent(dbc, older); err != nil {
		t.Fatalf("seed older: %v", err)
	}

	first, err := repo.FirstByUniverse(dbc, verse.ID)
	if err != nil {
		t.Fatalf("FirstByUniverse: %v", err)
	}
	if first.ID != older.ID {
		t.Fatalf("expected oldest article %v, got %v", older.ID, first.ID)
	}

	n, err := repo.CountByUniverse(dbc, verse.ID)
	if err != nil {
		t.Fatalf("CountByUniverse: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 articles, got %d", n)
	}
}
