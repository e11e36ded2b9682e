package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/repos/testutil"
)

func TestParagraphRepoSearchTopScopedToUniverse(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.New(ctx)
	repo := NewParagraphRepo(db, testutil.Logger(t))

	verse := testutil.SeedUniverse(t, ctx, db, "searchable")
	other := testutil.SeedUniverse(t, ctx, db, "unrelated")

	art := testutil.SeedArticle(t, ctx, db, verse.ID, "datawood-trees", "body")
	foreign := testutil.SeedArticle(t, ctx, db, other.ID, "foreign-entry", "body")

	testutil.SeedParagraph(t, ctx, db, art.ID, "The datawood groves stored the realm's archives in living bark.")
	testutil.SeedParagraph(t, ctx, db, art.ID, "Nothing about the topic at all.")
	testutil.SeedParagraph(t, ctx, db, foreign.ID, "A datawood mention from another universe entirely.")

	hits, err := repo.SearchTop(dbc, verse.ID, "datawood", 15)
	if err != nil {
		t.Fatalf("SearchTop: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].ArticleID != art.ID || hits[0].ArticleSlug != "datawood-trees" {
		t.Fatalf("hit references wrong article: %+v", hits[0])
	}
}

func TestParagraphRepoSearchTopEmptyQuery(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewParagraphRepo(db, testutil.Logger(t))

	verse := testutil.SeedUniverse(t, ctx, db, "quiet")

	hits, err := repo.SearchTop(dbctx.New(ctx), verse.ID, "   ", 15)
	if err != nil {
		t.Fatalf("SearchTop: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}

func TestParagraphRepoCreateEmptyBatch(t *testing.T) {
	db := testutil.DB(t)
	repo := NewParagraphRepo(db, testutil.Logger(t))

	if err := repo.Create(dbctx.New(context.Background()), nil); err != nil {
		t.Fatalf("Create with empty batch: %v", err)
	}
}

func TestParagraphRepoListByArticle(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewParagraphRepo(db, testutil.Logger(t))

	verse := testutil.SeedUniverse(t, ctx, db, "listable")
	art := testutil.SeedArticle(t, ctx, db, verse.ID, "entry", "body")
	testutil.SeedParagraph(t, ctx, db, art.ID, "one")
	testutil.SeedParagraph(t, ctx, db, art.ID, "two")

	rows, err := repo.ListByArticle(dbctx.New(ctx), art.ID)
	if err != nil {
		t.Fatalf("ListByArticle: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(rows))
	}

	if _, err := repo.ListByArticle(dbctx.New(ctx), uuid.Nil); err == nil {
		t.Fatalf("expected error for missing article id")
	}
}
