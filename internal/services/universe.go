package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/repos"
	"github.com/fictiverse/fictiverse-backend/internal/slug"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

const (
	minUniversePromptLen = 10
	maxUniversePromptLen = 300
)

type UniverseService interface {
	// Create validates the prompt, weaves a universe name and persists the
	// universe. A rejected or failed name generation leaves no partial row.
	Create(ctx context.Context, prompt string) (*types.Universe, error)
	GetBySlug(ctx context.Context, universeSlug string) (*types.Universe, error)
	ListRecent(ctx context.Context, limit int) ([]*types.Universe, error)

	// EntryArticleSlug resolves the slug a fresh visitor should land on: the
	// universe's oldest article, or a newly woven first-article title when no
	// article exists yet. Nothing is persisted either way; the article itself
	// materializes on first request.
	EntryArticleSlug(ctx context.Context, universeSlug string) (string, error)
}

type universeService struct {
	log       *logger.Logger
	universes repos.UniverseRepo
	articles  repos.ArticleRepo
	weaver    WeaverService
}

func NewUniverseService(log *logger.Logger, universes repos.UniverseRepo, articles repos.ArticleRepo, weaver WeaverService) UniverseService {
	return &universeService{
		log:       log.With("service", "UniverseService"),
		universes: universes,
		articles:  articles,
		weaver:    weaver,
	}
}

func (s *universeService) Create(ctx context.Context, prompt string) (*types.Universe, error) {
	prompt = strings.TrimSpace(prompt)
	if len(prompt) < minUniversePromptLen {
		return nil, fmt.Errorf("%w: prompt must be at least %d characters", apperr.ErrInvalidArgument, minUniversePromptLen)
	}
	if len(prompt) > maxUniversePromptLen {
		return nil, fmt.Errorf("%w: prompt must be at most %d characters", apperr.ErrInvalidArgument, maxUniversePromptLen)
	}

	name, err := s.weaver.WeaveUniverseName(ctx, prompt)
	if err != nil {
		return nil, err
	}

	universeSlug := slug.Slugify(name)
	if universeSlug == "" {
		return nil, fmt.Errorf("universe name %q produced an empty slug", name)
	}

	row := &types.Universe{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Slug:      universeSlug,
		Name:      name,
		Prompt:    prompt,
	}
	if err := s.universes.Create(dbctx.New(ctx), row); err != nil {
		return nil, fmt.Errorf("persist universe: %w", err)
	}
	s.log.Info("Universe created", "slug", row.Slug, "name", row.Name)
	return row, nil
}

func (s *universeService) GetBySlug(ctx context.Context, universeSlug string) (*types.Universe, error) {
	return s.universes.GetBySlug(dbctx.New(ctx), universeSlug)
}

func (s *universeService) ListRecent(ctx context.Context, limit int) ([]*types.Universe, error) {
	return s.universes.ListRecent(dbctx.New(ctx), limit)
}

func (s *universeService) EntryArticleSlug(ctx context.Context, universeSlug string) (string, error) {
	dbc := dbctx.New(ctx)
	verse, err := s.universes.GetBySlug(dbc, universeSlug)
	if err != nil {
		return "", err
	}

	first, err := s.articles.FirstByUniverse(dbc, verse.ID)
	if err == nil {
		return first.Slug, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	// No articles yet; invent the first one's title.
	title, err := s.weaver.WeaveFirstArticleTitle(ctx, verse)
	if err != nil {
		return "", err
	}
	return slug.Slugify(title), nil
}
