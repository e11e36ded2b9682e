package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/repos"
	"github.com/fictiverse/fictiverse-backend/internal/slug"
	"github.com/fictiverse/fictiverse-backend/internal/textstream"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

// Materialization is the outcome of requesting an article. Exactly one of
// Article and Stream is set: Article for a previously stored entry, Stream
// for one being generated right now.
type Materialization struct {
	Article *types.Article
	Title   string
	Stream  *textstream.Reader
}

type ArticleService interface {
	// Materialize returns the stored article for (universe, slug) or starts
	// generating it. Generation streams to the caller while a detached
	// background task accumulates the full text, inserts it with
	// conflict-skip semantics and indexes the winning copy exactly once.
	Materialize(ctx context.Context, universeSlug string, articleSlug string) (*Materialization, error)
}

type articleService struct {
	log       *logger.Logger
	universes repos.UniverseRepo
	articles  repos.ArticleRepo
	weaver    WeaverService
	search    SearchService
}

func NewArticleService(log *logger.Logger, universes repos.UniverseRepo, articles repos.ArticleRepo, weaver WeaverService, search SearchService) ArticleService {
	return &articleService{
		log:       log.With("service", "ArticleService"),
		universes: universes,
		articles:  articles,
		weaver:    weaver,
		search:    search,
	}
}

func (s *articleService) Materialize(ctx context.Context, universeSlug string, articleSlug string) (*Materialization, error) {
	dbc := dbctx.New(ctx)

	verse, err := s.universes.GetBySlug(dbc, universeSlug)
	if err != nil {
		return nil, err
	}

	existing, err := s.articles.GetBySlug(dbc, verse.ID, articleSlug)
	if err == nil {
		return &Materialization{Article: existing, Title: existing.Title}, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	title := slug.Unslugify(articleSlug)
	if title == "" {
		return nil, apperr.ErrInvalidArgument
	}

	// Generation and persistence must outlive the request: an abandoned
	// viewer stream never cancels the copy that becomes durable.
	detached := context.WithoutCancel(ctx)

	stream, err := s.weaver.WeaveWikiArticle(detached, verse, title)
	if err != nil {
		return nil, err
	}

	go s.persistWhenComplete(detached, verse, articleSlug, title, stream.Reader())

	return &Materialization{Title: title, Stream: stream.Reader()}, nil
}

// persistWhenComplete drains its own cursor of the generation stream, then
// runs the insert/reconcile/index protocol. The insert is conditional on the
// slug's unique index; when two generations race, the first writer wins and
// the loser's text is discarded without error. Re-reading the row afterwards
// tells this call whether its text is the one that stuck, and only that copy
// is indexed, so the paragraph store never holds a loser's excerpts.
func (s *articleService) persistWhenComplete(ctx context.Context, verse *types.Universe, articleSlug string, title string, reader *textstream.Reader) {
	log := s.log.With("universe", verse.Slug, "slug", articleSlug)

	text, err := reader.ReadAll(ctx)
	if err != nil {
		// Nothing was persisted; the next request for this slug regenerates.
		log.Error("Generation did not complete, article not persisted", "error", err)
		return
	}

	dbc := dbctx.New(ctx)
	row := &types.Article{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UniverseID: verse.ID,
		Slug:       articleSlug,
		Title:      title,
		Text:       text,
	}
	if err := s.articles.CreateIfAbsent(dbc, row); err != nil {
		log.Error("Article insert failed", "error", err)
		return
	}

	stored, err := s.articles.GetBySlug(dbc, verse.ID, articleSlug)
	if err != nil {
		log.Error("Article re-read after insert failed", "error", err)
		return
	}

	if stored.Text != text {
		log.Info("Lost materialization race, skipping index", "winner_article_id", stored.ID)
		return
	}

	// This call's generation is the stored one; index it exactly once. The
	// index insert is not in the article's transaction: a crash here leaves
	// an article without paragraphs, which is acceptable for a rebuildable
	// search structure.
	if err := s.search.IndexArticle(ctx, stored); err != nil {
		log.Warn("Paragraph indexing failed", "article_id", stored.ID, "error", err)
		return
	}
	log.Info("Article materialized", "article_id", stored.ID, "bytes", len(text))
}
