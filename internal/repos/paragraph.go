package repos

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

// ParagraphHit is one matched paragraph plus the owning article's summary
// columns, ranked by relevance (higher first).
type ParagraphHit struct {
	ParagraphID  uuid.UUID
	ArticleID    uuid.UUID
	ArticleTitle string
	ArticleSlug  string
	Text         string
	Rank         float64
}

type ParagraphRepo interface {
	Create(dbc dbctx.Context, rows []*types.Paragraph) error
	SearchTop(dbc dbctx.Context, universeID uuid.UUID, query string, limit int) ([]ParagraphHit, error)
	ListByArticle(dbc dbctx.Context, articleID uuid.UUID) ([]*types.Paragraph, error)
}

type paragraphRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParagraphRepo(db *gorm.DB, log *logger.Logger) ParagraphRepo {
	return &paragraphRepo{db: db, log: log.With("repo", "ParagraphRepo")}
}

func (r *paragraphRepo) Create(dbc dbctx.Context, rows []*types.Paragraph) error {
	if len(rows) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *paragraphRepo) SearchTop(dbc dbctx.Context, universeID uuid.UUID, query string, limit int) ([]ParagraphHit, error) {
	if universeID == uuid.Nil {
		return nil, fmt.Errorf("missing universe id")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []ParagraphHit{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 15
	}

	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}

	type row struct {
		ParagraphID  uuid.UUID `gorm:"column:paragraph_id"`
		ArticleID    uuid.UUID `gorm:"column:article_id"`
		ArticleTitle string    `gorm:"column:article_title"`
		ArticleSlug  string    `gorm:"column:article_slug"`
		Text         string    `gorm:"column:text"`
		Rank         float64   `gorm:"column:rank"`
	}
	var rows []row

	if txx.Dialector.Name() == "postgres" {
		sql := fmt.Sprintf(`
			SELECT paragraphs.id AS paragraph_id,
			       paragraphs.article_id AS article_id,
			       paragraphs.text AS text,
			       articles.title AS article_title,
			       articles.slug AS article_slug,
			       ts_rank(to_tsvector('english', paragraphs.text), plainto_tsquery('english', ?)) AS rank
			FROM paragraphs
			JOIN articles ON articles.id = paragraphs.article_id
			WHERE articles.universe_id = ?
			  AND to_tsvector('english', paragraphs.text) @@ plainto_tsquery('english', ?)
			ORDER BY rank DESC
			LIMIT %d;
		`, limit)
		if err := txx.WithContext(dbc.Ctx).Raw(sql, query, universeID, query).Scan(&rows).Error; err != nil {
			return nil, err
		}
	} else {
		// SQLite has no ts_rank; substring matching keeps local development
		// working with a flat rank.
		sql := fmt.Sprintf(`
			SELECT paragraphs.id AS paragraph_id,
			       paragraphs.article_id AS article_id,
			       paragraphs.text AS text,
			       articles.title AS article_title,
			       articles.slug AS article_slug,
			       0 AS rank
			FROM paragraphs
			JOIN articles ON articles.id = paragraphs.article_id
			WHERE articles.universe_id = ?
			  AND paragraphs.text LIKE '%%' || ? || '%%'
			ORDER BY articles.created_at DESC
			LIMIT %d;
		`, limit)
		if err := txx.WithContext(dbc.Ctx).Raw(sql, universeID, query).Scan(&rows).Error; err != nil {
			return nil, err
		}
	}

	out := make([]ParagraphHit, 0, len(rows))
	for _, rr := range rows {
		out = append(out, ParagraphHit{
			ParagraphID:  rr.ParagraphID,
			ArticleID:    rr.ArticleID,
			ArticleTitle: rr.ArticleTitle,
			ArticleSlug:  rr.ArticleSlug,
			Text:         rr.Text,
			Rank:         rr.Rank,
		})
	}
	return out, nil
}

func (r *paragraphRepo) ListByArticle(dbc dbctx.Context, articleID uuid.UUID) ([]*types.Paragraph, error) {
	if articleID == uuid.Nil {
		return nil, fmt.Errorf("missing article id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Paragraph
	if err := txx.WithContext(dbc.Ctx).
		Where("article_id = ?", articleID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
