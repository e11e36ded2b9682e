package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

type ArticleRepo interface {
	// CreateIfAbsent inserts the article unless one with the same slug already
	// exists, in which case the insert is silently discarded. First writer
	// wins; the unique index on slug is the only arbiter.
	CreateIfAbsent(dbc dbctx.Context, row *types.Article) error
	GetBySlug(dbc dbctx.Context, universeID uuid.UUID, slug string) (*types.Article, error)
	FirstByUniverse(dbc dbctx.Context, universeID uuid.UUID) (*types.Article, error)
	CountByUniverse(dbc dbctx.Context, universeID uuid.UUID) (int64, error)
}

type articleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArticleRepo(db *gorm.DB, log *logger.Logger) ArticleRepo {
	return &articleRepo{db: db, log: log.With("repo", "ArticleRepo")}
}

func (r *articleRepo) CreateIfAbsent(dbc dbctx.Context, row *types.Article) error {
	if row == nil {
		return fmt.Errorf("missing article")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *articleRepo) GetBySlug(dbc dbctx.Context, universeID uuid.UUID, slug string) (*types.Article, error) {
	if universeID == uuid.Nil {
		return nil, fmt.Errorf("missing universe id")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("missing article slug")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Article
	if err := txx.WithContext(dbc.Ctx).
		First(&out, "universe_id = ? AND slug = ?", universeID, slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *articleRepo) FirstByUniverse(dbc dbctx.Context, universeID uuid.UUID) (*types.Article, error) {
	if universeID == uuid.Nil {
		return nil, fmt.Errorf("missing universe id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Article
	if err := txx.WithContext(dbc.Ctx).
		Where("universe_id = ?", universeID).
		Order("created_at ASC").
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *articleRepo) CountByUniverse(dbc dbctx.Context, universeID uuid.UUID) (int64, error) {
	if universeID == uuid.Nil {
		return 0, fmt.Errorf("missing universe id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var n int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Article{}).
		Where("universe_id = ?", universeID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
