package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

type UniverseRepo interface {
	Create(dbc dbctx.Context, row *types.Universe) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Universe, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Universe, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*types.Universe, error)
}

type universeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUniverseRepo(db *gorm.DB, log *logger.Logger) UniverseRepo {
	return &universeRepo{db: db, log: log.With("repo", "UniverseRepo")}
}

func (r *universeRepo) Create(dbc dbctx.Context, row *types.Universe) error {
	if row == nil {
		return fmt.Errorf("missing universe")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Create(row).Error
}

func (r *universeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Universe, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing universe id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Universe
	if err := txx.WithContext(dbc.Ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *universeRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Universe, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("missing universe slug")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.Universe
	if err := txx.WithContext(dbc.Ctx).First(&out, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *universeRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.Universe, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Universe
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Universe{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
