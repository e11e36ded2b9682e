package services

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/dbctx"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/repos"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

const (
	// Paragraphs at or below this cleaned length are just titles or stray
	// lines, not meaningful search content.
	minIndexableParagraphLen = 70

	searchParagraphLimit = 15
	minQueryRunes        = 3
)

type ArticleSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type ParagraphExcerpt struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// SearchResult groups the matched paragraphs of one article, best-ranked
// article first.
type SearchResult struct {
	Article    ArticleSummary     `json:"article"`
	Paragraphs []ParagraphExcerpt `json:"paragraphs"`
}

type SearchService interface {
	// IndexArticle cuts the article body into indexable paragraphs and stores
	// them. Not idempotent: calling it twice for the same article duplicates
	// search results, so it must run exactly once per committed article.
	IndexArticle(ctx context.Context, article *types.Article) error

	// SearchArticles runs a relevance search over indexed paragraphs within
	// one universe and groups the top hits by owning article.
	SearchArticles(ctx context.Context, universeID uuid.UUID, query string) ([]SearchResult, error)
}

type searchService struct {
	log        *logger.Logger
	paragraphs repos.ParagraphRepo
}

func NewSearchService(log *logger.Logger, paragraphs repos.ParagraphRepo) SearchService {
	return &searchService{
		log:        log.With("service", "SearchService"),
		paragraphs: paragraphs,
	}
}

var (
	linkTargetRe = regexp.MustCompile(`\]\(.+\)`)
	bulletRe     = regexp.MustCompile(` *- `)
	bracketRe    = regexp.MustCompile(`[\[\]]`)
	mdMarkRe     = regexp.MustCompile(`[_#*~]`)
)

// cutParagraphsForIndexing splits an article body on blank lines and cleans
// each block for indexing: markdown link targets, bullet markers, wiki
// bracket markup and emphasis/heading/strikethrough characters are stripped,
// and blocks that clean down to 70 characters or fewer are dropped. Order is
// preserved.
func cutParagraphsForIndexing(articleText string) []string {
	out := []string{}
	for _, p := range strings.Split(articleText, "\n\n") {
		p = strings.TrimSpace(p)
		p = linkTargetRe.ReplaceAllString(p, "")
		p = bulletRe.ReplaceAllString(p, "")
		p = bracketRe.ReplaceAllString(p, "")
		p = mdMarkRe.ReplaceAllString(p, "")
		p = strings.TrimSpace(p)
		if len(p) > minIndexableParagraphLen {
			out = append(out, p)
		}
	}
	return out
}

func (s *searchService) IndexArticle(ctx context.Context, article *types.Article) error {
	paras := cutParagraphsForIndexing(article.Text)
	rows := make([]*types.Paragraph, 0, len(paras))
	for _, p := range paras {
		rows = append(rows, &types.Paragraph{
			ID:        uuid.New(),
			ArticleID: article.ID,
			Text:      p,
		})
	}
	if err := s.paragraphs.Create(dbctx.New(ctx), rows); err != nil {
		return err
	}
	s.log.Debug("Indexed article paragraphs", "article_id", article.ID, "count", len(rows))
	return nil
}

func meaningfulRunes(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func (s *searchService) SearchArticles(ctx context.Context, universeID uuid.UUID, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if meaningfulRunes(query) < minQueryRunes {
		return []SearchResult{}, nil
	}

	hits, err := s.paragraphs.SearchTop(dbctx.New(ctx), universeID, query, searchParagraphLimit)
	if err != nil {
		return nil, err
	}

	results := []SearchResult{}
	byArticle := map[uuid.UUID]int{}
	for _, hit := range hits {
		idx, ok := byArticle[hit.ArticleID]
		if !ok {
			idx = len(results)
			byArticle[hit.ArticleID] = idx
			results = append(results, SearchResult{
				Article: ArticleSummary{
					ID:    hit.ArticleID,
					Title: hit.ArticleTitle,
					Slug:  hit.ArticleSlug,
				},
			})
		}
		results[idx].Paragraphs = append(results[idx].Paragraphs, ParagraphExcerpt{
			ID:   hit.ParagraphID,
			Text: hit.Text,
		})
	}
	return results, nil
}
