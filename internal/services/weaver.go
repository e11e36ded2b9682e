package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	aiclient "github.com/fictiverse/fictiverse-backend/internal/clients/openai"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
	"github.com/fictiverse/fictiverse-backend/internal/textstream"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

const (
	minWovenNameLen = 4
	maxWovenNameLen = 50

	// At most this many prior articles are fed back into a new article's
	// prompt for lore continuity.
	maxContextArticles = 10
)

// WeaverService drives the generative capability: universe names, first
// article titles and full article bodies. Provider failures are returned as
// is and never retried here; a retry could persist or index the same article
// twice.
type WeaverService interface {
	WeaveUniverseName(ctx context.Context, prompt string) (string, error)
	WeaveFirstArticleTitle(ctx context.Context, verse *types.Universe) (string, error)

	// WeaveWikiArticle starts generating an article body and returns the
	// stream immediately. The stream is closed (or failed) when generation
	// ends; every reader obtained from it replays all chunks from the start.
	WeaveWikiArticle(ctx context.Context, verse *types.Universe, title string) (*textstream.Stream, error)
}

type weaverService struct {
	log    *logger.Logger
	ai     aiclient.Client
	search SearchService
}

func NewWeaverService(log *logger.Logger, ai aiclient.Client, search SearchService) WeaverService {
	return &weaverService{
		log:    log.With("service", "WeaverService"),
		ai:     ai,
		search: search,
	}
}

func (s *weaverService) WeaveUniverseName(ctx context.Context, prompt string) (string, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"universe_name": {
				Type:        jsonschema.String,
				Description: "A fictional universe name of 4 to 50 characters.",
			},
			"inappropriate_prompt": {
				Type:        jsonschema.Boolean,
				Description: "True when the prompt is hateful, sexual, violent or otherwise unsuitable as the seed of a fictional universe.",
			},
		},
		Required:             []string{"universe_name", "inappropriate_prompt"},
		AdditionalProperties: false,
	}

	var out struct {
		UniverseName        string `json:"universe_name"`
		InappropriatePrompt bool   `json:"inappropriate_prompt"`
	}
	user := fmt.Sprintf(`Generate a name for a universe based on the following prompt: "%s"`, prompt)
	if err := s.ai.GenerateJSON(ctx, "", user, "universe_name", schema, &out); err != nil {
		return "", fmt.Errorf("weave universe name: %w", err)
	}
	if out.InappropriatePrompt {
		return "", apperr.ErrContentRejected
	}
	name := strings.TrimSpace(out.UniverseName)
	if len(name) < minWovenNameLen || len(name) > maxWovenNameLen {
		return "", fmt.Errorf("weave universe name: generated name %q outside 4-50 character bounds", name)
	}
	return name, nil
}

func (s *weaverService) WeaveFirstArticleTitle(ctx context.Context, verse *types.Universe) (string, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {
				Type:        jsonschema.String,
				Description: "An in-lore encyclopedia article title of 4 to 50 characters.",
			},
		},
		Required:             []string{"title"},
		AdditionalProperties: false,
	}

	var out struct {
		Title string `json:"title"`
	}
	user := fmt.Sprintf(
		`Generate a title for an article of a wiki within the universe "%s" based on its themes and lore. Here is a brief description of this universe: "%s". Invent any concept, event, place, object, character or so on that could warrant an encyclopedia article within that universe, and return the article's title. The title should be concise and fitting of a fictional encyclopedia.`,
		verse.Name, verse.Prompt,
	)
	if err := s.ai.GenerateJSON(ctx, "", user, "article_title", schema, &out); err != nil {
		return "", fmt.Errorf("weave first article title: %w", err)
	}
	title := strings.TrimSpace(out.Title)
	if len(title) < minWovenNameLen || len(title) > maxWovenNameLen {
		return "", fmt.Errorf("weave first article title: generated title %q outside 4-50 character bounds", title)
	}
	return title, nil
}

const articleSystemPrompt = `You're an encyclopedia from a fictional universe.`

func (s *weaverService) WeaveWikiArticle(ctx context.Context, verse *types.Universe, title string) (*textstream.Stream, error) {
	results, err := s.search.SearchArticles(ctx, verse.ID, title)
	if err != nil {
		return nil, fmt.Errorf("retrieve continuity context: %w", err)
	}
	if len(results) > maxContextArticles {
		results = results[:maxContextArticles]
	}

	user := buildArticlePrompt(verse, title, results)

	stream := textstream.New()
	go func() {
		if _, err := s.ai.StreamText(ctx, articleSystemPrompt, user, stream.Append); err != nil {
			s.log.Error("Article generation failed", "universe", verse.Slug, "title", title, "error", err)
			stream.Fail(err)
			return
		}
		stream.Close()
	}()
	return stream, nil
}

func buildArticlePrompt(verse *types.Universe, title string, context []SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Write a detailed article about "%s" as if it were a real historical event, place, object, cultural phenomenon or concept in the universe "%s".

`, title, verse.Name)

	if len(context) > 0 {
		b.WriteString("The following articles have already been written in this universe. Keep new lore consistent with them:\n\n")
		for _, result := range context {
			fmt.Fprintf(&b, "From the article \"%s\":\n", result.Article.Title)
			for _, p := range result.Paragraphs {
				fmt.Fprintf(&b, "> %s\n", p.Text)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(`- Maintain a formal, Wikipedia-like tone.
- Feel free to fabricate locations, names, timelines, and organizations.
- Within the article content, wrap these invented names using double brackets like [[Other Article Name]]. These will be automatically turned into links.
- Use at least 5 such references, but no more than 30.
- Use markdown formatting for headings, lists, and emphasis.
- Print the title of the article without any alteration.
- Write an article of at least 500 words.
- Keep internal logic and continuity consistent.
- Avoid real-world facts unless twisted into the fiction.

Begin the article now:`)
	return b.String()
}
