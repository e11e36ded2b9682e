package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/apperr"
	"github.com/fictiverse/fictiverse-backend/internal/repos/testutil"
	"github.com/fictiverse/fictiverse-backend/internal/types"
)

// fakeAI scripts the provider: GenerateJSON replies with a fixed JSON blob,
// StreamText replays fixed chunks through onDelta.
type fakeAI struct {
	jsonOut      string
	jsonErr      error
	streamChunks []string
	streamErr    error

	lastUser   string
	lastSystem string
	lastSchema string
}

func (f *fakeAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema *jsonschema.Definition, out any) error {
	f.lastSystem = system
	f.lastUser = user
	f.lastSchema = schemaName
	if f.jsonErr != nil {
		return f.jsonErr
	}
	return json.Unmarshal([]byte(f.jsonOut), out)
}

func (f *fakeAI) GenerateText(ctx context.Context, system, user string) (string, error) {
	return strings.Join(f.streamChunks, ""), nil
}

func (f *fakeAI) StreamText(ctx context.Context, system, user string, onDelta func(string)) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	var full strings.Builder
	for _, chunk := range f.streamChunks {
		if onDelta != nil {
			onDelta(chunk)
		}
		full.WriteString(chunk)
	}
	if f.streamErr != nil {
		return "", f.streamErr
	}
	return full.String(), nil
}

type fakeSearch struct {
	results []SearchResult
	indexed []*types.Article
}

func (f *fakeSearch) IndexArticle(ctx context.Context, article *types.Article) error {
	f.indexed = append(f.indexed, article)
	return nil
}

func (f *fakeSearch) SearchArticles(ctx context.Context, universeID uuid.UUID, query string) ([]SearchResult, error) {
	return f.results, nil
}

func TestWeaveUniverseName(t *testing.T) {
	ai := &fakeAI{jsonOut: `{"universe_name":"  Datawood Realm  ","inappropriate_prompt":false}`}
	svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{})

	name, err := svc.WeaveUniverseName(context.Background(), "A land where trees are used for data storage")
	require.NoError(t, err)
	assert.Equal(t, "Datawood Realm", name)
	assert.Contains(t, ai.lastUser, `"A land where trees are used for data storage"`)
	assert.Equal(t, "universe_name", ai.lastSchema)
}

func TestWeaveUniverseNameRejectsInappropriatePrompt(t *testing.T) {
	ai := &fakeAI{jsonOut: `{"universe_name":"Whatever Name","inappropriate_prompt":true}`}
	svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{})

	_, err := svc.WeaveUniverseName(context.Background(), "something unsavory")
	assert.ErrorIs(t, err, apperr.ErrContentRejected)
}

func TestWeaveUniverseNameBounds(t *testing.T) {
	cases := []string{
		"abc", // 3 chars
		strings.Repeat("x", 51),
		"   ", // trims to empty
	}
	for _, generated := range cases {
		ai := &fakeAI{jsonOut: fmt.Sprintf(`{"universe_name":%q,"inappropriate_prompt":false}`, generated)}
		svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{})

		_, err := svc.WeaveUniverseName(context.Background(), "a perfectly reasonable prompt")
		require.Error(t, err, "generated name %q should be rejected", generated)
		assert.NotErrorIs(t, err, apperr.ErrContentRejected)
	}
}

func TestWeaveUniverseNamePropagatesProviderError(t *testing.T) {
	provider := errors.New("provider down")
	ai := &fakeAI{jsonErr: provider}
	svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{})

	_, err := svc.WeaveUniverseName(context.Background(), "a perfectly reasonable prompt")
	assert.ErrorIs(t, err, provider)
}

func TestWeaveFirstArticleTitle(t *testing.T) {
	ai := &fakeAI{jsonOut: `{"title":"The Sunken Archive"}`}
	svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{})

	verse := &types.Universe{ID: uuid.New(), Name: "Datawood Realm", Prompt: "trees store data"}
	title, err := svc.WeaveFirstArticleTitle(context.Background(), verse)
	require.NoError(t, err)
	assert.Equal(t, "The Sunken Archive", title)
	assert.Contains(t, ai.lastUser, `"Datawood Realm"`)
	assert.Contains(t, ai.lastUser, `"trees store data"`)
}

func TestWeaveWikiArticleStreams(t *testing.T) {
	ai := &fakeAI{streamChunks: []string{"# Ancient Ruins\n\n", "The ruins stood ", "for a thousand years."}}
	search := &fakeSearch{
		results: []SearchResult{
			{
				Article: ArticleSummary{ID: uuid.New(), Title: "Datawood Trees", Slug: "datawood-trees"},
				Paragraphs: []ParagraphExcerpt{
					{ID: uuid.New(), Text: "The groves stored the realm's archives."},
				},
			},
		},
	}
	svc := NewWeaverService(testutil.Logger(t), ai, search)

	verse := &types.Universe{ID: uuid.New(), Name: "Datawood Realm", Slug: "datawood-realm", Prompt: "trees store data"}
	stream, err := svc.WeaveWikiArticle(context.Background(), verse, "Ancient Ruins")
	require.NoError(t, err)

	text, err := stream.Reader().ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "# Ancient Ruins\n\nThe ruins stood for a thousand years.", text)

	// The prompt embeds the title, the universe and the continuity excerpts.
	assert.Contains(t, ai.lastUser, `"Ancient Ruins"`)
	assert.Contains(t, ai.lastUser, `"Datawood Realm"`)
	assert.Contains(t, ai.lastUser, `From the article "Datawood Trees":`)
	assert.Contains(t, ai.lastUser, "> The groves stored the realm's archives.")
	assert.Contains(t, ai.lastUser, "[[Other Article Name]]")
	assert.Equal(t, articleSystemPrompt, ai.lastSystem)
}

func TestWeaveWikiArticleCapsContext(t *testing.T) {
	var results []SearchResult
	for i := 0; i < maxContextArticles+3; i++ {
		results = append(results, SearchResult{
			Article: ArticleSummary{ID: uuid.New(), Title: fmt.Sprintf("Context Article %02d", i), Slug: fmt.Sprintf("context-article-%02d", i)},
			Paragraphs: []ParagraphExcerpt{
				{ID: uuid.New(), Text: "an excerpt"},
			},
		})
	}
	ai := &fakeAI{streamChunks: []string{"body"}}
	svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{results: results})

	verse := &types.Universe{ID: uuid.New(), Name: "Datawood Realm", Prompt: "trees store data"}
	stream, err := svc.WeaveWikiArticle(context.Background(), verse, "Ancient Ruins")
	require.NoError(t, err)
	_, err = stream.Reader().ReadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, maxContextArticles, strings.Count(ai.lastUser, "From the article"))
	assert.Contains(t, ai.lastUser, "Context Article 09")
	assert.NotContains(t, ai.lastUser, "Context Article 10")
}

func TestWeaveWikiArticleFailsStreamOnProviderError(t *testing.T) {
	provider := errors.New("stream cut short")
	ai := &fakeAI{streamChunks: []string{"partial "}, streamErr: provider}
	svc := NewWeaverService(testutil.Logger(t), ai, &fakeSearch{})

	verse := &types.Universe{ID: uuid.New(), Name: "Datawood Realm", Prompt: "trees store data"}
	stream, err := svc.WeaveWikiArticle(context.Background(), verse, "Ancient Ruins")
	require.NoError(t, err)

	_, err = stream.Reader().ReadAll(context.Background())
	assert.ErrorIs(t, err, provider)
}
