package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
)

// Client is the generative text capability used by the rest of the backend.
// Exactly three operation shapes: structured-object generation, complete
// free-text generation, and streamed free-text generation.
type Client interface {
	// GenerateJSON asks for a structured object matching schema and decodes
	// the model output into out.
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema *jsonschema.Definition, out any) error

	// GenerateText returns the complete text for a prompt.
	GenerateText(ctx context.Context, system string, user string) (string, error)

	// StreamText delivers output fragments through onDelta as they arrive and
	// returns the full text once the stream ends.
	StreamText(ctx context.Context, system string, user string, onDelta func(delta string)) (string, error)
}

type client struct {
	log   *logger.Logger
	api   *openai.Client
	model string
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &client{
		log:   log.With("service", "OpenAIClient"),
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema *jsonschema.Definition, out any) error {
	if schemaName == "" {
		return errors.New("schemaName required")
	}
	if schema == nil {
		return errors.New("schema required")
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages(system, user),
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return errors.New("openai returned no choices")
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return fmt.Errorf("model refused: %s", msg.Refusal)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return errors.New("empty structured response")
	}
	if err := json.Unmarshal([]byte(msg.Content), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w; text=%s", err, msg.Content)
	}
	return nil
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages(system, user),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *client) StreamText(ctx context.Context, system string, user string, onDelta func(delta string)) (string, error) {
	stream, err := c.api.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages(system, user),
		Stream:   true,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat stream: %w", err)
	}
	defer stream.Close()

	var full strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("openai stream recv: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}
}

func messages(system string, user string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(system) != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: user})
	return msgs
}
