package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/query"
)

const parserSystemPrompt = `You are a hotel room search assistant.
Return exactly one JSON object with these fields and allowed values:

{
  "room_type":    "single | double | twin | suite | family room | studio | luxury suite | \"\"",
  "max_capacity": integer or null,
  "view_type":    "sea | city | garden | mountain | pool | street | none | \"\"",
  "features":     ["any amenity explicitly mentioned by the user", ...]
}

Rules:
- ONLY include values the user explicitly mentioned.
- For any field the user did not mention, use "" (strings), null (integers), or [] (lists).
- The features array must list only the exact amenities the user named; do not invent extras.
- Return only the JSON object, no extra text.`

// Parser turns free-text queries into structured queries via a chat
// completion with a JSON response format.
type Parser struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// ParserConfig holds the query parser settings.
type ParserConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewParser creates an LLM-backed query parser.
func NewParser(cfg *ParserConfig) *Parser {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Parser{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// parsedQuery mirrors the model's JSON output.
type parsedQuery struct {
	RoomType    string   `json:"room_type"`
	MaxCapacity *int     `json:"max_capacity"`
	ViewType    string   `json:"view_type"`
	Features    []string `json:"features"`
}

// Parse converts user text into a structured query. The user's original text
// always becomes the query's raw text for the semantic channel. When the
// model call or its output fails, the parser falls back to a raw-text-only
// query so semantic search still works.
func (p *Parser) Parse(ctx context.Context, text string) (query.Query, error) {
	parsed, err := p.complete(ctx, text)
	if err != nil {
		p.logger.Warn("Query parsing degraded to raw text only", zap.Error(err))
		return query.New(text, "", 0, "", nil)
	}

	capacity := 0
	if parsed.MaxCapacity != nil {
		capacity = *parsed.MaxCapacity
	}
	return query.New(text, parsed.RoomType, capacity, parsed.ViewType, parsed.Features)
}

func (p *Parser) complete(ctx context.Context, text string) (parsedQuery, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parserSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return parsedQuery{}, fmt.Errorf("parse query completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return parsedQuery{}, fmt.Errorf("empty parse response")
	}

	var parsed parsedQuery
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return parsedQuery{}, fmt.Errorf("decode parsed query: %w", err)
	}
	return parsed, nil
}
