package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
)

const visionSystemPrompt = `You are an AI specialized in analyzing hotel room images.
Return exactly one JSON object with these fields and possible values:

{
  "room_type":    "single | double | twin | suite | family room | studio | luxury suite | \"\"",
  "max_capacity": integer or null,
  "view_type":    "sea | city | garden | mountain | pool | none | \"\"",
  "features":     ["any visible feature as a string", ...],
  "description":  "A brief paragraph describing the room and visible features."
}

Rules:
- List every feature you can visually confirm in the image.
- Fill only fields you can actually see.
- If you cannot confirm a field, use "" for strings, [] for lists, and null for integers.
- Return only the JSON object, no extra text.`

// unknownCapacity is assumed when the model cannot tell how many people the
// room fits (double occupancy, matching the parser's default).
const unknownCapacity = 2

// Vision analyzes hotel room images with a multimodal chat model.
type Vision struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// VisionConfig holds the vision analyzer settings.
type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewVision creates a vision analyzer.
func NewVision(cfg *VisionConfig) *Vision {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Vision{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// visionRecord mirrors the model's JSON output.
type visionRecord struct {
	RoomType    string   `json:"room_type"`
	MaxCapacity *int     `json:"max_capacity"`
	ViewType    string   `json:"view_type"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

// Analyze extracts a structured room record from the image at the given URL.
// The URL becomes the item id.
func (v *Vision) Analyze(ctx context.Context, imageURL string) (catalog.Item, error) {
	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: visionSystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return catalog.Item{}, fmt.Errorf("vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return catalog.Item{}, fmt.Errorf("empty vision response for %s", imageURL)
	}

	var rec visionRecord
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &rec); err != nil {
		return catalog.Item{}, fmt.Errorf("decode vision record for %s: %w", imageURL, err)
	}

	capacity := unknownCapacity
	if rec.MaxCapacity != nil && *rec.MaxCapacity >= 1 {
		capacity = *rec.MaxCapacity
	}

	item, err := catalog.New(imageURL, rec.RoomType, capacity, rec.ViewType, rec.Features, rec.Description)
	if err != nil {
		return catalog.Item{}, fmt.Errorf("build item for %s: %w", imageURL, err)
	}
	return item, nil
}
