// Package openai implements llm.Client on top of the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"cvsec-backend/internal/llm"
	"cvsec-backend/internal/shared/telemetry"
)

const maxCompletionTokens = 8192

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &c, model: model}, nil
}

// AnalyzeCV runs one chat completion and returns the raw JSON content. A
// repair request on the context replaces the analysis prompt with a
// fix-this-output prompt.
func (c *Client) AnalyzeCV(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	system, user := llm.BuildPrompt(input)
	if repair, ok := llm.RepairFromContext(ctx); ok {
		user = llm.BuildRepairPrompt(repair)
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model: openai.ChatModel(c.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0),
		MaxTokens:   openai.Int(maxCompletionTokens),
	})
	if err != nil {
		return nil, translateError(err)
	}

	if len(completion.Choices) == 0 {
		return nil, &llm.UpstreamError{StatusCode: 502, Message: "response missing choices"}
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, &llm.UpstreamError{StatusCode: 502, Message: "response empty content"}
	}

	if usage := completion.Usage; usage.TotalTokens > 0 {
		telemetry.Debug("llm.usage", map[string]any{
			"model":             c.model,
			"prompt_tokens":     usage.PromptTokens,
			"completion_tokens": usage.CompletionTokens,
			"total_tokens":      usage.TotalTokens,
		})
	}

	return json.RawMessage(content), nil
}

// translateError maps SDK errors to the typed upstream error so callers can
// classify transient vs permanent without knowing the provider. Context and
// transport errors pass through unchanged.
func translateError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &llm.UpstreamError{
			StatusCode: apiErr.StatusCode,
			Message:    strings.TrimSpace(apiErr.Message),
		}
	}
	return err
}

var _ llm.Client = (*Client)(nil)
