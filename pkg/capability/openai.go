package capability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client using the official openai-go SDK
// (chat completions). BaseURL allows pointing at compatible endpoints.
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient creates an OpenAIClient. APIKey and model are required;
// baseURL is optional.
func NewOpenAIClient(model, apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key required")
	}
	if model == "" {
		return nil, errors.New("openai model required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{model: model, opts: opts}, nil
}

// Name returns "openai/<model>".
func (c *OpenAIClient) Name() string {
	return "openai/" + c.model
}

// Invoke performs a single chat completion with the prompt as the user message.
func (c *OpenAIClient) Invoke(ctx context.Context, prompt string, params Params) (string, error) {
	client := openai.NewClient(c.opts...)

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxCompletionTokens = openai.Int(int64(params.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}
