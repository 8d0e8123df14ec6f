package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient implements Client against the Groq OpenAI-compatible API.
type GroqClient struct {
	api          *openai.Client
	defaultModel string
}

// NewGroqClient constructs a GroqClient. baseURL may be empty for the Groq default.
func NewGroqClient(apiKey, baseURL, defaultModel string) (*GroqClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if strings.TrimSpace(defaultModel) == "" {
		return nil, fmt.Errorf("CHAT_MODEL is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	} else {
		cfg.BaseURL = defaultGroqBaseURL
	}
	return &GroqClient{
		api:          openai.NewClientWithConfig(cfg),
		defaultModel: defaultModel,
	}, nil
}

// Complete sends one chat completion and returns the first choice's content.
func (c *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if strings.TrimSpace(model) == "" {
		model = c.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion model=%s: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion model=%s: response missing choices", model)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion model=%s: empty content", model)
	}
	logUsage(model, resp.Usage)
	return content, nil
}

func logUsage(model string, usage openai.Usage) {
	log.Printf("llm response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ Client = (*GroqClient)(nil)
