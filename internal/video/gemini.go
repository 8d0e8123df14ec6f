// Package video summarizes uploaded videos through the Gemini file API.
package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"agenthub-backend/internal/shared/telemetry"
)

const (
	defaultModel  = "gemini-1.5-flash-latest"
	summaryPrompt = "Analyze this video and provide a comprehensive English summary."
	pollInterval  = time.Second
)

// GeminiClient uploads videos to the Gemini file API, waits for server-side
// processing and asks the model for a summary.
type GeminiClient struct {
	client *genai.Client
	model  string

	// sleep paces the processing poll; swapped out in tests.
	sleep func(time.Duration)
}

// NewGeminiClient constructs a video summarizer backed by Gemini.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing Google API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiClient{client: client, model: defaultModel, sleep: time.Sleep}, nil
}

// SummarizeVideo uploads the video, polls until Gemini finishes processing
// it, then generates the summary.
func (g *GeminiClient) SummarizeVideo(ctx context.Context, fileName string, data []byte, mimeType string) (string, error) {
	file, err := g.client.UploadFile(ctx, "", bytes.NewReader(data), &genai.UploadFileOptions{
		DisplayName: fileName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("upload video %s: %w", fileName, err)
	}

	for file.State == genai.FileStateProcessing {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		g.sleep(pollInterval)
		file, err = g.client.GetFile(ctx, file.Name)
		if err != nil {
			return "", fmt.Errorf("poll video %s: %w", fileName, err)
		}
	}
	if file.State != genai.FileStateActive {
		return "", fmt.Errorf("video %s processing failed: state %v", fileName, file.State)
	}

	telemetry.Info("video.processed", map[string]any{"file": fileName, "uri": file.URI})

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(summaryPrompt),
		genai.FileData{URI: file.URI, MIMEType: file.MIMEType},
	)
	if err != nil {
		return "", fmt.Errorf("summarize video %s: %w", fileName, err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("gemini: no text in response")
	}
	return b.String(), nil
}
