package healthcare

import (
	"context"

	"agenthub-backend/internal/llm"
)

const defaultModel = "llama-3.3-70b-versatile"

// Service answers health questions through the chat model.
type Service struct {
	LLM   llm.Client
	Model string
}

// NewService constructs a healthcare Service.
func NewService(llmClient llm.Client, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{LLM: llmClient, Model: model}
}

func (s *Service) complete(ctx context.Context, system, prompt string) (string, error) {
	return s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		System:      system,
		Prompt:      prompt,
		Temperature: 0.7,
	})
}

// AnalyzeSymptoms gives general advice for a symptom description.
func (s *Service) AnalyzeSymptoms(ctx context.Context, symptoms string) (string, error) {
	return s.complete(ctx, symptomSystemPrompt, symptoms)
}

// WellnessTip produces a daily wellness tip.
func (s *Service) WellnessTip(ctx context.Context) (string, error) {
	return s.complete(ctx, wellnessSystemPrompt, wellnessUserPrompt)
}

// AnswerHealthQuestion answers a free-form health question.
func (s *Service) AnswerHealthQuestion(ctx context.Context, query string) (string, error) {
	return s.complete(ctx, questionSystemPrompt, query)
}
