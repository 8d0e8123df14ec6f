package education

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agenthub-backend/internal/llm"
	"agenthub-backend/internal/search"
	"agenthub-backend/internal/shared/telemetry"
)

const defaultModel = "llama-3.3-70b-versatile"

// educationDomains is the allowlist applied to every resource search.
var educationDomains = []string{
	"github.com", "arxiv.org", "youtube.com", "coursera.org",
	"reddit.com", "stackoverflow.com", "medium.com",
	"towardsdatascience.com", "kaggle.com", "udemy.com",
	"edx.org", "pluralsight.com", "freecodecamp.org",
	"w3schools.com", "geeksforgeeks.org", "tutorialspoint.com",
}

const categorizeSystemPrompt = "You are a helpful assistant that categorizes academic resources."
const answerSystemPrompt = "You are a helpful educational assistant that provides clear and accurate answers."

// Service finds and explains educational resources.
type Service struct {
	LLM    llm.Client
	Tavily search.TavilySearcher
	Model  string
}

// NewService constructs an education Service.
func NewService(llmClient llm.Client, tavily search.TavilySearcher, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{LLM: llmClient, Tavily: tavily, Model: model}
}

// SearchResources searches the curated education domains for a topic and
// returns categorized resources. A model response that does not parse as
// JSON yields an empty object rather than an error.
func (s *Service) SearchResources(ctx context.Context, topic string) (map[string]any, error) {
	resp, err := s.Tavily.Search(ctx, search.TavilyQuery{
		Query:          fmt.Sprintf("%s academic resources tutorials courses papers", topic),
		SearchDepth:    "advanced",
		IncludeAnswer:  true,
		IncludeDomains: educationDomains,
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\nSearch Results:\n", topic)
	for i, result := range resp.Results {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", result.Title, result.URL)
	}

	prompt := fmt.Sprintf(`Analyze these search results for the topic '%s' and categorize them into the following categories:
1. Blogs & Articles
2. Tutorials
3. YouTube Videos
4. Online Courses
5. Research Papers
6. Books & PDFs
7. Communities & Forums
8. Practice & Projects

For each category, provide a list of relevant resources with their titles and URLs.
Format the response as a JSON object with these categories as keys.
Only include categories that have relevant resources.
Ensure all URLs are valid and accessible.

Search Results:
%s`, topic, b.String())

	completion, err := s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		System:      categorizeSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}
	return extractJSON(completion), nil
}

// AnswerQuestion answers a question about a topic with search context.
func (s *Service) AnswerQuestion(ctx context.Context, topic, question string) (string, error) {
	resp, err := s.Tavily.Search(ctx, search.TavilyQuery{
		Query:          fmt.Sprintf("%s %s", topic, question),
		SearchDepth:    "advanced",
		IncludeAnswer:  true,
		IncludeDomains: educationDomains,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\nQuestion: %s\n\nRelevant Information:\n", topic, question)
	for i, result := range resp.Results {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", result.Title, result.URL)
	}

	prompt := fmt.Sprintf(`Based on the following information about %s, please answer this question: %s

Provide a clear, concise, and informative answer. Include relevant details and examples when possible.
If you're not sure about something, please say so.
Structure your answer with:
1. A direct answer to the question
2. Key points or steps
3. Examples or use cases
4. Additional resources for learning more

Context:
%s`, topic, question, b.String())

	return s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		System:      answerSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

// extractJSON pulls the outermost JSON object out of a model response.
// Anything that fails to parse becomes an empty object.
func extractJSON(text string) map[string]any {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return map[string]any{}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		telemetry.Warn("education.categorize_parse_failed", map[string]any{"error": err.Error()})
		return map[string]any{}
	}
	return out
}
