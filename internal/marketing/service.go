package marketing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agenthub-backend/internal/llm"
	"agenthub-backend/internal/search"
	"agenthub-backend/internal/shared/telemetry"
	"agenthub-backend/internal/webpage"
)

const (
	defaultModel     = "mistral-saba-24b"
	defaultTone      = "professional"
	defaultTimeframe = "past_month"
	searchPacing     = time.Second
)

// Service implements the marketing automation operations.
type Service struct {
	LLM   llm.Client
	Serp  search.SerpSearcher
	Pages webpage.Fetcher
	Model string

	// sleep paces consecutive searches; swapped out in tests.
	sleep func(time.Duration)
}

// NewService constructs a marketing Service.
func NewService(llmClient llm.Client, serp search.SerpSearcher, pages webpage.Fetcher, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{LLM: llmClient, Serp: serp, Pages: pages, Model: model, sleep: time.Sleep}
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	return s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

// SEOReport is the result of a single-page SEO analysis.
type SEOReport struct {
	URL             string   `json:"url"`
	CurrentTitle    string   `json:"current_title"`
	CurrentMeta     string   `json:"current_meta"`
	CurrentH1       []string `json:"current_h1"`
	Recommendations string   `json:"recommendations"`
}

// AnalyzeSEO fetches a page, extracts its SEO elements and asks the model
// for optimization recommendations.
func (s *Service) AnalyzeSEO(ctx context.Context, url string, keywords []string) (SEOReport, error) {
	elements, err := s.Pages.FetchSEOElements(ctx, url)
	if err != nil {
		return SEOReport{}, err
	}

	prompt := seoPrompt(url, elements.Title, elements.MetaDescription,
		strings.Join(elements.H1Tags, ", "), strings.Join(keywords, ", "))
	recommendations, err := s.complete(ctx, prompt)
	if err != nil {
		return SEOReport{}, err
	}

	h1 := elements.H1Tags
	if h1 == nil {
		h1 = []string{}
	}
	return SEOReport{
		URL:             url,
		CurrentTitle:    elements.Title,
		CurrentMeta:     elements.MetaDescription,
		CurrentH1:       h1,
		Recommendations: recommendations,
	}, nil
}

// CompetitorReport is the per-competitor search snapshot plus analysis.
type CompetitorReport struct {
	Rankings search.SerpResponse `json:"rankings"`
	Analysis string              `json:"analysis"`
}

// AnalyzeCompetitors looks each competitor up on Google and analyzes its
// market position, pacing lookups one second apart.
func (s *Service) AnalyzeCompetitors(ctx context.Context, competitors, keywords []string) (map[string]CompetitorReport, error) {
	out := make(map[string]CompetitorReport, len(competitors))
	for i, competitor := range competitors {
		rankings, err := s.Serp.Search(ctx, search.SerpQuery{Query: competitor, Num: 10})
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", competitor, err)
		}
		if i < len(competitors)-1 {
			s.sleep(searchPacing)
		}

		analysis, err := s.complete(ctx, competitorPrompt(competitor, strings.Join(keywords, ", ")))
		if err != nil {
			return nil, err
		}
		out[competitor] = CompetitorReport{Rankings: rankings, Analysis: analysis}
	}
	return out, nil
}

// ProductRecommendations is the output of the recommendation engine.
type ProductRecommendations struct {
	CustomerID      any    `json:"customer_id"`
	Recommendations string `json:"recommendations"`
}

// RecommendProducts generates personalized product recommendations.
func (s *Service) RecommendProducts(ctx context.Context, customerData map[string]any) (ProductRecommendations, error) {
	recommendations, err := s.complete(ctx, recommendationPrompt(formatData(customerData)))
	if err != nil {
		return ProductRecommendations{}, err
	}
	return ProductRecommendations{
		CustomerID:      customerData["customer_id"],
		Recommendations: recommendations,
	}, nil
}

// Post is one generated social media post.
type Post struct {
	Platform  string `json:"platform"`
	Content   string `json:"content"`
	Topic     string `json:"topic"`
	CreatedAt string `json:"created_at"`
}

// CreateContent generates a social media post for the given platform.
func (s *Service) CreateContent(ctx context.Context, topic, platform, tone string) (Post, error) {
	if tone == "" {
		tone = defaultTone
	}
	content, err := s.complete(ctx, postPrompt(topic, platform, tone))
	if err != nil {
		return Post{}, err
	}
	return Post{
		Platform:  platform,
		Content:   content,
		Topic:     topic,
		CreatedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// Segment is one audience segment in an email campaign.
type Segment struct {
	SegmentName     string `json:"segment_name"`
	Characteristics string `json:"characteristics"`
}

// EmailTemplate is the generated campaign material for one segment.
type EmailTemplate struct {
	Content      string   `json:"content"`
	SubjectLines []string `json:"subject_lines"`
	SendTime     string   `json:"send_time"`
}

// CreateEmailCampaign builds campaign content per audience segment.
func (s *Service) CreateEmailCampaign(ctx context.Context, campaignType string, audience []Segment) (map[string]EmailTemplate, error) {
	out := make(map[string]EmailTemplate, len(audience))
	for _, segment := range audience {
		content, err := s.complete(ctx, emailPrompt(campaignType, formatSegment(segment)))
		if err != nil {
			return nil, err
		}
		subjects, err := s.complete(ctx, subjectLinesPrompt(campaignType, segment.SegmentName))
		if err != nil {
			return nil, err
		}
		out[segment.SegmentName] = EmailTemplate{
			Content:      content,
			SubjectLines: strings.Split(subjects, "\n"),
			SendTime:     OptimizeSendTime(segment),
		}
	}
	return out, nil
}

// OptimizeSendTime picks a send time for a segment by its characteristics.
func OptimizeSendTime(segment Segment) string {
	switch segment.Characteristics {
	case "first_time_buyers":
		return "14:00 PM"
	case "repeat_buyers":
		return "09:00 AM"
	default:
		return "10:00 AM"
	}
}

// SentimentReport is the brand sentiment analysis output.
type SentimentReport struct {
	Brand     string              `json:"brand"`
	Timeframe string              `json:"timeframe"`
	Analysis  string              `json:"analysis"`
	RawData   search.SerpResponse `json:"raw_data"`
}

// AnalyzeSentiment searches for brand mentions and analyzes perception.
func (s *Service) AnalyzeSentiment(ctx context.Context, brandName, timeframe string) (SentimentReport, error) {
	if timeframe == "" {
		timeframe = defaultTimeframe
	}

	query := fmt.Sprintf("%s reviews OR mentions OR feedback site:twitter.com OR site:linkedin.com", brandName)
	results, err := s.Serp.Search(ctx, search.SerpQuery{Query: query, Num: 20, Timeframe: timeframe})
	if err != nil {
		return SentimentReport{}, err
	}

	analysis, err := s.complete(ctx, sentimentPrompt(brandName, formatData(results.OrganicResults)))
	if err != nil {
		return SentimentReport{}, err
	}
	return SentimentReport{
		Brand:     brandName,
		Timeframe: timeframe,
		Analysis:  analysis,
		RawData:   results,
	}, nil
}

// PerformancePrediction is the predicted performance for a piece of content.
type PerformancePrediction struct {
	Platform       string `json:"platform"`
	ContentPreview string `json:"content_preview"`
	Prediction     string `json:"prediction"`
}

// PredictContentPerformance estimates how content will perform on a platform.
func (s *Service) PredictContentPerformance(ctx context.Context, content, platform string) (PerformancePrediction, error) {
	prediction, err := s.complete(ctx, performancePrompt(content, platform))
	if err != nil {
		return PerformancePrediction{}, err
	}
	return PerformancePrediction{
		Platform:       platform,
		ContentPreview: preview(content),
		Prediction:     prediction,
	}, nil
}

// PriceReport is the output of a competitor price check.
type PriceReport struct {
	ProductURL string            `json:"product_url"`
	Prices     map[string]string `json:"prices"`
	Analysis   string            `json:"analysis"`
}

// MonitorPrices scrapes the product and competitor pages for prices and
// analyzes the pricing position. Per-page failures are recorded as status
// strings, they never fail the whole check.
func (s *Service) MonitorPrices(ctx context.Context, productURL string, competitors []string) (PriceReport, error) {
	prices := map[string]string{
		"main_product": s.fetchPrice(ctx, productURL),
	}
	for _, competitor := range competitors {
		prices[competitor] = s.fetchPrice(ctx, competitor)
	}

	analysis, err := s.complete(ctx, pricePrompt(prices["main_product"], formatData(prices)))
	if err != nil {
		return PriceReport{}, err
	}
	return PriceReport{ProductURL: productURL, Prices: prices, Analysis: analysis}, nil
}

func (s *Service) fetchPrice(ctx context.Context, pageURL string) string {
	price, err := s.Pages.FetchPrice(ctx, pageURL)
	switch {
	case err == nil:
		return price
	case err == webpage.ErrPriceNotFound:
		return "Price not found"
	default:
		telemetry.Warn("marketing.price_fetch_failed", map[string]any{"url": pageURL, "error": err.Error()})
		return fmt.Sprintf("Error: %s", err.Error())
	}
}

// JourneyMap is the customer journey analysis output.
type JourneyMap struct {
	CustomerID any    `json:"customer_id"`
	JourneyMap string `json:"journey_map"`
}

// MapCustomerJourney analyzes the touchpoints in a customer's data.
func (s *Service) MapCustomerJourney(ctx context.Context, customerData map[string]any) (JourneyMap, error) {
	analysis, err := s.complete(ctx, journeyPrompt(formatData(customerData)))
	if err != nil {
		return JourneyMap{}, err
	}
	return JourneyMap{CustomerID: customerData["customer_id"], JourneyMap: analysis}, nil
}

func formatData(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

func formatSegment(segment Segment) string {
	return formatData(map[string]any{
		"segment_name":    segment.SegmentName,
		"characteristics": segment.Characteristics,
	})
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes) + "..."
}
