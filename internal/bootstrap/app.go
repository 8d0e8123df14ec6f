// Package bootstrap wires configuration, external clients, agent services
// and the HTTP router into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"agenthub-backend/internal/chart"
	"agenthub-backend/internal/education"
	"agenthub-backend/internal/embedding"
	"agenthub-backend/internal/finance"
	"agenthub-backend/internal/healthcare"
	"agenthub-backend/internal/llm"
	"agenthub-backend/internal/marketdata"
	"agenthub-backend/internal/marketing"
	"agenthub-backend/internal/registry"
	"agenthub-backend/internal/search"
	"agenthub-backend/internal/shared/config"
	"agenthub-backend/internal/shared/server"
	"agenthub-backend/internal/shared/storage/db"
	"agenthub-backend/internal/summarizer"
	"agenthub-backend/internal/uploads"
	"agenthub-backend/internal/vectorstore"
	"agenthub-backend/internal/video"
	"agenthub-backend/internal/webpage"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Registry *registry.Registry

	LLM         llm.Client
	Embedder    embedding.Client
	VectorStore vectorstore.Store

	FinanceService    *finance.Service
	MarketingService  *marketing.Service
	HealthcareService *healthcare.Service
	EducationService  *education.Service
	SummarizerService *summarizer.Service

	FinanceHandler    *finance.Handler
	MarketingHandler  *marketing.Handler
	HealthcareHandler *healthcare.Handler
	EducationHandler  *education.Handler
	SummarizerHandler *summarizer.Handler
	UploadsHandler    *uploads.Handler
}

// Build prepares all dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg, Registry: registry.New()}

	app.DB = buildDB(ctx, cfg)
	app.LLM = buildLLM(cfg)
	app.Embedder = buildEmbedder(cfg)
	app.VectorStore = buildVectorStore(app)

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}
	if err := registerAgents(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		FinanceHandler:    app.FinanceHandler,
		MarketingHandler:  app.MarketingHandler,
		HealthcareHandler: app.HealthcareHandler,
		EducationHandler:  app.EducationHandler,
		SummarizerHandler: app.SummarizerHandler,
		UploadsHandler:    app.UploadsHandler,
	})
	return app, nil
}

// buildDB connects when DATABASE_URL is set; the service degrades to the
// in-memory vector store otherwise. Dev keeps running on connect failure,
// production does not start without its index.
func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("bootstrap: database connect failed, using in-memory vector store: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("bootstrap: migrations failed, using in-memory vector store: %v", err)
		conn.Close()
		return nil
	}
	return conn
}

// buildVectorStore pairs the pg index with a real embedder. The schema's
// vector column is sized for the configured embedding model; the local
// fallback embedder emits a different dimension, which pgvector rejects
// on insert.
func buildVectorStore(app *App) vectorstore.Store {
	if app.DB == nil {
		return vectorstore.NewMemoryStore()
	}
	if _, local := app.Embedder.(embedding.LocalClient); local {
		log.Printf("bootstrap: EMBEDDING_API_KEY empty; using in-memory vector store despite DATABASE_URL")
		return vectorstore.NewMemoryStore()
	}
	return &vectorstore.PGStore{DB: app.DB}
}

func buildLLM(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.GroqAPIKey) == "" {
		log.Printf("bootstrap: GROQ_API_KEY empty; chat operations will fail until configured")
		return llm.PlaceholderClient{}
	}
	client, err := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ChatModel)
	if err != nil {
		log.Printf("bootstrap: groq client init failed: %v", err)
		return llm.PlaceholderClient{}
	}
	return llm.WithRetry(client)
}

func buildEmbedder(cfg config.Config) embedding.Client {
	if strings.TrimSpace(cfg.EmbeddingAPIKey) == "" {
		return embedding.LocalClient{}
	}
	client, err := embedding.NewOpenAIClient(cfg.EmbeddingAPIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel)
	if err != nil {
		log.Printf("bootstrap: embedding client init failed, using local embedder: %v", err)
		return embedding.LocalClient{}
	}
	return client
}

func buildServices(ctx context.Context, app *App) error {
	cfg := app.Config

	var tavily search.TavilySearcher = unconfiguredTavily{}
	if cfg.TavilyAPIKey != "" {
		client, err := search.NewTavilyClient(cfg.TavilyAPIKey)
		if err != nil {
			return err
		}
		tavily = client
	}

	var serp search.SerpSearcher = unconfiguredSerp{}
	if cfg.SerpAPIKey != "" {
		client, err := search.NewSerpClient(cfg.SerpAPIKey)
		if err != nil {
			return err
		}
		serp = client
	}

	var videoClient summarizer.VideoSummarizer
	if cfg.GoogleAPIKey != "" {
		client, err := video.NewGeminiClient(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return fmt.Errorf("video client: %w", err)
		}
		videoClient = client
	}

	pages := webpage.NewClient()

	app.FinanceService = finance.NewService(marketdata.NewYahooClient(), chart.NewPNGRenderer())
	app.MarketingService = marketing.NewService(app.LLM, serp, pages, cfg.MarketingModel)
	app.HealthcareService = healthcare.NewService(app.LLM, cfg.ChatModel)
	app.EducationService = education.NewService(app.LLM, tavily, cfg.ChatModel)
	app.SummarizerService = summarizer.NewService(app.LLM, app.Embedder, app.VectorStore, summarizer.NewChunkCache(), videoClient, cfg.ChatModel)

	app.FinanceHandler = finance.NewHandler(app.FinanceService)
	app.MarketingHandler = marketing.NewHandler(app.MarketingService)
	app.HealthcareHandler = healthcare.NewHandler(app.HealthcareService)
	app.EducationHandler = education.NewHandler(app.EducationService)
	app.SummarizerHandler = summarizer.NewHandler(app.SummarizerService)
	app.UploadsHandler = uploads.NewHandler(app.Registry)
	return nil
}

func registerAgents(app *App) error {
	descriptors := []struct {
		d registry.Descriptor
		p registry.FileProcessor
	}{
		{
			d: registry.Descriptor{
				ID:             "summarizer",
				Name:           "Document Summarizer",
				Description:    "Summarizes text documents and videos with a map-reduce pass over their chunks.",
				SupportedTypes: []string{"txt", "pdf", "csv", "mp4", "mov"},
				MIMETypes:      summarizer.MIMETypes,
			},
			p: app.SummarizerService,
		},
		{
			d: registry.Descriptor{
				ID:             "finance",
				Name:           "Finance Analyzer",
				Description:    "Analyzes stock tickers with price history, risk metrics and recommendations.",
				SupportedTypes: []string{"csv", "txt"},
				MIMETypes:      map[string]string{"csv": "text/csv", "txt": "text/plain"},
			},
			p: app.FinanceService,
		},
		{
			d: registry.Descriptor{
				ID:          "marketing",
				Name:        "Marketing Automation",
				Description: "SEO analysis, competitor watching, content creation and campaign tooling.",
			},
		},
		{
			d: registry.Descriptor{
				ID:          "healthcare",
				Name:        "Healthcare Assistant",
				Description: "General health guidance, symptom triage and wellness tips.",
			},
		},
		{
			d: registry.Descriptor{
				ID:          "education",
				Name:        "Educational Resources",
				Description: "AI-powered learning companion that provides curated educational resources, tutorials, and study materials.",
			},
		},
	}

	for _, entry := range descriptors {
		if err := app.Registry.Register(entry.d, entry.p); err != nil {
			return err
		}
	}
	return nil
}

// The unconfigured searchers stand in when a search API key is missing so
// the failure happens at call time with a clear error instead of a panic.
var errSearchNotConfigured = errors.New("search client not configured")

type unconfiguredTavily struct{}

func (unconfiguredTavily) Search(_ context.Context, _ search.TavilyQuery) (search.TavilyResponse, error) {
	return search.TavilyResponse{}, errSearchNotConfigured
}

type unconfiguredSerp struct{}

func (unconfiguredSerp) Search(_ context.Context, _ search.SerpQuery) (search.SerpResponse, error) {
	return search.SerpResponse{}, errSearchNotConfigured
}
