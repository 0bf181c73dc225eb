package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/credits"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/llm"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/llm/openrouter"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/ocr"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/pipeline"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/records"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/config"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/server"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Ledger   *credits.Ledger
	Records  records.Repo
	Pipeline *pipeline.Service
	Handler  *pipeline.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		ledger *credits.Ledger
		repo   records.Repo
	)
	if sqlDB != nil {
		ledger = credits.NewLedgerWithStore(credits.NewPGStore(sqlDB))
		repo = records.NewPGRepo(sqlDB)
	} else {
		ledger = credits.NewLedger()
		repo = records.NewMemoryRepo()
	}

	extractor, err := ocr.NewClient(ocr.ClientConfig{
		APIURL:   cfg.OCRAPIURL,
		APIKey:   cfg.OCRAPIKey,
		EngineID: cfg.OCREngine,
		Timeout:  cfg.OCRTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("ocr client: %w", err)
	}

	llmClient, err := openrouter.NewClient(openrouter.Config{
		APIURL:  cfg.OpenRouterAPIURL,
		APIKey:  cfg.OpenRouterAPIKey,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("openrouter client: %w", err)
	}
	analyzer := llm.NewAnalyzer(llmClient, llm.DefaultPromptConfig())

	svc := &pipeline.Service{
		Extractor: extractor,
		Analyzer:  analyzer,
		Ledger:    ledger,
		Records:   repo,
		Model:     cfg.LLMModel,
		PlanRef:   cfg.PlanRef,
	}
	handler := pipeline.NewHandler(svc, ledger, repo)

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Ledger:   ledger,
		Records:  repo,
		Pipeline: svc,
		Handler:  handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Pipeline: handler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory stores")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory stores: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
