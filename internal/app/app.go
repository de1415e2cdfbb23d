// Package app assembles the process: configuration, logging, stores, the
// completion client, the chat pipeline, and the HTTP server. Everything is
// constructed here and passed down explicitly.
package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"archsandbox/internal/catalog"
	"archsandbox/internal/chat"
	"archsandbox/internal/config"
	"archsandbox/internal/cost"
	"archsandbox/internal/graph"
	"archsandbox/internal/handler"
	"archsandbox/internal/knowledge"
	"archsandbox/internal/llm"
	"archsandbox/internal/sandbox"
	"archsandbox/internal/server"
	"archsandbox/internal/session"
)

type App struct {
	server    *server.Server
	logger    *zap.Logger
	llmClient llm.Client
	sandboxes *sandbox.Store
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, llm.GeminiOptions{
		RPS:   cfg.LLM.RPS,
		Burst: cfg.LLM.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init completion client: %w", err)
	}

	lib := catalog.Default()
	synth := graph.NewSynthesizer(lib, graph.NewValidator(), nil)
	retriever := knowledge.NewDefaultRetriever()
	sessions := session.NewStore()
	estimator := cost.NewEstimator(lib)

	sandboxes := sandbox.NewFromEnv(cfg.SandboxDSN)

	pipeline := chat.NewPipeline(lib, retriever, client, sessions, synth, logger)

	v := validator.New()
	chatHandler := handler.NewChatHandler(pipeline, v, logger)
	costHandler := handler.NewCostHandler(estimator, logger)
	sandboxHandler := handler.NewSandboxHandler(sandboxes, estimator, v, logger)

	router := server.NewRouter(chatHandler, costHandler, sandboxHandler)

	return &App{
		server:    server.New(cfg.Port, router, logger),
		logger:    logger,
		llmClient: client,
		sandboxes: sandboxes,
	}, nil
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (a *App) Logger() *zap.Logger { return a.logger }

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.llmClient.Close(); err == nil {
		err = cerr
	}
	if cerr := a.sandboxes.Close(); err == nil {
		err = cerr
	}
	_ = a.logger.Sync()
	return err
}
