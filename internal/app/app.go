package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"memexplainer/internal/config"
	"memexplainer/internal/curator"
	"memexplainer/internal/explainer"
	"memexplainer/internal/infrastructure/chroma"
	"memexplainer/internal/infrastructure/kym"
	"memexplainer/internal/infrastructure/llm"
	"memexplainer/internal/infrastructure/youtube"
	"memexplainer/internal/register"
	"memexplainer/internal/server"
	"memexplainer/internal/usecase"
)

// Application wires configuration to adapters, the pipeline, and the HTTP
// service. Construction performs all mandatory startup work: the register
// store connects and seeds before any request is served, and missing vector
// store credentials fail construction outright.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	store    *register.Store
	handler  http.Handler
}

// New builds a fully wired application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	llmClient := llm.NewClient(cfg.OpenAI)

	chromaClient, err := chroma.NewClient(cfg.Chroma)
	if err != nil {
		return nil, fmt.Errorf("vector store: %w", err)
	}

	store, err := register.NewStore(ctx, chromaClient, llmClient, baseLogger.With("component", "register"))
	if err != nil {
		return nil, fmt.Errorf("register store: %w", err)
	}

	scanner := kym.NewScanner(nil, cfg.Source, baseLogger.With("component", "kym"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:    scanner,
		Curator:   curator.New(llmClient, baseLogger.With("component", "curator")),
		Explainer: explainer.New(llmClient, store, baseLogger.With("component", "explainer")),
		Logger:    baseLogger.With("component", "pipeline"),
	})

	videos := youtube.NewSearcher(nil, cfg.YouTube, baseLogger.With("component", "youtube"))
	srv := server.New(pipeline, videos, baseLogger.With("component", "server"))

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		store:    store,
		handler:  srv.Handler(),
	}, nil
}

// Pipeline exposes the research pipeline for one-shot CLI runs.
func (a *Application) Pipeline() *usecase.Pipeline {
	return a.pipeline
}

// Store exposes the register store for explicit seeding.
func (a *Application) Store() *register.Store {
	return a.store
}

// Serve runs the HTTP service until ctx is cancelled, then shuts down
// gracefully.
func (a *Application) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
