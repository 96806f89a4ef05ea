package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kuromame0210/ai-skincare-predictor/internal/codec"
	"github.com/kuromame0210/ai-skincare-predictor/internal/http/handlers"
	"github.com/kuromame0210/ai-skincare-predictor/internal/http/httpapi"
	"github.com/kuromame0210/ai-skincare-predictor/internal/infra"
	"github.com/kuromame0210/ai-skincare-predictor/internal/pipeline"
	imgprov "github.com/kuromame0210/ai-skincare-predictor/internal/providers/image"
	"github.com/kuromame0210/ai-skincare-predictor/internal/providers/openai"
	"github.com/kuromame0210/ai-skincare-predictor/internal/session"
	"github.com/kuromame0210/ai-skincare-predictor/internal/storage"
	"github.com/kuromame0210/ai-skincare-predictor/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize artifact storage")
	}

	client, err := openai.NewClient(openai.Options{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize openai client")
	}
	chain := imgprov.NewFallbackChain(&logger,
		imgprov.NewOpenAIEditor(client, imgprov.OpenAIEditorConfig{
			Model: cfg.PrimaryModel,
		}),
		imgprov.NewOpenAIEditor(client, imgprov.OpenAIEditorConfig{
			Model:          cfg.FallbackModel,
			FixedSize:      codec.SizeSmall,
			ResponseFormat: "url",
		}),
	)

	orchestrator := pipeline.New(pipeline.Config{
		Sessions: store.NewSessionStore(),
		Results:  store.NewResultStore(),
		Codec:    codec.New(fileStore, nil),
		Chain:    chain,
		Storage:  fileStore,
		BaseURL:  cfg.BaseURL,
		Prompt:   cfg.EditPrompt,
		Logger:   &logger,
	})

	sessions := session.NewManager(cfg.SessionTTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx, cfg.SweepInterval)

	app := handlers.NewApp(cfg, &logger, orchestrator, sessions, fileStore)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
