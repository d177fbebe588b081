package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"techtrack-api/internal"
	"techtrack-api/internal/assistant"
	"techtrack-api/internal/config"
	"techtrack-api/internal/inventory"
	"techtrack-api/internal/logging"
	"techtrack-api/internal/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("techtrack-api: %v", err)
	}
}

func run() error {
	var addr, seedFile, envFile string

	flagSet := pflag.NewFlagSet("techtrack-api", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	flagSet.StringVar(&seedFile, "seed-file", "", "YAML inventory to start with (overrides SEED_FILE)")
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if seedFile != "" {
		cfg.SeedFile = seedFile
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)
	zap.ReplaceGlobals(logger)

	seed, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	store := inventory.NewStore(seed...)

	if !cfg.AssistantConfigured() {
		logger.Warn("GEMINI_API_KEY not set, assistant replies with a configuration notice")
	}
	metrics := internal.NewMetrics()
	client := assistant.NewClient(cfg.GeminiAPIKey).
		WithBaseURL(cfg.AssistantBaseURL).
		WithModel(cfg.AssistantModel)
	gateway := assistant.NewGateway(client, assistant.Options{
		Temperature: cfg.AssistantTemperature,
		IncludeCost: cfg.AssistantIncludeCost,
		Logger:      logger.Named("assistant"),
		Recorder:    metrics,
	})

	srv := internal.NewServer(cfg, store, gateway, metrics, logger)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.Int("assets", store.Len()),
			zap.String("model", client.Model()),
			zap.Bool("metrics", cfg.EnableMetrics),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func loadSeed(cfg *config.Config) ([]models.Asset, error) {
	switch {
	case cfg.SeedFile != "":
		assets, err := inventory.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", cfg.SeedFile, err)
		}
		return assets, nil
	case cfg.SeedSample:
		return inventory.SampleAssets()
	default:
		return nil, nil
	}
}
