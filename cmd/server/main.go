package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cvforge/internal/ai"
	"cvforge/internal/ai/anthropic"
	"cvforge/internal/ai/google"
	"cvforge/internal/ai/openai"
	"cvforge/internal/config"
	"cvforge/internal/domain"
	"cvforge/internal/email/noop"
	"cvforge/internal/email/ses"
	"cvforge/internal/extract"
	"cvforge/internal/handler"
	"cvforge/internal/port"
	"cvforge/internal/repository/postgres"
	"cvforge/internal/router"
	"cvforge/internal/service"
	"cvforge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	storage, err := s3.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("creating object storage client: %w", err)
	}

	emailSender, err := newEmailSender(cfg)
	if err != nil {
		return fmt.Errorf("creating email sender: %w", err)
	}

	transformer := ai.NewTransformer(buildProviderChain(&cfg.AI))
	for _, status := range transformer.ProviderStatuses() {
		log.Printf("main: provider %s available=%t", status.Name, status.Available)
	}

	repo := postgres.NewCVRepo(db)
	cvService := service.NewCVService(
		repo,
		storage,
		extract.NewExtractor(),
		transformer,
		emailSender,
		service.CVServiceConfig{
			Bucket:            cfg.S3.Bucket,
			MaxUploadBytes:    cfg.Upload.MaxSizeBytes,
			PresignExpirySecs: cfg.S3.PresignExpirySecs,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Worker.Enabled {
		worker := service.NewProcessQueueWorker(
			repo,
			cvService,
			time.Duration(cfg.Worker.IntervalSecs)*time.Second,
			time.Duration(cfg.Worker.StaleAfterSecs)*time.Second,
			cfg.Worker.Concurrency,
		)
		go worker.Run(ctx)
	}

	r := router.New(
		handler.NewHealthHandler(db),
		handler.NewCVHandler(cvService),
		handler.NewAIHandler(cvService),
	)

	log.Printf("main: listening on :%s", cfg.Server.Port)
	return r.Run(":" + cfg.Server.Port)
}

// buildProviderChain wires the ordered fallback chain. Availability is
// decided once here: unconfigured providers keep a nil client and are
// skipped silently at transform time.
func buildProviderChain(cfg *config.AIConfig) []ai.ProviderEntry {
	entries := []ai.ProviderEntry{
		{Tag: domain.ProviderOpenAI, Confidence: ai.ConfidenceOpenAI},
		{Tag: domain.ProviderAnthropic, Confidence: ai.ConfidenceAnthropic},
		{Tag: domain.ProviderGoogle, Confidence: ai.ConfidenceGoogle},
	}
	if cfg.OpenAI.Available() {
		entries[0].Client = openai.NewClient(&cfg.OpenAI)
	}
	if cfg.Anthropic.Available() {
		entries[1].Client = anthropic.NewClient(&cfg.Anthropic)
	}
	if cfg.Google.Available() {
		entries[2].Client = google.NewClient(&cfg.Google)
	}
	return entries
}

func newEmailSender(cfg *config.Config) (port.EmailSender, error) {
	if cfg.Email.Provider == "ses" {
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
	}
	return noop.NewNoopSender(), nil
}
