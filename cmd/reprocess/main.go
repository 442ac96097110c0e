// Command reprocess re-runs the transformation chain over the stored
// extracted text of completed documents. Useful after prompt or style rule
// changes. Usage: go run ./cmd/reprocess
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cvforge/internal/ai"
	"cvforge/internal/ai/anthropic"
	"cvforge/internal/ai/google"
	"cvforge/internal/ai/openai"
	"cvforge/internal/config"
	"cvforge/internal/domain"
	"cvforge/internal/repository/postgres"
)

const batchSize = 100

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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := postgres.NewCVRepo(db)
	transformer := ai.NewTransformer(buildProviderChain(&cfg.AI))

	ctx := context.Background()
	offset := 0
	total := 0

	for {
		docs, err := repo.ListCompleted(ctx, batchSize, offset)
		if err != nil {
			return fmt.Errorf("listing documents at offset %d: %w", offset, err)
		}
		if len(docs) == 0 {
			break
		}

		for i := range docs {
			doc := &docs[i]
			if doc.ExtractedText == "" {
				log.Printf("WARN: skipping document %s: no extracted text", doc.ID)
				continue
			}

			cv, details := transformer.Transform(ctx, doc.ExtractedText, nil)

			dataJSON, err := json.Marshal(cv)
			if err != nil {
				log.Printf("WARN: skipping document %s: marshal cv data: %v", doc.ID, err)
				continue
			}
			detailsJSON, err := json.Marshal(details)
			if err != nil {
				log.Printf("WARN: skipping document %s: marshal details: %v", doc.ID, err)
				continue
			}

			if err := repo.SaveResult(ctx, doc.ID, doc.ExtractedText, dataJSON, detailsJSON); err != nil {
				log.Printf("WARN: failed to save document %s: %v", doc.ID, err)
				continue
			}
			total++
		}

		if total > 0 && total%batchSize == 0 {
			log.Printf("Progress: %d documents reprocessed", total)
		}

		offset += len(docs)
	}

	log.Printf("Reprocess complete: %d documents updated", total)
	return nil
}

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
