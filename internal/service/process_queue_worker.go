package service

import (
	"context"
	"log"
	"sync"
	"time"

	"cvforge/internal/domain"
	"cvforge/internal/port"
)

// ProcessQueueWorker re-dispatches CV documents stranded in the uploaded
// state, typically after a crash between upload and the background
// transformation goroutine. It polls on a fixed interval and processes
// claimed documents with bounded concurrency.
type ProcessQueueWorker struct {
	repo        port.CVRepository
	service     CVService
	interval    time.Duration
	staleAfter  time.Duration
	concurrency int
}

// NewProcessQueueWorker creates a worker. Concurrency below 1 is clamped to 1.
func NewProcessQueueWorker(repo port.CVRepository, service CVService, interval, staleAfter time.Duration, concurrency int) *ProcessQueueWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ProcessQueueWorker{
		repo:        repo,
		service:     service,
		interval:    interval,
		staleAfter:  staleAfter,
		concurrency: concurrency,
	}
}

// Run polls until ctx is canceled, then waits for in-flight work to finish.
func (w *ProcessQueueWorker) Run(ctx context.Context) {
	log.Printf("processQueueWorker.Run: started (interval=%s staleAfter=%s concurrency=%d)",
		w.interval, w.staleAfter, w.concurrency)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			log.Printf("processQueueWorker.Run: stopped")
			return
		case <-ticker.C:
			w.dispatchStale(ctx, sem, &wg)
		}
	}
}

func (w *ProcessQueueWorker) dispatchStale(ctx context.Context, sem chan struct{}, wg *sync.WaitGroup) {
	cutoff := time.Now().Add(-w.staleAfter)
	docs, err := w.repo.ClaimStale(ctx, cutoff, w.concurrency)
	if err != nil {
		log.Printf("processQueueWorker.dispatchStale: %v", err)
		return
	}
	if len(docs) == 0 {
		return
	}

	log.Printf("processQueueWorker.dispatchStale: claimed %d stale documents", len(docs))
	for i := range docs {
		doc := docs[i]
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Every claimed but undispatched document goes back to uploaded
			// so the next run picks them up.
			w.release(docs[i:])
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			procCtx, cancel := context.WithTimeout(context.Background(), processingTimeout)
			defer cancel()
			if err := w.service.ProcessCV(procCtx, doc.ID); err != nil {
				log.Printf("processQueueWorker: document %s: %v", doc.ID, err)
			}
		}()
	}
}

func (w *ProcessQueueWorker) release(docs []domain.CVDocument) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for i := range docs {
		if err := w.repo.UpdateStatus(ctx, docs[i].ID, domain.CVStatusUploaded); err != nil {
			log.Printf("processQueueWorker.release: document %s: %v", docs[i].ID, err)
		}
	}
}
