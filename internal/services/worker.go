package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roomanhq/resume-screener/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

// worker drains a channel of queued screening runs and additionally polls the
// database so runs queued before a restart are not lost. Concurrency defaults
// to 1: resumes within a run are sequential, and so are runs unless configured
// otherwise.
type worker struct {
	screeningRepo repositories.ScreeningRepository
	screener      ScreenerService
	runQueue      chan uuid.UUID
	concurrency   int
	logger        *zap.Logger
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewWorker(
	screeningRepo repositories.ScreeningRepository,
	screener ScreenerService,
	concurrency int,
	logger *zap.Logger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		screeningRepo: screeningRepo,
		screener:      screener,
		runQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingRuns(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.logger.Info("stopping worker")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.runQueue <- runID:
		w.logger.Info("run enqueued", zap.String("run_id", runID.String()))
	case <-w.stopChan:
		w.logger.Warn("worker stopped, cannot enqueue run", zap.String("run_id", runID.String()))
	}
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("worker loop stopped", zap.Int("worker", workerID))
			return
		case runID := <-w.runQueue:
			w.logger.Info("processing run",
				zap.Int("worker", workerID),
				zap.String("run_id", runID.String()))

			if err := w.screener.ProcessRun(ctx, runID); err != nil {
				w.logger.Error("run failed",
					zap.Int("worker", workerID),
					zap.String("run_id", runID.String()),
					zap.Error(err))
			}
		}
	}
}

func (w *worker) pollPendingRuns(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.screeningRepo.FindPendingRuns(10)
			if err != nil {
				w.logger.Warn("failed to fetch pending runs", zap.Error(err))
				continue
			}

			for _, run := range pending {
				w.EnqueueRun(run.ID)
			}
		}
	}
}
