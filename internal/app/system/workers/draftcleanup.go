// internal/app/system/workers/draftcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DraftPurger removes expired drafts. *drafts.Store implements it.
type DraftPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// DraftCleanup is a background worker that purges expired drafts.
type DraftCleanup struct {
	drafts   DraftPurger
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDraftCleanup creates a cleanup worker that runs every interval.
func NewDraftCleanup(drafts DraftPurger, logger *zap.Logger, interval time.Duration) *DraftCleanup {
	if interval <= 0 {
		interval = time.Hour
	}
	return &DraftCleanup{
		drafts:   drafts,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *DraftCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("draft cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to
// call more than once.
func (w *DraftCleanup) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("draft cleanup worker stopped")
}

func (w *DraftCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single purge pass.
func (w *DraftCleanup) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := w.drafts.PurgeExpired(ctx)
	if err != nil {
		w.log.Error("failed to purge expired drafts", zap.Error(err))
		return
	}
	if n > 0 {
		w.log.Info("purged expired drafts", zap.Int64("count", n))
	}
}
