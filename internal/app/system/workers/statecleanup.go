// internal/app/system/workers/statecleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatePurger deletes expired OAuth state records.
type StatePurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StateCleanup is a background worker that purges expired OAuth login
// states. The oauth_states collection carries a TTL index, but TTL
// monitoring is best-effort (and absent on some DocumentDB versions), so
// this keeps the collection small regardless.
type StateCleanup struct {
	states   StatePurger
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewStateCleanup creates a state cleanup worker that runs every interval.
func NewStateCleanup(states StatePurger, logger *zap.Logger, interval time.Duration) *StateCleanup {
	return &StateCleanup{
		states:   states,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *StateCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("oauth state cleanup worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *StateCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("oauth state cleanup worker stopped")
}

func (w *StateCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *StateCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.states.DeleteExpired(ctx)
	if err != nil {
		w.log.Error("failed to purge expired oauth states", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("purged expired oauth states", zap.Int64("count", count))
	}
}
