package workers

import (
	"context"
	"time"

	"creatormatch/internal/logger"
	"creatormatch/internal/repositories"
)

// SubscriptionWorker periodically expires active subscriptions whose end
// date has passed. The provider is the source of truth for renewals; this
// only closes out rows the provider stopped reporting on.
type SubscriptionWorker struct {
	subs     repositories.SubscriptionRepository
	interval time.Duration
}

func NewSubscriptionWorker(subs repositories.SubscriptionRepository, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{subs: subs, interval: interval}
}

// Start blocks until ctx is cancelled. Run it in its own goroutine.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	logger.Info("subscription worker started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SubscriptionWorker) runOnce(ctx context.Context) {
	expired, err := w.subs.MarkExpired(ctx, time.Now())
	if err != nil {
		logger.Error("subscription expiry sweep failed", "error", err.Error())
		return
	}
	if expired > 0 {
		logger.Info("subscriptions expired", "count", expired)
	}
}
