package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/placementhub/placementhub/internal/domain"
)

// WorkerConfig contains worker configuration.
type WorkerConfig struct {
	BatchSize         int
	PollInterval      time.Duration
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	NumWorkers        int
}

// DefaultWorkerConfig returns default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		BatchSize:         100,
		PollInterval:      2 * time.Second,
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        1 * time.Minute,
		BackoffMultiplier: 2.0,
		NumWorkers:        2,
	}
}

// Worker drains the delivery queue into users' notification lists.
type Worker struct {
	config WorkerConfig
	repo   Repository

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWorker creates a new notification worker.
func NewWorker(config WorkerConfig, repo Repository) *Worker {
	return &Worker{
		config: config,
		repo:   repo,
		stopCh: make(chan struct{}),
	}
}

// Start launches worker goroutines.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("starting notification worker",
		"workers", w.config.NumWorkers,
		"batch_size", w.config.BatchSize,
		"poll_interval", w.config.PollInterval,
	)

	for i := 0; i < w.config.NumWorkers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
}

// Stop gracefully stops all workers.
func (w *Worker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	slog.Info("notification worker stopped")
}

func (w *Worker) run(ctx context.Context, workerID int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.processBatch(ctx, workerID)
		}
	}
}

func (w *Worker) processBatch(ctx context.Context, workerID int) {
	items, err := w.repo.FetchDue(ctx, w.config.BatchSize)
	if err != nil {
		slog.Error("failed to fetch due notifications", "worker", workerID, "error", err)
		return
	}

	if len(items) == 0 {
		return
	}

	slog.Debug("delivering notifications", "worker", workerID, "count", len(items))

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item *QueueItem) {
	start := time.Now()

	notification := &domain.Notification{
		ID:      item.ID,
		UserID:  item.UserID,
		Type:    item.Type,
		Title:   item.Title,
		Message: item.Message,
	}

	if err := w.repo.CreateNotification(ctx, notification); err != nil {
		w.handleDeliveryError(ctx, item, err)
		return
	}

	if err := w.repo.DeleteQueueItem(ctx, item.ID); err != nil {
		slog.Error("failed to remove delivered queue item", "item_id", item.ID, "error", err)
	}

	recordDelivery(string(item.Type), "delivered")
	recordDeliveryDuration(time.Since(start))

	slog.Debug("notification delivered",
		"item_id", item.ID,
		"user_id", item.UserID,
	)
}

func (w *Worker) handleDeliveryError(ctx context.Context, item *QueueItem, err error) {
	slog.Warn("delivery failed",
		"item_id", item.ID,
		"attempt", item.Attempts+1,
		"max_attempts", w.config.MaxAttempts,
		"error", err,
	)

	if !isRetryable(err) || item.Attempts+1 >= w.config.MaxAttempts {
		if delErr := w.repo.DeleteQueueItem(ctx, item.ID); delErr != nil {
			slog.Error("failed to drop queue item", "item_id", item.ID, "error", delErr)
		}
		recordDelivery(string(item.Type), "dropped")
		return
	}

	nextAttempt := w.calculateNextAttempt(item.Attempts + 1)
	if markErr := w.repo.MarkForRetry(ctx, item.ID, err, nextAttempt); markErr != nil {
		slog.Error("failed to mark for retry", "item_id", item.ID, "error", markErr)
	}
	recordDelivery(string(item.Type), "retry")

	slog.Info("notification scheduled for retry",
		"item_id", item.ID,
		"next_attempt", nextAttempt,
	)
}

func (w *Worker) calculateNextAttempt(attempt int) time.Time {
	backoff := float64(w.config.InitialBackoff)
	for i := 1; i < attempt; i++ {
		backoff *= w.config.BackoffMultiplier
	}

	if backoff > float64(w.config.MaxBackoff) {
		backoff = float64(w.config.MaxBackoff)
	}

	return time.Now().Add(time.Duration(backoff))
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	type retryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(retryable); ok {
		return r.IsRetryable()
	}

	// Default: retry unknown errors
	return true
}

// RetryableError wraps an error and marks it as retryable or not.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// IsRetryable returns whether the error is retryable.
func (e *RetryableError) IsRetryable() bool {
	return e.Retryable
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a retryable error.
func NewRetryableError(err error) *RetryableError {
	return &RetryableError{Err: err, Retryable: true}
}

// NewNonRetryableError creates a non-retryable error.
func NewNonRetryableError(err error) *RetryableError {
	return &RetryableError{Err: err, Retryable: false}
}
