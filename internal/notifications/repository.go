// Package notifications provides in-app notifications with queued delivery.
package notifications

import (
	"context"
	"time"

	"github.com/placementhub/placementhub/internal/domain"
)

// Repository defines the interface for notifications data access.
type Repository interface {
	// Delivered notifications
	CreateNotification(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)

	// Delivery queue
	Enqueue(ctx context.Context, item *QueueItem) error
	FetchDue(ctx context.Context, limit int) ([]*QueueItem, error)
	DeleteQueueItem(ctx context.Context, id string) error
	MarkForRetry(ctx context.Context, id string, lastErr error, nextAttempt time.Time) error
	QueueStats(ctx context.Context) (*QueueStats, error)
}

// QueueStats holds queue depth counters for metrics.
type QueueStats struct {
	Pending int
	Due     int
}
