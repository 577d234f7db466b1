// Package postgres provides PostgreSQL implementation of the notifications repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/notifications"
)

// Repository implements the notifications.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateNotification inserts a delivered notification.
func (r *Repository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, read)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
	).Scan(&n.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// Already delivered on a previous attempt.
		return nil
	}
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListForUser retrieves a user's notifications, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	args := []any{userID}
	if unreadOnly {
		query += " AND NOT read"
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	list := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return list, nil
}

// MarkRead marks a single notification as read.
func (r *Repository) MarkRead(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notifications.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read.
func (r *Repository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *Repository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// Enqueue adds a notification to the delivery queue.
func (r *Repository) Enqueue(ctx context.Context, item *notifications.QueueItem) error {
	query := `
		INSERT INTO notification_queue (id, user_id, type, title, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING attempts, next_attempt_at, created_at
	`
	err := r.db.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.Type,
		item.Title,
		item.Message,
	).Scan(&item.Attempts, &item.NextAttemptAt, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// FetchDue retrieves queue items whose next attempt time has passed.
// Rows are locked so concurrent workers never pick the same item.
func (r *Repository) FetchDue(ctx context.Context, limit int) ([]*notifications.QueueItem, error) {
	query := `
		SELECT id, user_id, type, title, message, attempts, next_attempt_at, created_at
		FROM notification_queue
		WHERE next_attempt_at <= now()
		ORDER BY next_attempt_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch due notifications: %w", err)
	}
	defer rows.Close()

	items := make([]*notifications.QueueItem, 0)
	for rows.Next() {
		var item notifications.QueueItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Type,
			&item.Title,
			&item.Message,
			&item.Attempts,
			&item.NextAttemptAt,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue items: %w", err)
	}
	return items, nil
}

// DeleteQueueItem removes an item from the queue.
func (r *Repository) DeleteQueueItem(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM notification_queue WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete queue item: %w", err)
	}
	return nil
}

// MarkForRetry reschedules a failed item.
func (r *Repository) MarkForRetry(ctx context.Context, id string, lastErr error, nextAttempt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notification_queue SET attempts = attempts + 1, next_attempt_at = $2 WHERE id = $1`,
		id, nextAttempt,
	)
	if err != nil {
		return fmt.Errorf("mark queue item for retry: %w", err)
	}
	return nil
}

// QueueStats returns queue depth counters.
func (r *Repository) QueueStats(ctx context.Context) (*notifications.QueueStats, error) {
	var stats notifications.QueueStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE next_attempt_at <= now())
		FROM notification_queue
	`).Scan(&stats.Pending, &stats.Due)
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	return &stats, nil
}
