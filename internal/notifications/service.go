package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/placementhub/placementhub/internal/domain"
)

// Default page size for notification listings.
const DefaultListLimit = 50

// Service implements notification business logic. Delivery is
// asynchronous: Notify only enqueues, the worker moves items into the
// user's notification list.
type Service struct {
	repo Repository
}

// NewService creates a new notifications service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify enqueues an in-app notification for a user.
func (s *Service) Notify(ctx context.Context, userID string, typ domain.NotificationType, title, message string) error {
	if !typ.IsValid() {
		return fmt.Errorf("invalid notification type: %s", typ)
	}

	item := &QueueItem{
		ID:      uuid.New().String(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
	}

	if err := s.repo.Enqueue(ctx, item); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// List retrieves a user's notifications, newest first.
func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.ListForUser(ctx, userID, unreadOnly, limit)
}

// MarkRead marks a single notification as read. Marking an already read
// notification is a no-op.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead marks all of a user's notifications as read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// UnreadCount returns the number of unread notifications for a user.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
