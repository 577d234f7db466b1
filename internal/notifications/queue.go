package notifications

import (
	"time"

	"github.com/placementhub/placementhub/internal/domain"
)

// QueueItem represents a notification awaiting delivery.
type QueueItem struct {
	ID            string
	UserID        string
	Type          domain.NotificationType
	Title         string
	Message       string
	Attempts      int
	NextAttemptAt time.Time
	CreatedAt     time.Time
}
