package domain

import "time"

// NotificationType classifies an in-app notification for display.
type NotificationType string

// Notification types.
const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// IsValid checks if the notification type is valid.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeSuccess,
		NotificationTypeWarning, NotificationTypeError:
		return true
	}
	return false
}

// Notification represents an in-app notification for a single user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
