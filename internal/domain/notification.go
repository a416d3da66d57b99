package domain

import "time"

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "Pending"
	NotificationSent    NotificationStatus = "Sent"
	NotificationRead    NotificationStatus = "Read"
)

type NotificationType string

const (
	NotifyPayment    NotificationType = "payment"
	NotifyContract   NotificationType = "contract"
	NotifyReschedule NotificationType = "reschedule"
	NotifyReminder   NotificationType = "reminder"
	NotifySystem     NotificationType = "system"
)

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      NotificationType
	Status    NotificationStatus
	CreatedAt time.Time
	SentAt    *time.Time
}

type NotificationRepository interface {
	CreateNotification(n *Notification) error
	GetNotificationByID(notificationID string) (*Notification, error)
	GetNotificationsByUserID(userID string, page, limit int) ([]*Notification, int64, error)
	UpdateNotificationStatus(notificationID string, newStatus NotificationStatus) error
	MarkSent(notificationID string, at time.Time) error
}

// StreamChannel is one live per-user output channel, e.g. an open SSE stream.
type StreamChannel interface {
	Send(data []byte) error
	Close() error
}

// StreamRegistry holds at most one live channel per user on this instance.
type StreamRegistry interface {
	RegisterConnection(userID string, ch StreamChannel)
	// UnregisterConnection removes ch only while it is still the registered
	// channel for userID, so a handler displaced by a reconnect cannot tear
	// down its replacement.
	UnregisterConnection(userID string, ch StreamChannel)
	// SendLocal delivers to the user's channel if one is registered here;
	// absent recipient is a no-op, a write failure unregisters the channel.
	SendLocal(userID string, data []byte) bool
}
