package kafka

import "time"

// NotificationEvent is the cross-instance fan-out envelope published on the
// notifications topic. Every backend instance consumes it and re-attempts
// local delivery for the recipient.
type NotificationEvent struct {
	NotificationID   string    `json:"notification_id"`
	UserID           string    `json:"user_id"`
	NotificationType string    `json:"notification_type"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	Origin           string    `json:"origin"`
	Timestamp        time.Time `json:"timestamp"`
}
