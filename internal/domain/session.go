package domain

import "time"

type SessionStatus string

const (
	SessionScheduled   SessionStatus = "scheduled"
	SessionRescheduled SessionStatus = "rescheduled"
	SessionCancelled   SessionStatus = "cancelled"
	SessionCompleted   SessionStatus = "completed"
)

type Session struct {
	ID         string
	ContractID string
	TutorID    string
	Date       time.Time
	StartTime  string
	EndTime    string
	Status     SessionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SessionRepository interface {
	GetSessionByID(sessionID string) (*Session, error)
	GetSessionsByContractID(contractID string) ([]*Session, error)
	UpdateSessionStatus(sessionID string, newStatus SessionStatus) error

	// Reschedule moves the session to new date/times and marks it rescheduled.
	Reschedule(sessionID string, date time.Time, startTime, endTime string) error

	// FindUpcoming returns scheduled sessions starting within [from, to).
	FindUpcoming(from, to time.Time) ([]*Session, error)

	// FindElapsed returns scheduled or rescheduled sessions whose date is
	// before the cutoff day.
	FindElapsed(cutoff time.Time) ([]*Session, error)
}
