package rescheduledto

import "time"

type CreateRescheduleInput struct {
	SessionID    string    `validate:"required,uuid4"`
	RequestedBy  string    `validate:"required,uuid4"`
	NewDate      time.Time `validate:"required"`
	NewStartTime string    `validate:"required"`
	NewEndTime   string    `validate:"required"`
	Reason       string    `validate:"max=500"`
}
