package domain

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("entity not found")
	ErrConflict             = errors.New("conflicting entity state")
	ErrAuthentication       = errors.New("signature verification failed")
	ErrAmountMismatch       = errors.New("transfer amount does not match expected amount")
	ErrInsufficientSchedule = errors.New("date range cannot satisfy required session count")
	ErrAlreadyProcessed     = errors.New("gateway transaction already processed")
	ErrRescheduleLimit      = errors.New("contract reschedule limit reached")
	ErrInsufficientBalance  = errors.New("insufficient wallet balance")
)
