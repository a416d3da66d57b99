package domain

import "time"

type RescheduleStatus string

const (
	RescheduleOpen     RescheduleStatus = "pending"
	RescheduleApproved RescheduleStatus = "approved"
	RescheduleRejected RescheduleStatus = "rejected"
)

type RescheduleRequest struct {
	ID           string
	SessionID    string
	ContractID   string
	RequestedBy  string
	NewDate      time.Time
	NewStartTime string
	NewEndTime   string
	Reason       string
	Status       RescheduleStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RescheduleRepository interface {
	CreateRequest(req *RescheduleRequest) error
	GetRequestByID(requestID string) (*RescheduleRequest, error)
	GetRequestsByContractID(contractID string) ([]*RescheduleRequest, error)
	UpdateRequestStatus(requestID string, oldStatus, newStatus RescheduleStatus) error
}
