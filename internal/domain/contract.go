package domain

import "time"

type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractUnpaid    ContractStatus = "unpaid"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

// Contract is a tutoring agreement between a parent and a tutor. DayMask is a
// 7-bit day-of-week mask, bit 0 = Sunday .. bit 6 = Saturday, valid range [1,127].
type Contract struct {
	ID              string
	ParentID        string
	TutorID         string
	PackageID       string
	Package         *Package
	DayMask         int
	StartDate       time.Time
	EndDate         time.Time
	StartTime       string // "15:04"
	EndTime         string
	Status          ContractStatus
	RescheduleCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DayMaskValid reports whether mask encodes at least one weekday and no
// bits outside the seven day positions.
func DayMaskValid(mask int) bool {
	return mask >= 1 && mask <= 127
}

// MatchesDay reports whether the contract recurs on the weekday of t.
func (c *Contract) MatchesDay(t time.Time) bool {
	return c.DayMask&(1<<int(t.Weekday())) != 0
}

type ContractRepository interface {
	CreateContract(contract *Contract) error
	GetContractByID(contractID string) (*Contract, error)
	GetContractsByUserID(userID string, page, limit int) ([]*Contract, int64, error)
	UpdateContractStatus(contractID string, oldStatus, newStatus ContractStatus) error

	// ActivateWithSessions flips the contract to active and persists the
	// generated sessions in one transaction.
	ActivateWithSessions(contractID string, sessions []*Session) error

	// IncrementRescheduleCount bumps the counter only while it is below limit.
	// Returns ErrRescheduleLimit otherwise.
	IncrementRescheduleCount(contractID string, limit int) error
}
