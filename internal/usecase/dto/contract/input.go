package contractdto

import "time"

type CreateContractInput struct {
	ParentID  string    `validate:"required,uuid4"`
	TutorID   string    `validate:"required,uuid4"`
	PackageID string    `validate:"required,uuid4"`
	DayMask   int       `validate:"required,min=1,max=127"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required"`
	StartTime string    `validate:"required"`
	EndTime   string    `validate:"required"`
}
