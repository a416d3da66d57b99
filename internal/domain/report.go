package domain

import "time"

type TutorEarnings struct {
	TutorID           string
	CompletedSessions int64
	CancelledSessions int64
	ActiveContracts   int64
	EarnedAmount      float64
}

type PlatformSummary struct {
	DepositsCompleted    int64
	DepositAmount        float64
	WithdrawalsCompleted int64
	WithdrawalAmount     float64
	ContractsActive      int64
	ContractsCompleted   int64
	SessionsCompleted    int64
}

type ReportRepository interface {
	GetTutorEarnings(tutorID string, dateFrom, dateTo time.Time) (*TutorEarnings, error)
	GetPlatformSummary(dateFrom, dateTo time.Time) (*PlatformSummary, error)
}
