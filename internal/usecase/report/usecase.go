package usecase

import (
	"fmt"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

type ReportUsecase interface {
	TutorEarnings(tutorID string, dateFrom, dateTo time.Time) (*domain.TutorEarnings, error)
	PlatformSummary(dateFrom, dateTo time.Time) (*domain.PlatformSummary, error)
}

type DefaultReportUsecase struct {
	ReportRepo domain.ReportRepository
	UserRepo   domain.UserRepository
}

func NewDefaultReportUsecase(reportRepo domain.ReportRepository, userRepo domain.UserRepository) *DefaultReportUsecase {
	return &DefaultReportUsecase{ReportRepo: reportRepo, UserRepo: userRepo}
}

func (uc *DefaultReportUsecase) TutorEarnings(tutorID string, dateFrom, dateTo time.Time) (*domain.TutorEarnings, error) {
	if !dateTo.After(dateFrom) {
		return nil, fmt.Errorf("%w: date_to must be after date_from", domain.ErrValidation)
	}
	tutor, err := uc.UserRepo.GetUserByID(tutorID)
	if err != nil {
		return nil, err
	}
	if tutor.Role != domain.RoleTutor {
		return nil, fmt.Errorf("%w: user %s is not a tutor", domain.ErrValidation, tutorID)
	}
	return uc.ReportRepo.GetTutorEarnings(tutorID, dateFrom, dateTo)
}

func (uc *DefaultReportUsecase) PlatformSummary(dateFrom, dateTo time.Time) (*domain.PlatformSummary, error) {
	if !dateTo.After(dateFrom) {
		return nil, fmt.Errorf("%w: date_to must be after date_from", domain.ErrValidation)
	}
	return uc.ReportRepo.GetPlatformSummary(dateFrom, dateTo)
}
