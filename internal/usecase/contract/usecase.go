package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	contractdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/contract"
	notification "github.com/mathbridge/mathbridge-backend/internal/usecase/notification"
)

type ContractUsecase interface {
	CreateContract(input *contractdto.CreateContractInput) (*domain.Contract, error)
	ActivateContract(contractID, tutorID string) (*domain.Contract, error)
	CancelContract(contractID, userID string) error
	CompleteContract(contractID string) error
	GetContract(contractID string) (*domain.Contract, error)
	GetUserContracts(userID string, page, limit int) ([]*domain.Contract, int64, error)
	GetContractSessions(contractID string) ([]*domain.Session, error)
	ListPackages() ([]*domain.Package, error)
	SendSessionReminders(leadTime, window time.Duration) error
	CompleteElapsedSessions() error
}

type DefaultContractUsecase struct {
	ContractRepo   domain.ContractRepository
	SessionRepo    domain.SessionRepository
	PackageRepo    domain.PackageRepository
	UserRepo       domain.UserRepository
	NotificationUc notification.NotificationUsecase
	validate       *validator.Validate
}

func NewDefaultContractUsecase(
	contractRepo domain.ContractRepository,
	sessionRepo domain.SessionRepository,
	packageRepo domain.PackageRepository,
	userRepo domain.UserRepository,
	notificationUc notification.NotificationUsecase,
) *DefaultContractUsecase {
	return &DefaultContractUsecase{
		ContractRepo:   contractRepo,
		SessionRepo:    sessionRepo,
		PackageRepo:    packageRepo,
		UserRepo:       userRepo,
		NotificationUc: notificationUc,
		validate:       validator.New(),
	}
}

const timeLayout = "15:04"

// CreateContract records a new agreement in the unpaid state. The date range
// is checked up front against the package session count so a contract that can
// never be scheduled is rejected before anyone pays for it.
func (uc *DefaultContractUsecase) CreateContract(input *contractdto.CreateContractInput) (*domain.Contract, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}
	start, err := time.Parse(timeLayout, input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", domain.ErrValidation, input.StartTime)
	}
	end, err := time.Parse(timeLayout, input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", domain.ErrValidation, input.EndTime)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end time must be after start time", domain.ErrValidation)
	}

	tutor, err := uc.UserRepo.GetUserByID(input.TutorID)
	if err != nil {
		return nil, err
	}
	if tutor.Role != domain.RoleTutor {
		return nil, fmt.Errorf("%w: user %s is not a tutor", domain.ErrValidation, input.TutorID)
	}

	pkg, err := uc.PackageRepo.GetPackageByID(input.PackageID)
	if err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		ID:        uuid.New().String(),
		ParentID:  input.ParentID,
		TutorID:   input.TutorID,
		PackageID: pkg.ID,
		Package:   pkg,
		DayMask:   input.DayMask,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    domain.ContractUnpaid,
	}

	// Dry-run the schedule so an impossible range fails at creation time.
	if _, err := GenerateSessions(contract, pkg.SessionCount); err != nil {
		return nil, err
	}

	if err := uc.ContractRepo.CreateContract(contract); err != nil {
		return nil, err
	}

	slog.Info("contract created",
		"contract_id", contract.ID,
		"parent_id", contract.ParentID,
		"tutor_id", contract.TutorID,
		"package_id", pkg.ID)

	return contract, nil
}

// ActivateContract is the tutor's confirmation of a paid contract. Sessions
// are generated from the recurrence and persisted atomically with the status
// flip, so a contract is never active without its full schedule.
func (uc *DefaultContractUsecase) ActivateContract(contractID, tutorID string) (*domain.Contract, error) {
	contract, err := uc.ContractRepo.GetContractByID(contractID)
	if err != nil {
		return nil, err
	}
	if contract.TutorID != tutorID {
		return nil, fmt.Errorf("%w: contract %s is not assigned to tutor %s",
			domain.ErrNotFound, contractID, tutorID)
	}
	if contract.Status != domain.ContractPending {
		return nil, fmt.Errorf("%w: contract %s is %s, expected %s",
			domain.ErrConflict, contractID, contract.Status, domain.ContractPending)
	}
	if contract.Package == nil {
		return nil, fmt.Errorf("%w: contract %s has no package", domain.ErrNotFound, contractID)
	}

	sessions, err := GenerateSessions(contract, contract.Package.SessionCount)
	if err != nil {
		return nil, err
	}

	if err := uc.ContractRepo.ActivateWithSessions(contractID, sessions); err != nil {
		return nil, err
	}
	contract.Status = domain.ContractActive

	slog.Info("contract activated",
		"contract_id", contractID, "sessions", len(sessions))

	if err := uc.NotificationUc.Notify(contract.ParentID,
		"Contract active",
		fmt.Sprintf("Your tutor confirmed the contract. %d sessions have been scheduled.", len(sessions)),
		domain.NotifyContract); err != nil {
		slog.Error("failed to notify parent", "contract_id", contractID, "error", err.Error())
	}

	return contract, nil
}

// CancelContract is allowed for either party while the contract has not been
// activated yet. Active contracts are closed through completion.
func (uc *DefaultContractUsecase) CancelContract(contractID, userID string) error {
	contract, err := uc.ContractRepo.GetContractByID(contractID)
	if err != nil {
		return err
	}
	if contract.ParentID != userID && contract.TutorID != userID {
		return fmt.Errorf("%w: contract %s", domain.ErrNotFound, contractID)
	}

	switch contract.Status {
	case domain.ContractUnpaid, domain.ContractPending:
	default:
		return fmt.Errorf("%w: contract %s is %s and cannot be cancelled",
			domain.ErrConflict, contractID, contract.Status)
	}

	if err := uc.ContractRepo.UpdateContractStatus(contractID, contract.Status, domain.ContractCancelled); err != nil {
		return err
	}

	other := contract.TutorID
	if userID == contract.TutorID {
		other = contract.ParentID
	}
	if err := uc.NotificationUc.Notify(other,
		"Contract cancelled",
		"A contract you are part of has been cancelled.",
		domain.NotifyContract); err != nil {
		slog.Error("failed to notify cancellation", "contract_id", contractID, "error", err.Error())
	}
	return nil
}

// CompleteContract closes an active contract once all of its sessions are
// done or cancelled. Called by the background sweep and by admins.
func (uc *DefaultContractUsecase) CompleteContract(contractID string) error {
	sessions, err := uc.SessionRepo.GetSessionsByContractID(contractID)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.Status == domain.SessionScheduled || s.Status == domain.SessionRescheduled {
			return fmt.Errorf("%w: contract %s still has open sessions", domain.ErrConflict, contractID)
		}
	}
	return uc.ContractRepo.UpdateContractStatus(contractID, domain.ContractActive, domain.ContractCompleted)
}

func (uc *DefaultContractUsecase) GetContract(contractID string) (*domain.Contract, error) {
	return uc.ContractRepo.GetContractByID(contractID)
}

func (uc *DefaultContractUsecase) GetUserContracts(userID string, page, limit int) ([]*domain.Contract, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return uc.ContractRepo.GetContractsByUserID(userID, page, limit)
}

func (uc *DefaultContractUsecase) GetContractSessions(contractID string) ([]*domain.Session, error) {
	return uc.SessionRepo.GetSessionsByContractID(contractID)
}

func (uc *DefaultContractUsecase) ListPackages() ([]*domain.Package, error) {
	return uc.PackageRepo.ListPackages()
}
