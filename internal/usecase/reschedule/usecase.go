package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	rescheduledto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/reschedule"
	notification "github.com/mathbridge/mathbridge-backend/internal/usecase/notification"
)

type RescheduleUsecase interface {
	RequestReschedule(input *rescheduledto.CreateRescheduleInput) (*domain.RescheduleRequest, error)
	ApproveReschedule(requestID, approverID string) error
	RejectReschedule(requestID, approverID string) error
	GetContractRequests(contractID string) ([]*domain.RescheduleRequest, error)
}

type DefaultRescheduleUsecase struct {
	RescheduleRepo domain.RescheduleRepository
	SessionRepo    domain.SessionRepository
	ContractRepo   domain.ContractRepository
	NotificationUc notification.NotificationUsecase
	validate       *validator.Validate
}

func NewDefaultRescheduleUsecase(
	rescheduleRepo domain.RescheduleRepository,
	sessionRepo domain.SessionRepository,
	contractRepo domain.ContractRepository,
	notificationUc notification.NotificationUsecase,
) *DefaultRescheduleUsecase {
	return &DefaultRescheduleUsecase{
		RescheduleRepo: rescheduleRepo,
		SessionRepo:    sessionRepo,
		ContractRepo:   contractRepo,
		NotificationUc: notificationUc,
		validate:       validator.New(),
	}
}

// RequestReschedule opens a pending request against one scheduled session of
// an active contract. The per-contract cap is only consumed on approval, but a
// contract already at its cap rejects new requests up front.
func (uc *DefaultRescheduleUsecase) RequestReschedule(input *rescheduledto.CreateRescheduleInput) (*domain.RescheduleRequest, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	session, err := uc.SessionRepo.GetSessionByID(input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionScheduled && session.Status != domain.SessionRescheduled {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrConflict, session.ID, session.Status)
	}
	if !input.NewDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: new date must be in the future", domain.ErrValidation)
	}

	contract, err := uc.ContractRepo.GetContractByID(session.ContractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractActive {
		return nil, fmt.Errorf("%w: contract %s is %s", domain.ErrConflict, contract.ID, contract.Status)
	}
	if contract.ParentID != input.RequestedBy && contract.TutorID != input.RequestedBy {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, input.SessionID)
	}
	if contract.Package != nil && contract.RescheduleCount >= contract.Package.MaxReschedule {
		return nil, fmt.Errorf("%w: %d of %d used",
			domain.ErrRescheduleLimit, contract.RescheduleCount, contract.Package.MaxReschedule)
	}

	req := &domain.RescheduleRequest{
		ID:           uuid.New().String(),
		SessionID:    session.ID,
		ContractID:   contract.ID,
		RequestedBy:  input.RequestedBy,
		NewDate:      input.NewDate,
		NewStartTime: input.NewStartTime,
		NewEndTime:   input.NewEndTime,
		Reason:       input.Reason,
		Status:       domain.RescheduleOpen,
		CreatedAt:    time.Now(),
	}
	if err := uc.RescheduleRepo.CreateRequest(req); err != nil {
		return nil, err
	}

	uc.notifyCounterparty(contract, input.RequestedBy,
		"Reschedule requested",
		"A session reschedule has been requested and needs your approval.")

	return req, nil
}

// ApproveReschedule consumes one unit of the contract's reschedule budget and
// moves the session. The counter bump is the gate: when the contract is at its
// cap the approval fails and the request stays pending.
func (uc *DefaultRescheduleUsecase) ApproveReschedule(requestID, approverID string) error {
	req, contract, err := uc.loadForDecision(requestID, approverID)
	if err != nil {
		return err
	}

	maxReschedule := 0
	if contract.Package != nil {
		maxReschedule = contract.Package.MaxReschedule
	}
	if err := uc.ContractRepo.IncrementRescheduleCount(contract.ID, maxReschedule); err != nil {
		return err
	}

	if err := uc.SessionRepo.Reschedule(req.SessionID, req.NewDate, req.NewStartTime, req.NewEndTime); err != nil {
		return err
	}
	if err := uc.RescheduleRepo.UpdateRequestStatus(requestID, domain.RescheduleOpen, domain.RescheduleApproved); err != nil {
		return err
	}

	slog.Info("reschedule approved",
		"request_id", requestID, "session_id", req.SessionID, "contract_id", contract.ID)

	message := fmt.Sprintf("The session was moved to %s %s-%s.",
		req.NewDate.Format("2006-01-02"), req.NewStartTime, req.NewEndTime)
	for _, userID := range []string{contract.ParentID, contract.TutorID} {
		if err := uc.NotificationUc.Notify(userID, "Session rescheduled", message, domain.NotifyReschedule); err != nil {
			slog.Error("failed to notify reschedule", "user_id", userID, "error", err.Error())
		}
	}
	return nil
}

func (uc *DefaultRescheduleUsecase) RejectReschedule(requestID, approverID string) error {
	req, _, err := uc.loadForDecision(requestID, approverID)
	if err != nil {
		return err
	}
	if err := uc.RescheduleRepo.UpdateRequestStatus(requestID, domain.RescheduleOpen, domain.RescheduleRejected); err != nil {
		return err
	}
	if err := uc.NotificationUc.Notify(req.RequestedBy,
		"Reschedule rejected",
		"Your reschedule request was rejected.",
		domain.NotifyReschedule); err != nil {
		slog.Error("failed to notify rejection", "request_id", requestID, "error", err.Error())
	}
	return nil
}

func (uc *DefaultRescheduleUsecase) GetContractRequests(contractID string) ([]*domain.RescheduleRequest, error) {
	return uc.RescheduleRepo.GetRequestsByContractID(contractID)
}

// loadForDecision resolves a pending request and checks that the approver is
// the counterparty, not the requester.
func (uc *DefaultRescheduleUsecase) loadForDecision(requestID, approverID string) (*domain.RescheduleRequest, *domain.Contract, error) {
	req, err := uc.RescheduleRepo.GetRequestByID(requestID)
	if err != nil {
		return nil, nil, err
	}
	if req.Status != domain.RescheduleOpen {
		return nil, nil, fmt.Errorf("%w: request %s is %s", domain.ErrConflict, requestID, req.Status)
	}

	contract, err := uc.ContractRepo.GetContractByID(req.ContractID)
	if err != nil {
		return nil, nil, err
	}
	if contract.ParentID != approverID && contract.TutorID != approverID {
		return nil, nil, fmt.Errorf("%w: request %s", domain.ErrNotFound, requestID)
	}
	if req.RequestedBy == approverID {
		return nil, nil, fmt.Errorf("%w: requester cannot decide own request", domain.ErrConflict)
	}
	return req, contract, nil
}

func (uc *DefaultRescheduleUsecase) notifyCounterparty(contract *domain.Contract, actorID, title, message string) {
	other := contract.TutorID
	if actorID == contract.TutorID {
		other = contract.ParentID
	}
	if err := uc.NotificationUc.Notify(other, title, message, domain.NotifyReschedule); err != nil {
		slog.Error("failed to notify counterparty", "contract_id", contract.ID, "error", err.Error())
	}
}
