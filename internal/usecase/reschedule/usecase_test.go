package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	rescheduledto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/reschedule"
)

type fakeRescheduleRepo struct {
	requests map[string]*domain.RescheduleRequest
}

func (f *fakeRescheduleRepo) CreateRequest(req *domain.RescheduleRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRescheduleRepo) GetRequestByID(id string) (*domain.RescheduleRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: request %s", domain.ErrNotFound, id)
	}
	return req, nil
}

func (f *fakeRescheduleRepo) GetRequestsByContractID(contractID string) ([]*domain.RescheduleRequest, error) {
	var out []*domain.RescheduleRequest
	for _, req := range f.requests {
		if req.ContractID == contractID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRescheduleRepo) UpdateRequestStatus(id string, oldStatus, newStatus domain.RescheduleStatus) error {
	req, ok := f.requests[id]
	if !ok || req.Status != oldStatus {
		return fmt.Errorf("%w: request %s", domain.ErrConflict, id)
	}
	req.Status = newStatus
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessionRepo) GetSessionByID(id string) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return s, nil
}

func (f *fakeSessionRepo) GetSessionsByContractID(contractID string) ([]*domain.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) UpdateSessionStatus(id string, newStatus domain.SessionStatus) error {
	f.sessions[id].Status = newStatus
	return nil
}

func (f *fakeSessionRepo) Reschedule(id string, date time.Time, startTime, endTime string) error {
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	s.Date = date
	s.StartTime = startTime
	s.EndTime = endTime
	s.Status = domain.SessionRescheduled
	return nil
}

func (f *fakeSessionRepo) FindUpcoming(from, to time.Time) ([]*domain.Session, error) {
	return nil, nil
}

func (f *fakeSessionRepo) FindElapsed(cutoff time.Time) ([]*domain.Session, error) {
	return nil, nil
}

type fakeContractRepo struct {
	contracts map[string]*domain.Contract
}

func (f *fakeContractRepo) CreateContract(c *domain.Contract) error { return nil }

func (f *fakeContractRepo) GetContractByID(id string) (*domain.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, fmt.Errorf("%w: contract %s", domain.ErrNotFound, id)
	}
	return c, nil
}

func (f *fakeContractRepo) GetContractsByUserID(userID string, page, limit int) ([]*domain.Contract, int64, error) {
	return nil, 0, nil
}

func (f *fakeContractRepo) UpdateContractStatus(id string, oldStatus, newStatus domain.ContractStatus) error {
	return nil
}

func (f *fakeContractRepo) ActivateWithSessions(id string, sessions []*domain.Session) error {
	return nil
}

func (f *fakeContractRepo) IncrementRescheduleCount(id string, limit int) error {
	c, ok := f.contracts[id]
	if !ok {
		return fmt.Errorf("%w: contract %s", domain.ErrNotFound, id)
	}
	if c.RescheduleCount >= limit {
		return fmt.Errorf("%w: %d of %d used", domain.ErrRescheduleLimit, c.RescheduleCount, limit)
	}
	c.RescheduleCount++
	return nil
}

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) Notify(userID, title, message string, notificationType domain.NotificationType) error {
	f.calls = append(f.calls, userID)
	return nil
}

func (f *fakeNotifier) MarkRead(notificationID, userID string) error { return nil }

func (f *fakeNotifier) GetUserNotifications(userID string, page, limit int) ([]*domain.Notification, int64, error) {
	return nil, 0, nil
}

const (
	parentID   = "11111111-1111-4111-8111-111111111111"
	tutorID    = "22222222-2222-4222-8222-222222222222"
	sessionID  = "33333333-3333-4333-8333-333333333333"
	contractID = "44444444-4444-4444-8444-444444444444"
)

type fixture struct {
	uc        *DefaultRescheduleUsecase
	requests  *fakeRescheduleRepo
	sessions  *fakeSessionRepo
	contracts *fakeContractRepo
	notifier  *fakeNotifier
}

func newFixture(rescheduleCount, maxReschedule int) *fixture {
	requests := &fakeRescheduleRepo{requests: map[string]*domain.RescheduleRequest{}}
	sessions := &fakeSessionRepo{sessions: map[string]*domain.Session{
		sessionID: {ID: sessionID, ContractID: contractID, Status: domain.SessionScheduled},
	}}
	contracts := &fakeContractRepo{contracts: map[string]*domain.Contract{
		contractID: {
			ID:              contractID,
			ParentID:        parentID,
			TutorID:         tutorID,
			Status:          domain.ContractActive,
			RescheduleCount: rescheduleCount,
			Package:         &domain.Package{ID: "p-1", MaxReschedule: maxReschedule},
		},
	}}
	notifier := &fakeNotifier{}

	return &fixture{
		uc:        NewDefaultRescheduleUsecase(requests, sessions, contracts, notifier),
		requests:  requests,
		sessions:  sessions,
		contracts: contracts,
		notifier:  notifier,
	}
}

func validInput() *rescheduledto.CreateRescheduleInput {
	return &rescheduledto.CreateRescheduleInput{
		SessionID:    sessionID,
		RequestedBy:  parentID,
		NewDate:      time.Now().AddDate(0, 0, 7),
		NewStartTime: "18:00",
		NewEndTime:   "19:30",
		Reason:       "family trip",
	}
}

func TestRequestRescheduleCreatesPending(t *testing.T) {
	fx := newFixture(0, 2)

	req, err := fx.uc.RequestReschedule(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.RescheduleOpen {
		t.Errorf("status = %s, want pending", req.Status)
	}
	if len(fx.notifier.calls) != 1 || fx.notifier.calls[0] != tutorID {
		t.Errorf("notified = %v, want counterparty %s", fx.notifier.calls, tutorID)
	}
}

func TestRequestRescheduleCapReached(t *testing.T) {
	fx := newFixture(2, 2)

	_, err := fx.uc.RequestReschedule(validInput())
	if !errors.Is(err, domain.ErrRescheduleLimit) {
		t.Fatalf("expected ErrRescheduleLimit, got %v", err)
	}
}

func TestRequestRescheduleInactiveContract(t *testing.T) {
	fx := newFixture(0, 2)
	fx.contracts.contracts[contractID].Status = domain.ContractUnpaid

	_, err := fx.uc.RequestReschedule(validInput())
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRequestRescheduleStranger(t *testing.T) {
	fx := newFixture(0, 2)
	input := validInput()
	input.RequestedBy = "55555555-5555-4555-8555-555555555555"

	_, err := fx.uc.RequestReschedule(input)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApproveRescheduleMovesSession(t *testing.T) {
	fx := newFixture(0, 2)
	req, err := fx.uc.RequestReschedule(validInput())
	if err != nil {
		t.Fatal(err)
	}
	fx.notifier.calls = nil

	if err := fx.uc.ApproveReschedule(req.ID, tutorID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session := fx.sessions.sessions[sessionID]
	if session.Status != domain.SessionRescheduled {
		t.Errorf("session status = %s, want rescheduled", session.Status)
	}
	if session.StartTime != "18:00" || session.EndTime != "19:30" {
		t.Errorf("session times = %s-%s", session.StartTime, session.EndTime)
	}
	if fx.contracts.contracts[contractID].RescheduleCount != 1 {
		t.Errorf("reschedule count = %d, want 1", fx.contracts.contracts[contractID].RescheduleCount)
	}
	if fx.requests.requests[req.ID].Status != domain.RescheduleApproved {
		t.Errorf("request status = %s", fx.requests.requests[req.ID].Status)
	}
	if len(fx.notifier.calls) != 2 {
		t.Errorf("notified = %v, want both parties", fx.notifier.calls)
	}
}

func TestApproveRescheduleAtCapFails(t *testing.T) {
	fx := newFixture(1, 2)
	req, err := fx.uc.RequestReschedule(validInput())
	if err != nil {
		t.Fatal(err)
	}

	// the cap fills up between request and approval
	fx.contracts.contracts[contractID].RescheduleCount = 2

	if err := fx.uc.ApproveReschedule(req.ID, tutorID); !errors.Is(err, domain.ErrRescheduleLimit) {
		t.Fatalf("expected ErrRescheduleLimit, got %v", err)
	}
	if fx.requests.requests[req.ID].Status != domain.RescheduleOpen {
		t.Error("failed approval must leave the request pending")
	}
	if fx.sessions.sessions[sessionID].Status != domain.SessionScheduled {
		t.Error("failed approval must not move the session")
	}
}

func TestApproveRescheduleByRequesterRejected(t *testing.T) {
	fx := newFixture(0, 2)
	req, err := fx.uc.RequestReschedule(validInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := fx.uc.ApproveReschedule(req.ID, parentID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for self-approval, got %v", err)
	}
}

func TestRejectRescheduleTerminal(t *testing.T) {
	fx := newFixture(0, 2)
	req, err := fx.uc.RequestReschedule(validInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := fx.uc.RejectReschedule(req.ID, tutorID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.requests.requests[req.ID].Status != domain.RescheduleRejected {
		t.Errorf("request status = %s", fx.requests.requests[req.ID].Status)
	}
	if fx.contracts.contracts[contractID].RescheduleCount != 0 {
		t.Error("rejection must not consume the reschedule budget")
	}
	if err := fx.uc.ApproveReschedule(req.ID, tutorID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("approving a rejected request: expected ErrConflict, got %v", err)
	}
}
