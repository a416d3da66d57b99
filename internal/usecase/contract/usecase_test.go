package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	contractdto "github.com/mathbridge/mathbridge-backend/internal/usecase/dto/contract"
)

type fakeContractRepo struct {
	contracts map[string]*domain.Contract
	sessions  map[string][]*domain.Session
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{
		contracts: map[string]*domain.Contract{},
		sessions:  map[string][]*domain.Session{},
	}
}

func (f *fakeContractRepo) CreateContract(c *domain.Contract) error {
	f.contracts[c.ID] = c
	return nil
}

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
	c, ok := f.contracts[id]
	if !ok || c.Status != oldStatus {
		return fmt.Errorf("%w: contract %s", domain.ErrConflict, id)
	}
	c.Status = newStatus
	return nil
}

func (f *fakeContractRepo) ActivateWithSessions(id string, sessions []*domain.Session) error {
	c, ok := f.contracts[id]
	if !ok || c.Status != domain.ContractPending {
		return fmt.Errorf("%w: contract %s", domain.ErrConflict, id)
	}
	c.Status = domain.ContractActive
	f.sessions[id] = sessions
	return nil
}

func (f *fakeContractRepo) IncrementRescheduleCount(id string, limit int) error { return nil }

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessionRepo) GetSessionByID(id string) (*domain.Session, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) GetSessionsByContractID(contractID string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.ContractID == contractID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateSessionStatus(id string, newStatus domain.SessionStatus) error {
	f.sessions[id].Status = newStatus
	return nil
}

func (f *fakeSessionRepo) Reschedule(id string, date time.Time, startTime, endTime string) error {
	return nil
}

func (f *fakeSessionRepo) FindUpcoming(from, to time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.Status != domain.SessionScheduled && s.Status != domain.SessionRescheduled {
			continue
		}
		if !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) FindElapsed(cutoff time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.Date.Before(cutoff) && (s.Status == domain.SessionScheduled || s.Status == domain.SessionRescheduled) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePackageRepo struct {
	packages map[string]*domain.Package
}

func (f *fakePackageRepo) CreatePackage(pkg *domain.Package) error { return nil }

func (f *fakePackageRepo) GetPackageByID(id string) (*domain.Package, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, fmt.Errorf("%w: package %s", domain.ErrNotFound, id)
	}
	return pkg, nil
}

func (f *fakePackageRepo) ListPackages() ([]*domain.Package, error) { return nil, nil }

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) CreateUser(u *domain.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*domain.User, error) {
	return nil, domain.ErrNotFound
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
	testParentID  = "11111111-1111-4111-8111-111111111111"
	testTutorID   = "22222222-2222-4222-8222-222222222222"
	testPackageID = "33333333-3333-4333-8333-333333333333"
)

func newContractFixture() (*DefaultContractUsecase, *fakeContractRepo, *fakeNotifier) {
	contracts := newFakeContractRepo()
	notifier := &fakeNotifier{}
	uc := NewDefaultContractUsecase(
		contracts,
		&fakeSessionRepo{sessions: map[string]*domain.Session{}},
		&fakePackageRepo{packages: map[string]*domain.Package{
			testPackageID: {ID: testPackageID, Name: "Algebra 12", Price: 2000000, SessionCount: 8, MaxReschedule: 2},
		}},
		&fakeUserRepo{users: map[string]*domain.User{
			testTutorID:  {ID: testTutorID, Role: domain.RoleTutor},
			testParentID: {ID: testParentID, Role: domain.RoleParent},
		}},
		notifier,
	)
	return uc, contracts, notifier
}

func validContractInput() *contractdto.CreateContractInput {
	return &contractdto.CreateContractInput{
		ParentID:  testParentID,
		TutorID:   testTutorID,
		PackageID: testPackageID,
		DayMask:   1<<1 | 1<<4,
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 31),
		StartTime: "18:00",
		EndTime:   "19:30",
	}
}

func TestCreateContractStartsUnpaid(t *testing.T) {
	uc, contracts, _ := newContractFixture()

	contract, err := uc.CreateContract(validContractInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractUnpaid {
		t.Errorf("status = %s, want unpaid", contract.Status)
	}
	if _, ok := contracts.contracts[contract.ID]; !ok {
		t.Error("contract not persisted")
	}
}

func TestCreateContractImpossibleSchedule(t *testing.T) {
	uc, contracts, _ := newContractFixture()

	input := validContractInput()
	input.DayMask = 1 // Sundays only
	input.EndDate = date(2024, time.January, 14)

	_, err := uc.CreateContract(input)
	if !errors.Is(err, domain.ErrInsufficientSchedule) {
		t.Fatalf("expected ErrInsufficientSchedule, got %v", err)
	}
	if len(contracts.contracts) != 0 {
		t.Error("impossible contract must not be persisted")
	}
}

func TestCreateContractValidation(t *testing.T) {
	uc, _, _ := newContractFixture()

	tests := []struct {
		name   string
		mutate func(*contractdto.CreateContractInput)
	}{
		{"end date before start", func(in *contractdto.CreateContractInput) {
			in.EndDate = in.StartDate.AddDate(0, 0, -1)
		}},
		{"end time before start", func(in *contractdto.CreateContractInput) {
			in.StartTime, in.EndTime = "19:30", "18:00"
		}},
		{"bad time format", func(in *contractdto.CreateContractInput) {
			in.StartTime = "6pm"
		}},
		{"tutor is not a tutor", func(in *contractdto.CreateContractInput) {
			in.TutorID = testParentID
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validContractInput()
			tt.mutate(input)
			if _, err := uc.CreateContract(input); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestActivateContractGeneratesSessions(t *testing.T) {
	uc, contracts, notifier := newContractFixture()

	contract, err := uc.CreateContract(validContractInput())
	if err != nil {
		t.Fatal(err)
	}
	contracts.contracts[contract.ID].Status = domain.ContractPending // paid

	activated, err := uc.ActivateContract(contract.ID, testTutorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if activated.Status != domain.ContractActive {
		t.Errorf("status = %s, want active", activated.Status)
	}
	if got := len(contracts.sessions[contract.ID]); got != 8 {
		t.Errorf("persisted %d sessions, want package count 8", got)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != testParentID {
		t.Errorf("notified = %v, want parent", notifier.calls)
	}
}

func TestActivateContractGuards(t *testing.T) {
	uc, contracts, _ := newContractFixture()

	contract, err := uc.CreateContract(validContractInput())
	if err != nil {
		t.Fatal(err)
	}

	// unpaid contract cannot be activated
	if _, err := uc.ActivateContract(contract.ID, testTutorID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("unpaid: expected ErrConflict, got %v", err)
	}

	contracts.contracts[contract.ID].Status = domain.ContractPending
	if _, err := uc.ActivateContract(contract.ID, testParentID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("wrong tutor: expected ErrNotFound, got %v", err)
	}
}

func TestCancelContractTransitions(t *testing.T) {
	uc, contracts, notifier := newContractFixture()

	contract, err := uc.CreateContract(validContractInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := uc.CancelContract(contract.ID, "99999999-9999-4999-8999-999999999999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("stranger: expected ErrNotFound, got %v", err)
	}

	if err := uc.CancelContract(contract.ID, testParentID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contracts.contracts[contract.ID].Status != domain.ContractCancelled {
		t.Errorf("status = %s, want cancelled", contracts.contracts[contract.ID].Status)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != testTutorID {
		t.Errorf("notified = %v, want counterparty", notifier.calls)
	}

	// active contracts cannot be cancelled
	contracts.contracts[contract.ID].Status = domain.ContractActive
	if err := uc.CancelContract(contract.ID, testParentID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("active: expected ErrConflict, got %v", err)
	}
}
