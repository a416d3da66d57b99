package usecase

import (
	"testing"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

func newMaintenanceFixture() (*DefaultContractUsecase, *fakeContractRepo, *fakeSessionRepo, *fakeNotifier) {
	contracts := newFakeContractRepo()
	sessions := &fakeSessionRepo{sessions: map[string]*domain.Session{}}
	notifier := &fakeNotifier{}
	uc := NewDefaultContractUsecase(
		contracts,
		sessions,
		&fakePackageRepo{packages: map[string]*domain.Package{}},
		&fakeUserRepo{users: map[string]*domain.User{}},
		notifier,
	)
	return uc, contracts, sessions, notifier
}

func TestSendSessionRemindersOnlyInsideWindow(t *testing.T) {
	uc, contracts, sessions, notifier := newMaintenanceFixture()
	contracts.contracts["c-1"] = &domain.Contract{
		ID: "c-1", ParentID: testParentID, TutorID: testTutorID, Status: domain.ContractActive,
	}

	leadTime := 24 * time.Hour
	window := 15 * time.Minute
	now := time.Now()

	sessions.sessions["inside"] = &domain.Session{
		ID: "inside", ContractID: "c-1", Date: now.Add(leadTime + 5*time.Minute),
		StartTime: "18:00", Status: domain.SessionScheduled,
	}
	sessions.sessions["next-window"] = &domain.Session{
		ID: "next-window", ContractID: "c-1", Date: now.Add(leadTime + 30*time.Minute),
		StartTime: "18:00", Status: domain.SessionScheduled,
	}
	sessions.sessions["too-soon"] = &domain.Session{
		ID: "too-soon", ContractID: "c-1", Date: now.Add(leadTime - time.Hour),
		StartTime: "18:00", Status: domain.SessionScheduled,
	}
	sessions.sessions["cancelled"] = &domain.Session{
		ID: "cancelled", ContractID: "c-1", Date: now.Add(leadTime + 5*time.Minute),
		StartTime: "18:00", Status: domain.SessionCancelled,
	}

	if err := uc.SendSessionReminders(leadTime, window); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// one scheduled session in the window, both parties reminded once
	if len(notifier.calls) != 2 {
		t.Fatalf("notified %v, want exactly parent and tutor", notifier.calls)
	}
	got := map[string]bool{notifier.calls[0]: true, notifier.calls[1]: true}
	if !got[testParentID] || !got[testTutorID] {
		t.Errorf("notified %v, want both contract parties", notifier.calls)
	}
}

func TestCompleteElapsedSessionsClosesSettledContract(t *testing.T) {
	uc, contracts, sessions, _ := newMaintenanceFixture()
	contracts.contracts["c-1"] = &domain.Contract{
		ID: "c-1", ParentID: testParentID, TutorID: testTutorID, Status: domain.ContractActive,
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	sessions.sessions["s-1"] = &domain.Session{
		ID: "s-1", ContractID: "c-1", Date: yesterday, Status: domain.SessionScheduled,
	}
	sessions.sessions["s-2"] = &domain.Session{
		ID: "s-2", ContractID: "c-1", Date: yesterday.AddDate(0, 0, -7), Status: domain.SessionRescheduled,
	}

	if err := uc.CompleteElapsedSessions(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"s-1", "s-2"} {
		if got := sessions.sessions[id].Status; got != domain.SessionCompleted {
			t.Errorf("session %s status = %s, want completed", id, got)
		}
	}
	if got := contracts.contracts["c-1"].Status; got != domain.ContractCompleted {
		t.Errorf("contract status = %s, want completed once the schedule is settled", got)
	}
}

func TestCompleteElapsedSessionsLeavesOpenContract(t *testing.T) {
	uc, contracts, sessions, _ := newMaintenanceFixture()
	contracts.contracts["c-1"] = &domain.Contract{
		ID: "c-1", ParentID: testParentID, TutorID: testTutorID, Status: domain.ContractActive,
	}

	sessions.sessions["past"] = &domain.Session{
		ID: "past", ContractID: "c-1", Date: time.Now().AddDate(0, 0, -1), Status: domain.SessionScheduled,
	}
	sessions.sessions["future"] = &domain.Session{
		ID: "future", ContractID: "c-1", Date: time.Now().AddDate(0, 0, 7), Status: domain.SessionScheduled,
	}

	if err := uc.CompleteElapsedSessions(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := sessions.sessions["past"].Status; got != domain.SessionCompleted {
		t.Errorf("past session status = %s, want completed", got)
	}
	if got := sessions.sessions["future"].Status; got != domain.SessionScheduled {
		t.Errorf("future session status = %s, must stay scheduled", got)
	}
	if got := contracts.contracts["c-1"].Status; got != domain.ContractActive {
		t.Errorf("contract status = %s, must stay active while sessions remain", got)
	}
}
