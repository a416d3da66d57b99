package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

// SendSessionReminders notifies both parties of sessions starting leadTime
// from now. The sweep window equals the sweep interval, so consecutive runs
// cover disjoint slices of time and a session is reminded about once.
func (uc *DefaultContractUsecase) SendSessionReminders(leadTime, window time.Duration) error {
	from := time.Now().Add(leadTime)
	sessions, err := uc.SessionRepo.FindUpcoming(from, from.Add(window))
	if err != nil {
		return err
	}

	for _, s := range sessions {
		contract, err := uc.ContractRepo.GetContractByID(s.ContractID)
		if err != nil {
			slog.Error("failed to load contract for reminder",
				"session_id", s.ID, "contract_id", s.ContractID, "error", err.Error())
			continue
		}
		message := fmt.Sprintf("Upcoming session on %s at %s.",
			s.Date.Format("2006-01-02"), s.StartTime)
		for _, userID := range []string{contract.ParentID, contract.TutorID} {
			if err := uc.NotificationUc.Notify(userID, "Session reminder", message, domain.NotifyReminder); err != nil {
				slog.Error("failed to send reminder", "session_id", s.ID, "user_id", userID, "error", err.Error())
			}
		}
	}
	return nil
}

// CompleteElapsedSessions closes out sessions whose date has passed and then
// completes any contract whose schedule is fully settled.
func (uc *DefaultContractUsecase) CompleteElapsedSessions() error {
	today := time.Now().Truncate(24 * time.Hour)
	sessions, err := uc.SessionRepo.FindElapsed(today)
	if err != nil {
		return err
	}

	touched := make(map[string]struct{})
	for _, s := range sessions {
		if err := uc.SessionRepo.UpdateSessionStatus(s.ID, domain.SessionCompleted); err != nil {
			slog.Error("failed to complete session", "session_id", s.ID, "error", err.Error())
			continue
		}
		touched[s.ContractID] = struct{}{}
	}

	for contractID := range touched {
		if err := uc.CompleteContract(contractID); err != nil {
			// open sessions remain, the contract closes on a later sweep
			if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
				continue
			}
			slog.Error("failed to complete contract", "contract_id", contractID, "error", err.Error())
		}
	}
	return nil
}
