package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mathbridge/mathbridge-backend/internal/domain"
)

// GenerateSessions materializes the recurring schedule of a contract: it walks
// day by day from StartDate, keeps dates whose weekday is set in the day mask,
// and stops once the package session count is reached. When the range runs out
// before enough matching dates are found it returns ErrInsufficientSchedule and
// no sessions. Generated dates are strictly ascending.
func GenerateSessions(contract *domain.Contract, sessionCount int) ([]*domain.Session, error) {
	if sessionCount <= 0 {
		return nil, fmt.Errorf("%w: session count must be positive", domain.ErrValidation)
	}
	if !domain.DayMaskValid(contract.DayMask) {
		return nil, fmt.Errorf("%w: day mask %d out of range", domain.ErrValidation, contract.DayMask)
	}

	sessions := make([]*domain.Session, 0, sessionCount)
	for d := contract.StartDate; !d.After(contract.EndDate); d = d.AddDate(0, 0, 1) {
		if !contract.MatchesDay(d) {
			continue
		}
		sessions = append(sessions, &domain.Session{
			ID:         uuid.New().String(),
			ContractID: contract.ID,
			TutorID:    contract.TutorID,
			Date:       d,
			StartTime:  contract.StartTime,
			EndTime:    contract.EndTime,
			Status:     domain.SessionScheduled,
			CreatedAt:  time.Now(),
		})
		if len(sessions) == sessionCount {
			return sessions, nil
		}
	}

	return nil, fmt.Errorf("%w: range %s..%s yields %d of %d sessions",
		domain.ErrInsufficientSchedule,
		contract.StartDate.Format("2006-01-02"),
		contract.EndDate.Format("2006-01-02"),
		len(sessions), sessionCount)
}
