package repository

import (
	"fmt"
	"time"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultReportRepository struct {
	db *gorm.DB
}

func NewDefaultReportRepository(db *gorm.DB) *DefaultReportRepository {
	return &DefaultReportRepository{db: db}
}

func (r *DefaultReportRepository) GetTutorEarnings(tutorID string, dateFrom, dateTo time.Time) (*domain.TutorEarnings, error) {
	stats := domain.TutorEarnings{TutorID: tutorID}

	sessionQuery := func() *gorm.DB {
		return r.db.Model(&models.SessionModel{}).
			Where("tutor_id = ?", tutorID).
			Where("date BETWEEN ? AND ?", dateFrom, dateTo)
	}

	if err := sessionQuery().
		Where("status = ?", domain.SessionCompleted).
		Count(&stats.CompletedSessions).Error; err != nil {
		return nil, fmt.Errorf("count completed sessions: %w", err)
	}

	if err := sessionQuery().
		Where("status = ?", domain.SessionCancelled).
		Count(&stats.CancelledSessions).Error; err != nil {
		return nil, fmt.Errorf("count cancelled sessions: %w", err)
	}

	if err := r.db.Model(&models.ContractModel{}).
		Where("tutor_id = ? AND status = ?", tutorID, domain.ContractActive).
		Count(&stats.ActiveContracts).Error; err != nil {
		return nil, fmt.Errorf("count active contracts: %w", err)
	}

	// Earned amount is pro-rated: completed sessions times per-session price of
	// the contract's package.
	type EarnAgg struct {
		Earned float64
	}
	var agg EarnAgg
	if err := r.db.Model(&models.SessionModel{}).
		Joins("JOIN contracts ON contracts.id = sessions.contract_id").
		Joins("JOIN packages ON packages.id = contracts.package_id").
		Where("sessions.tutor_id = ?", tutorID).
		Where("sessions.status = ?", domain.SessionCompleted).
		Where("sessions.date BETWEEN ? AND ?", dateFrom, dateTo).
		Select("COALESCE(SUM(packages.price / packages.session_count), 0) as earned").
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("earnings agg: %w", err)
	}
	stats.EarnedAmount = agg.Earned

	return &stats, nil
}

func (r *DefaultReportRepository) GetPlatformSummary(dateFrom, dateTo time.Time) (*domain.PlatformSummary, error) {
	var summary domain.PlatformSummary

	txAgg := func(txType domain.TransactionType) (int64, float64, error) {
		type Agg struct {
			Count int64
			Sum   float64
		}
		var agg Agg
		err := r.db.Model(&models.WalletTransactionModel{}).
			Where("type = ? AND status = ?", txType, domain.TxStatusCompleted).
			Where("created_at BETWEEN ? AND ?", dateFrom, dateTo).
			Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as sum").
			Scan(&agg).Error
		return agg.Count, agg.Sum, err
	}

	var err error
	if summary.DepositsCompleted, summary.DepositAmount, err = txAgg(domain.TypeDeposit); err != nil {
		return nil, fmt.Errorf("deposit agg: %w", err)
	}
	if summary.WithdrawalsCompleted, summary.WithdrawalAmount, err = txAgg(domain.TypeWithdrawal); err != nil {
		return nil, fmt.Errorf("withdrawal agg: %w", err)
	}

	if err := r.db.Model(&models.ContractModel{}).
		Where("status = ?", domain.ContractActive).
		Count(&summary.ContractsActive).Error; err != nil {
		return nil, fmt.Errorf("count active contracts: %w", err)
	}
	if err := r.db.Model(&models.ContractModel{}).
		Where("status = ?", domain.ContractCompleted).
		Count(&summary.ContractsCompleted).Error; err != nil {
		return nil, fmt.Errorf("count completed contracts: %w", err)
	}
	if err := r.db.Model(&models.SessionModel{}).
		Where("status = ?", domain.SessionCompleted).
		Where("date BETWEEN ? AND ?", dateFrom, dateTo).
		Count(&summary.SessionsCompleted).Error; err != nil {
		return nil, fmt.Errorf("count completed sessions: %w", err)
	}

	return &summary, nil
}
