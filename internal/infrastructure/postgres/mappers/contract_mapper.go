package mappers

import (
	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
)

func ToDomainPackage(model *models.PackageModel) *domain.Package {
	return &domain.Package{
		ID:            model.ID,
		Name:          model.Name,
		Price:         model.Price,
		SessionCount:  model.SessionCount,
		MaxReschedule: model.MaxReschedule,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMPackage(pkg *domain.Package) *models.PackageModel {
	return &models.PackageModel{
		ID:            pkg.ID,
		Name:          pkg.Name,
		Price:         pkg.Price,
		SessionCount:  pkg.SessionCount,
		MaxReschedule: pkg.MaxReschedule,
		CreatedAt:     pkg.CreatedAt,
	}
}

func ToDomainContract(model *models.ContractModel) *domain.Contract {
	contract := &domain.Contract{
		ID:              model.ID,
		ParentID:        model.ParentID,
		TutorID:         model.TutorID,
		PackageID:       model.PackageID,
		DayMask:         model.DayMask,
		StartDate:       model.StartDate,
		EndDate:         model.EndDate,
		StartTime:       model.StartTime,
		EndTime:         model.EndTime,
		Status:          model.Status,
		RescheduleCount: model.RescheduleCount,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	if model.Package.ID != "" {
		contract.Package = ToDomainPackage(&model.Package)
	}
	return contract
}

func ToGORMContract(contract *domain.Contract) *models.ContractModel {
	return &models.ContractModel{
		ID:              contract.ID,
		ParentID:        contract.ParentID,
		TutorID:         contract.TutorID,
		PackageID:       contract.PackageID,
		DayMask:         contract.DayMask,
		StartDate:       contract.StartDate,
		EndDate:         contract.EndDate,
		StartTime:       contract.StartTime,
		EndTime:         contract.EndTime,
		Status:          contract.Status,
		RescheduleCount: contract.RescheduleCount,
		CreatedAt:       contract.CreatedAt,
		UpdatedAt:       contract.UpdatedAt,
	}
}

func ToDomainSession(model *models.SessionModel) *domain.Session {
	return &domain.Session{
		ID:         model.ID,
		ContractID: model.ContractID,
		TutorID:    model.TutorID,
		Date:       model.Date,
		StartTime:  model.StartTime,
		EndTime:    model.EndTime,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToGORMSession(session *domain.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:         session.ID,
		ContractID: session.ContractID,
		TutorID:    session.TutorID,
		Date:       session.Date,
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		Status:     session.Status,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}
}

func ToDomainReschedule(model *models.RescheduleRequestModel) *domain.RescheduleRequest {
	return &domain.RescheduleRequest{
		ID:           model.ID,
		SessionID:    model.SessionID,
		ContractID:   model.ContractID,
		RequestedBy:  model.RequestedBy,
		NewDate:      model.NewDate,
		NewStartTime: model.NewStartTime,
		NewEndTime:   model.NewEndTime,
		Reason:       model.Reason,
		Status:       model.Status,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMReschedule(req *domain.RescheduleRequest) *models.RescheduleRequestModel {
	return &models.RescheduleRequestModel{
		ID:           req.ID,
		SessionID:    req.SessionID,
		ContractID:   req.ContractID,
		RequestedBy:  req.RequestedBy,
		NewDate:      req.NewDate,
		NewStartTime: req.NewStartTime,
		NewEndTime:   req.NewEndTime,
		Reason:       req.Reason,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}
}
