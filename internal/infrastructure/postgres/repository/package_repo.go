package repository

import (
	"errors"

	"github.com/mathbridge/mathbridge-backend/internal/domain"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/mappers"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPackageRepository struct {
	db *gorm.DB
}

func NewDefaultPackageRepository(db *gorm.DB) *DefaultPackageRepository {
	return &DefaultPackageRepository{db: db}
}

func (r *DefaultPackageRepository) CreatePackage(pkg *domain.Package) error {
	return r.db.Create(mappers.ToGORMPackage(pkg)).Error
}

func (r *DefaultPackageRepository) GetPackageByID(packageID string) (*domain.Package, error) {
	var model models.PackageModel
	if err := r.db.First(&model, "id = ?", packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPackage(&model), nil
}

func (r *DefaultPackageRepository) ListPackages() ([]*domain.Package, error) {
	var packageModels []models.PackageModel
	if err := r.db.Order("price ASC").Find(&packageModels).Error; err != nil {
		return nil, err
	}

	packages := make([]*domain.Package, len(packageModels))
	for i, model := range packageModels {
		packages[i] = mappers.ToDomainPackage(&model)
	}
	return packages, nil
}
