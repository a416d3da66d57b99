package domain

import "time"

type Package struct {
	ID            string
	Name          string
	Price         float64
	SessionCount  int
	MaxReschedule int
	CreatedAt     time.Time
}

type PackageRepository interface {
	CreatePackage(pkg *Package) error
	GetPackageByID(packageID string) (*Package, error)
	ListPackages() ([]*Package, error)
}
