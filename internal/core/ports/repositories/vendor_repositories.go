package repositories

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
)

// VendorRepositoryFacade defines persistence operations for vendors and their
// contracts.
type VendorRepositoryFacade interface {
	SaveVendor(ctx context.Context, v domain.Vendor) error
	FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)
	ListVendors(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Vendor, error)
	UpdateVendor(ctx context.Context, v domain.Vendor) error

	SaveContract(ctx context.Context, c domain.Contract) error
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)
	ListContractsByVendor(ctx context.Context, vendorID string) ([]domain.Contract, error)
	UpdateContract(ctx context.Context, c domain.Contract) error
}
