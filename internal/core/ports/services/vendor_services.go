package services

import (
	"context"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

// VendorSvcFacade defines the interface for vendor and contract services.
// Writes are restricted to Procurement and elevated roles.
type VendorSvcFacade interface {
	// CreateVendor registers a new vendor.
	CreateVendor(ctx context.Context, actor domain.Actor, req dto.CreateVendorRequest) (*domain.Vendor, error)

	// GetVendorByID retrieves a vendor by ID.
	GetVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)

	// ListVendors retrieves a page of vendors.
	ListVendors(ctx context.Context, params dto.ListVendorsParams) ([]domain.Vendor, error)

	// UpdateVendor updates vendor details or active status.
	UpdateVendor(ctx context.Context, vendorID string, actor domain.Actor, req dto.UpdateVendorRequest) (*domain.Vendor, error)

	// CreateContract records a contract against a vendor.
	CreateContract(ctx context.Context, vendorID string, actor domain.Actor, req dto.CreateContractRequest) (*domain.Contract, error)

	// ListContractsByVendor retrieves a vendor's contracts.
	ListContractsByVendor(ctx context.Context, vendorID string) ([]domain.Contract, error)

	// UpdateContract updates a contract's end date or status.
	UpdateContract(ctx context.Context, contractID string, actor domain.Actor, req dto.UpdateContractRequest) (*domain.Contract, error)
}
