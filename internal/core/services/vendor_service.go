package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
	portssvc "github.com/sgoap/sgoap-backend/internal/core/ports/services"
	"github.com/sgoap/sgoap-backend/internal/dto"
)

type vendorService struct {
	BaseService
	vendorRepo portsrepo.VendorRepositoryFacade
}

// NewVendorService creates the vendor and contract service.
func NewVendorService(vendorRepo portsrepo.VendorRepositoryFacade) portssvc.VendorSvcFacade {
	return &vendorService{vendorRepo: vendorRepo}
}

// canManageVendors reports whether the actor may create or edit vendors and
// contracts. Reads are open to all authenticated employees.
func canManageVendors(actor domain.Actor) bool {
	return actor.Role.IsElevated() || actor.Department == domain.DeptProcurement
}

func (s *vendorService) CreateVendor(ctx context.Context, actor domain.Actor, req dto.CreateVendorRequest) (*domain.Vendor, error) {
	if !canManageVendors(actor) {
		return nil, fmt.Errorf("vendor management is restricted to procurement: %w", apperrors.ErrForbidden)
	}

	now := time.Now()
	v := domain.Vendor{
		VendorID:     uuid.NewString(),
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Category:     req.Category,
		Active:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.vendorRepo.SaveVendor(ctx, v); err != nil {
		s.LogError(ctx, err, "failed to save vendor")
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	s.LogInfo(ctx, "vendor created", slog.String("vendor_id", v.VendorID))
	return &v, nil
}

func (s *vendorService) GetVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	v, err := s.vendorRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vendor %s: %w", vendorID, err)
	}
	return v, nil
}

func (s *vendorService) ListVendors(ctx context.Context, params dto.ListVendorsParams) ([]domain.Vendor, error) {
	vendors, err := s.vendorRepo.ListVendors(ctx, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	return vendors, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, vendorID string, actor domain.Actor, req dto.UpdateVendorRequest) (*domain.Vendor, error) {
	if !canManageVendors(actor) {
		return nil, fmt.Errorf("vendor management is restricted to procurement: %w", apperrors.ErrForbidden)
	}

	v, err := s.vendorRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vendor %s: %w", vendorID, err)
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.ContactName != nil {
		v.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		v.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		v.ContactPhone = *req.ContactPhone
	}
	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.Active != nil {
		v.Active = *req.Active
	}
	v.LastUpdatedAt = time.Now()
	v.LastUpdatedBy = actor.EmployeeID

	if err := s.vendorRepo.UpdateVendor(ctx, *v); err != nil {
		s.LogError(ctx, err, "failed to update vendor", slog.String("vendor_id", vendorID))
		return nil, fmt.Errorf("failed to update vendor %s: %w", vendorID, err)
	}
	return v, nil
}

func (s *vendorService) CreateContract(ctx context.Context, vendorID string, actor domain.Actor, req dto.CreateContractRequest) (*domain.Contract, error) {
	if !canManageVendors(actor) {
		return nil, fmt.Errorf("contract management is restricted to procurement: %w", apperrors.ErrForbidden)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("contract must end after it starts: %w", apperrors.ErrValidation)
	}
	if req.Value.IsNegative() {
		return nil, fmt.Errorf("contract value must not be negative: %w", apperrors.ErrValidation)
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vendor %s: %w", vendorID, err)
	}
	if !vendor.Active {
		return nil, fmt.Errorf("vendor %s is inactive: %w", vendorID, apperrors.ErrInvalidState)
	}

	now := time.Now()
	c := domain.Contract{
		ContractID:   uuid.NewString(),
		VendorID:     vendor.VendorID,
		Title:        req.Title,
		Value:        req.Value,
		CurrencyCode: req.CurrencyCode,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.ContractActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.EmployeeID,
		},
	}
	if err := s.vendorRepo.SaveContract(ctx, c); err != nil {
		s.LogError(ctx, err, "failed to save contract", slog.String("vendor_id", vendorID))
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	s.LogInfo(ctx, "contract created", slog.String("contract_id", c.ContractID), slog.String("vendor_id", vendorID))
	return &c, nil
}

func (s *vendorService) ListContractsByVendor(ctx context.Context, vendorID string) ([]domain.Contract, error) {
	contracts, err := s.vendorRepo.ListContractsByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts for vendor %s: %w", vendorID, err)
	}
	if contracts == nil {
		contracts = []domain.Contract{}
	}
	return contracts, nil
}

func (s *vendorService) UpdateContract(ctx context.Context, contractID string, actor domain.Actor, req dto.UpdateContractRequest) (*domain.Contract, error) {
	if !canManageVendors(actor) {
		return nil, fmt.Errorf("contract management is restricted to procurement: %w", apperrors.ErrForbidden)
	}

	c, err := s.vendorRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	if req.Status != nil {
		c.Status = domain.ContractStatus(*req.Status)
	}
	c.LastUpdatedAt = time.Now()
	c.LastUpdatedBy = actor.EmployeeID

	if err := s.vendorRepo.UpdateContract(ctx, *c); err != nil {
		s.LogError(ctx, err, "failed to update contract", slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to update contract %s: %w", contractID, err)
	}
	return c, nil
}
