package dto

import (
	"time"

	"github.com/sgoap/sgoap-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest defines the payload for registering a vendor.
type CreateVendorRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	ContactName  string `json:"contactName" binding:"max=200"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string `json:"contactPhone" binding:"max=50"`
	Category     string `json:"category" binding:"max=100"`
}

// UpdateVendorRequest defines the mutable vendor fields.
type UpdateVendorRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=200"`
	ContactName  *string `json:"contactName" binding:"omitempty,max=200"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone *string `json:"contactPhone" binding:"omitempty,max=50"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	Active       *bool   `json:"active"`
}

// VendorResponse is the API shape of a vendor.
type VendorResponse struct {
	VendorID     string    `json:"vendorID"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	Category     string    `json:"category"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToVendorResponse maps a domain vendor to its API shape.
func ToVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		VendorID:     v.VendorID,
		Name:         v.Name,
		ContactName:  v.ContactName,
		ContactEmail: v.ContactEmail,
		ContactPhone: v.ContactPhone,
		Category:     v.Category,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
	}
}

// CreateContractRequest defines the payload for recording a vendor contract.
type CreateContractRequest struct {
	Title        string          `json:"title" binding:"required,max=200"`
	Value        decimal.Decimal `json:"value" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	StartDate    time.Time       `json:"startDate" binding:"required"`
	EndDate      time.Time       `json:"endDate" binding:"required"`
}

// UpdateContractRequest defines the mutable contract fields.
type UpdateContractRequest struct {
	Title   *string    `json:"title" binding:"omitempty,max=200"`
	EndDate *time.Time `json:"endDate"`
	Status  *string    `json:"status" binding:"omitempty,oneof=active expired terminated"`
}

// ContractResponse is the API shape of a contract.
type ContractResponse struct {
	ContractID   string          `json:"contractID"`
	VendorID     string          `json:"vendorID"`
	Title        string          `json:"title"`
	Value        decimal.Decimal `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Status       string          `json:"status"`
}

// ToContractResponse maps a domain contract to its API shape.
func ToContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ContractID:   c.ContractID,
		VendorID:     c.VendorID,
		Title:        c.Title,
		Value:        c.Value,
		CurrencyCode: c.CurrencyCode,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Status:       string(c.Status),
	}
}

// ListVendorsParams defines query parameters for listing vendors.
type ListVendorsParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
}

// ListVendorsResponse wraps a page of vendors.
type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

// ListContractsResponse wraps a vendor's contracts.
type ListContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
}
