package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is an external supplier the organisation purchases from.
type Vendor struct {
	VendorID      string `json:"vendorID"`
	Name          string `json:"name"`
	ContactName   string `json:"contactName"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	Category      string `json:"category"`
	Active        bool   `json:"active"`
	AuditFields
}

// ContractStatus is the lifecycle status of a vendor contract.
type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
)

// Contract is an agreement with a vendor tracked for renewal and spend oversight.
type Contract struct {
	ContractID   string          `json:"contractID"`
	VendorID     string          `json:"vendorID"`
	Title        string          `json:"title"`
	Value        decimal.Decimal `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Status       ContractStatus  `json:"status"`
	AuditFields
}
