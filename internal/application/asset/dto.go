package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/shopspring/decimal"
)

// CreateKioskRequest represents a request to register a kiosk.
// A non-empty InstallAddress installs the kiosk immediately.
type CreateKioskRequest struct {
	SerialNumber   string           `json:"serial_number" binding:"required,min=1,max=64"`
	ModelName      string           `json:"model_name" binding:"required,min=1,max=100"`
	Status         string           `json:"status" binding:"omitempty,oneof=in_stock installed leased sold maintenance retired"`
	BranchID       *uuid.UUID       `json:"branch_id"`
	PartnerID      *uuid.UUID       `json:"partner_id"`
	InstallAddress string           `json:"install_address" binding:"max=500"`
	RegionID       *uuid.UUID       `json:"region_id"`
	AreaID         *uuid.UUID       `json:"area_id"`
	InstalledAt    string           `json:"installed_at" binding:"omitempty,datetime=2006-01-02"`
	ListPrice      *decimal.Decimal `json:"list_price"`
	MonthlyFee     *decimal.Decimal `json:"monthly_fee"`
	Notes          string           `json:"notes" binding:"max=2000"`
}

// UpdateKioskRequest represents a request to update a kiosk.
// Status accepts any valid value.
type UpdateKioskRequest struct {
	ModelName      *string          `json:"model_name" binding:"omitempty,min=1,max=100"`
	Status         *string          `json:"status" binding:"omitempty,oneof=in_stock installed leased sold maintenance retired"`
	BranchID       *uuid.UUID       `json:"branch_id"`
	PartnerID      *uuid.UUID       `json:"partner_id"`
	ClearBranch    bool             `json:"clear_branch"`
	ClearPartner   bool             `json:"clear_partner"`
	InstallAddress *string          `json:"install_address" binding:"omitempty,max=500"`
	RegionID       *uuid.UUID       `json:"region_id"`
	AreaID         *uuid.UUID       `json:"area_id"`
	InstalledAt    *string          `json:"installed_at" binding:"omitempty,datetime=2006-01-02"`
	ListPrice      *decimal.Decimal `json:"list_price"`
	MonthlyFee     *decimal.Decimal `json:"monthly_fee"`
	Notes          *string          `json:"notes" binding:"omitempty,max=2000"`
}

// KioskResponse represents a kiosk in API responses
type KioskResponse struct {
	ID             uuid.UUID       `json:"id"`
	SerialNumber   string          `json:"serial_number"`
	ModelName      string          `json:"model_name"`
	Status         string          `json:"status"`
	BranchID       *uuid.UUID      `json:"branch_id"`
	PartnerID      *uuid.UUID      `json:"partner_id"`
	InstallAddress string          `json:"install_address"`
	Prefecture     string          `json:"prefecture"`
	City           string          `json:"city"`
	RegionID       *uuid.UUID      `json:"region_id"`
	AreaID         *uuid.UUID      `json:"area_id"`
	InstalledAt    *string         `json:"installed_at"`
	ListPrice      decimal.Decimal `json:"list_price"`
	MonthlyFee     decimal.Decimal `json:"monthly_fee"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// KioskListFilter represents filter options for the kiosk list
type KioskListFilter struct {
	common.ListQuery
	Status    string `form:"status" binding:"omitempty,oneof=in_stock installed leased sold maintenance retired"`
	BranchID  string `form:"branch_id" binding:"omitempty,uuid"`
	PartnerID string `form:"partner_id" binding:"omitempty,uuid"`
	RegionID  string `form:"region_id" binding:"omitempty,uuid"`
	AreaID    string `form:"area_id" binding:"omitempty,uuid"`
}

// ToKioskResponse converts a domain Kiosk
func ToKioskResponse(k *asset.Kiosk) KioskResponse {
	resp := KioskResponse{
		ID:             k.ID,
		SerialNumber:   k.SerialNumber,
		ModelName:      k.ModelName,
		Status:         string(k.Status),
		BranchID:       k.BranchID,
		PartnerID:      k.PartnerID,
		InstallAddress: k.InstallAddress,
		Prefecture:     k.Prefecture,
		City:           k.City,
		RegionID:       k.RegionID,
		AreaID:         k.AreaID,
		ListPrice:      k.ListPrice,
		MonthlyFee:     k.MonthlyFee,
		Notes:          k.Notes,
		CreatedAt:      k.CreatedAt,
		UpdatedAt:      k.UpdatedAt,
		Version:        k.Version,
	}
	if k.InstalledAt != nil {
		d := k.InstalledAt.Format(common.DateLayout)
		resp.InstalledAt = &d
	}
	return resp
}

// ToKioskResponses converts a slice of kiosks
func ToKioskResponses(ks []asset.Kiosk) []KioskResponse {
	out := make([]KioskResponse, len(ks))
	for i := range ks {
		out[i] = ToKioskResponse(&ks[i])
	}
	return out
}

// ContractRequest opens a lease or records a sale. Dates use YYYY-MM-DD.
type ContractRequest struct {
	PartnerID    *uuid.UUID      `json:"partner_id"`
	CustomerName string          `json:"customer_name" binding:"max=200"`
	StartDate    string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string          `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Amount       decimal.Decimal `json:"amount"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// EndContractRequest closes a lease
type EndContractRequest struct {
	EndDate string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// ContractResponse represents one lease/sale history row
type ContractResponse struct {
	ID           uuid.UUID       `json:"id"`
	KioskID      uuid.UUID       `json:"kiosk_id"`
	Type         string          `json:"type"`
	PartnerID    *uuid.UUID      `json:"partner_id"`
	CustomerName string          `json:"customer_name"`
	StartDate    string          `json:"start_date"`
	EndDate      *string         `json:"end_date"`
	Amount       decimal.Decimal `json:"amount"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToContractResponse converts a domain Contract
func ToContractResponse(c *asset.Contract) ContractResponse {
	resp := ContractResponse{
		ID:           c.ID,
		KioskID:      c.KioskID,
		Type:         string(c.Type),
		PartnerID:    c.PartnerID,
		CustomerName: c.CustomerName,
		StartDate:    c.StartDate.Format(common.DateLayout),
		Amount:       c.Amount,
		MonthlyFee:   c.MonthlyFee,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
	}
	if c.EndDate != nil {
		d := c.EndDate.Format(common.DateLayout)
		resp.EndDate = &d
	}
	return resp
}

// ContractActionResponse is the kiosk after a lease/sale/end together with
// the affected contract
type ContractActionResponse struct {
	Kiosk    KioskResponse    `json:"kiosk"`
	Contract ContractResponse `json:"contract"`
}

// StatusBucket is the number of kiosks in one status
type StatusBucket struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Label  string `json:"label"`
}

// RegionBucket is the number of kiosks placed in one region
type RegionBucket struct {
	RegionID   *uuid.UUID `json:"region_id"`
	RegionCode string     `json:"region_code"`
	RegionName string     `json:"region_name"`
	Count      int64      `json:"count"`
	Label      string     `json:"label"`
}

// KioskSummaryResponse aggregates kiosks by status and by region
type KioskSummaryResponse struct {
	Total    int64          `json:"total"`
	ByStatus []StatusBucket `json:"by_status"`
	ByRegion []RegionBucket `json:"by_region"`
	Summary  string         `json:"summary"`
}
