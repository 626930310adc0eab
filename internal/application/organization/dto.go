package organization

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/organization"
)

// CreateFCRequest represents a request to create an FC.
// An empty code allocates the next FC code.
type CreateFCRequest struct {
	Code        string `json:"code" binding:"max=20"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Phone       string `json:"phone" binding:"max=20"`
	Address     string `json:"address" binding:"max=500"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// UpdateFCRequest represents a request to update an FC
type UpdateFCRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

// FCResponse represents an FC in API responses
type FCResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// FCListFilter represents filter options for the FC list
type FCListFilter struct {
	common.ListQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// ToFCResponse converts a domain FC to FCResponse
func ToFCResponse(f *organization.FC) FCResponse {
	return FCResponse{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		ContactName: f.ContactName,
		Email:       f.Email,
		Phone:       f.Phone,
		Address:     f.Address,
		Status:      string(f.Status),
		Notes:       f.Notes,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		Version:     f.Version,
	}
}

// ToFCResponses converts a slice of FCs
func ToFCResponses(fcs []organization.FC) []FCResponse {
	out := make([]FCResponse, len(fcs))
	for i := range fcs {
		out[i] = ToFCResponse(&fcs[i])
	}
	return out
}

// CreateCorporationRequest represents a request to create a corporation
type CreateCorporationRequest struct {
	FCID               uuid.UUID `json:"fc_id" binding:"required"`
	Code               string    `json:"code" binding:"max=20"`
	Name               string    `json:"name" binding:"required,min=1,max=200"`
	RepresentativeName string    `json:"representative_name" binding:"max=100"`
	Email              string    `json:"email" binding:"omitempty,email,max=200"`
	Phone              string    `json:"phone" binding:"max=20"`
	Address            string    `json:"address" binding:"max=500"`
	Notes              string    `json:"notes" binding:"max=2000"`
}

// UpdateCorporationRequest represents a request to update a corporation
type UpdateCorporationRequest struct {
	FCID               *uuid.UUID `json:"fc_id"`
	Name               *string    `json:"name" binding:"omitempty,min=1,max=200"`
	RepresentativeName *string    `json:"representative_name" binding:"omitempty,max=100"`
	Email              *string    `json:"email" binding:"omitempty,max=200"`
	Phone              *string    `json:"phone" binding:"omitempty,max=20"`
	Address            *string    `json:"address" binding:"omitempty,max=500"`
	Status             *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes              *string    `json:"notes" binding:"omitempty,max=2000"`
}

// CorporationResponse represents a corporation in API responses
type CorporationResponse struct {
	ID                 uuid.UUID `json:"id"`
	FCID               uuid.UUID `json:"fc_id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	RepresentativeName string    `json:"representative_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Version            int       `json:"version"`
}

// CorporationListFilter represents filter options for the corporation list
type CorporationListFilter struct {
	common.ListQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	FCID   string `form:"fc_id" binding:"omitempty,uuid"`
}

// ToCorporationResponse converts a domain Corporation
func ToCorporationResponse(c *organization.Corporation) CorporationResponse {
	return CorporationResponse{
		ID:                 c.ID,
		FCID:               c.FCID,
		Code:               c.Code,
		Name:               c.Name,
		RepresentativeName: c.RepresentativeName,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		Status:             string(c.Status),
		Notes:              c.Notes,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
		Version:            c.Version,
	}
}

// ToCorporationResponses converts a slice of corporations
func ToCorporationResponses(cs []organization.Corporation) []CorporationResponse {
	out := make([]CorporationResponse, len(cs))
	for i := range cs {
		out[i] = ToCorporationResponse(&cs[i])
	}
	return out
}

// CreateBranchRequest represents a request to create a branch.
// RegionID and AreaID override the values derived from Address.
type CreateBranchRequest struct {
	CorporationID uuid.UUID  `json:"corporation_id" binding:"required"`
	Code          string     `json:"code" binding:"max=20"`
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	Address       string     `json:"address" binding:"max=500"`
	RegionID      *uuid.UUID `json:"region_id"`
	AreaID        *uuid.UUID `json:"area_id"`
	Phone         string     `json:"phone" binding:"max=20"`
	ManagerName   string     `json:"manager_name" binding:"max=100"`
	Notes         string     `json:"notes" binding:"max=2000"`
}

// UpdateBranchRequest represents a request to update a branch
type UpdateBranchRequest struct {
	CorporationID *uuid.UUID `json:"corporation_id"`
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Address       *string    `json:"address" binding:"omitempty,max=500"`
	RegionID      *uuid.UUID `json:"region_id"`
	AreaID        *uuid.UUID `json:"area_id"`
	Phone         *string    `json:"phone" binding:"omitempty,max=20"`
	ManagerName   *string    `json:"manager_name" binding:"omitempty,max=100"`
	Status        *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes         *string    `json:"notes" binding:"omitempty,max=2000"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID            uuid.UUID  `json:"id"`
	CorporationID uuid.UUID  `json:"corporation_id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	Prefecture    string     `json:"prefecture"`
	City          string     `json:"city"`
	RegionID      *uuid.UUID `json:"region_id"`
	AreaID        *uuid.UUID `json:"area_id"`
	Phone         string     `json:"phone"`
	ManagerName   string     `json:"manager_name"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Version       int        `json:"version"`
}

// BranchListFilter represents filter options for the branch list
type BranchListFilter struct {
	common.ListQuery
	Status        string `form:"status" binding:"omitempty,oneof=active inactive"`
	CorporationID string `form:"corporation_id" binding:"omitempty,uuid"`
	RegionID      string `form:"region_id" binding:"omitempty,uuid"`
	AreaID        string `form:"area_id" binding:"omitempty,uuid"`
	Prefecture    string `form:"prefecture" binding:"max=10"`
}

// ToBranchResponse converts a domain Branch
func ToBranchResponse(b *organization.Branch) BranchResponse {
	return BranchResponse{
		ID:            b.ID,
		CorporationID: b.CorporationID,
		Code:          b.Code,
		Name:          b.Name,
		Address:       b.Address,
		Prefecture:    b.Prefecture,
		City:          b.City,
		RegionID:      b.RegionID,
		AreaID:        b.AreaID,
		Phone:         b.Phone,
		ManagerName:   b.ManagerName,
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Version:       b.Version,
	}
}

// ToBranchResponses converts a slice of branches
func ToBranchResponses(bs []organization.Branch) []BranchResponse {
	out := make([]BranchResponse, len(bs))
	for i := range bs {
		out[i] = ToBranchResponse(&bs[i])
	}
	return out
}

// CorporationNode is a corporation with its branches
type CorporationNode struct {
	CorporationResponse
	Branches []BranchResponse `json:"branches"`
}

// FCTreeResponse is an FC with its corporations and their branches
type FCTreeResponse struct {
	FCResponse
	Corporations []CorporationNode `json:"corporations"`
}
