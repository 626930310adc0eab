package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest represents a request to create a partner.
// An empty code allocates the next PT code.
type CreatePartnerRequest struct {
	Code        string     `json:"code" binding:"max=20"`
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Type        string     `json:"type" binding:"required,oneof=agency installer maintenance supplier customer"`
	ContactName string     `json:"contact_name" binding:"max=100"`
	Email       string     `json:"email" binding:"omitempty,email,max=200"`
	Phone       string     `json:"phone" binding:"max=20"`
	Address     string     `json:"address" binding:"max=500"`
	RegionID    *uuid.UUID `json:"region_id"`
	AreaID      *uuid.UUID `json:"area_id"`
	Notes       string     `json:"notes" binding:"max=2000"`
}

// UpdatePartnerRequest represents a request to update a partner
type UpdatePartnerRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Type        *string    `json:"type" binding:"omitempty,oneof=agency installer maintenance supplier customer"`
	ContactName *string    `json:"contact_name" binding:"omitempty,max=100"`
	Email       *string    `json:"email" binding:"omitempty,max=200"`
	Phone       *string    `json:"phone" binding:"omitempty,max=20"`
	Address     *string    `json:"address" binding:"omitempty,max=500"`
	RegionID    *uuid.UUID `json:"region_id"`
	AreaID      *uuid.UUID `json:"area_id"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes       *string    `json:"notes" binding:"omitempty,max=2000"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	ContactName    string     `json:"contact_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	Prefecture     string     `json:"prefecture"`
	RegionID       *uuid.UUID `json:"region_id"`
	AreaID         *uuid.UUID `json:"area_id"`
	PipedriveOrgID *int64     `json:"pipedrive_org_id"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// PartnerListFilter represents filter options for the partner list
type PartnerListFilter struct {
	common.ListQuery
	Type       string `form:"type" binding:"omitempty,oneof=agency installer maintenance supplier customer"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	RegionID   string `form:"region_id" binding:"omitempty,uuid"`
	Prefecture string `form:"prefecture" binding:"max=10"`
}

// ToPartnerResponse converts a domain Partner
func ToPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Type:           string(p.Type),
		ContactName:    p.ContactName,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Prefecture:     p.Prefecture,
		RegionID:       p.RegionID,
		AreaID:         p.AreaID,
		PipedriveOrgID: p.PipedriveOrgID,
		Status:         string(p.Status),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToPartnerResponses converts a slice of partners
func ToPartnerResponses(ps []partner.Partner) []PartnerResponse {
	out := make([]PartnerResponse, len(ps))
	for i := range ps {
		out[i] = ToPartnerResponse(&ps[i])
	}
	return out
}

// CreatePricingRequest represents a request to create a pricing.
// Dates use YYYY-MM-DD.
type CreatePricingRequest struct {
	PartnerID uuid.UUID       `json:"partner_id" binding:"required"`
	ItemCode  string          `json:"item_code" binding:"required,min=1,max=50"`
	ItemName  string          `json:"item_name" binding:"max=200"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Currency  string          `json:"currency" binding:"omitempty,len=3"`
	ValidFrom string          `json:"valid_from" binding:"required,datetime=2006-01-02"`
	ValidTo   string          `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
	Notes     string          `json:"notes" binding:"max=2000"`
}

// UpdatePricingRequest represents a request to update a pricing
type UpdatePricingRequest struct {
	ItemCode  *string          `json:"item_code" binding:"omitempty,min=1,max=50"`
	ItemName  *string          `json:"item_name" binding:"omitempty,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Currency  *string          `json:"currency" binding:"omitempty,len=3"`
	ValidFrom *string          `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	// ValidTo "" clears the end date
	ValidTo *string `json:"valid_to" binding:"omitempty,max=10"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// EffectivePricingQuery asks for the pricing valid on Date
type EffectivePricingQuery struct {
	PartnerID string `form:"partner_id" binding:"required,uuid"`
	ItemCode  string `form:"item_code" binding:"required,max=50"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// PricingResponse represents a pricing in API responses
type PricingResponse struct {
	ID        uuid.UUID       `json:"id"`
	PartnerID uuid.UUID       `json:"partner_id"`
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	ValidFrom string          `json:"valid_from"`
	ValidTo   *string         `json:"valid_to"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToPricingResponse converts a domain Pricing
func ToPricingResponse(p *partner.Pricing) PricingResponse {
	resp := PricingResponse{
		ID:        p.ID,
		PartnerID: p.PartnerID,
		ItemCode:  p.ItemCode,
		ItemName:  p.ItemName,
		UnitPrice: p.UnitPrice,
		Currency:  p.Currency,
		ValidFrom: p.ValidFrom.Format(common.DateLayout),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
	if p.ValidTo != nil {
		to := p.ValidTo.Format(common.DateLayout)
		resp.ValidTo = &to
	}
	return resp
}

// ToPricingResponses converts a slice of pricings
func ToPricingResponses(ps []partner.Pricing) []PricingResponse {
	out := make([]PricingResponse, len(ps))
	for i := range ps {
		out[i] = ToPricingResponse(&ps[i])
	}
	return out
}

// PipedriveSyncResponse reports the remote organization id
type PipedriveSyncResponse struct {
	PartnerID      uuid.UUID `json:"partner_id"`
	PipedriveOrgID int64     `json:"pipedrive_org_id"`
	Created        bool      `json:"created"`
}
