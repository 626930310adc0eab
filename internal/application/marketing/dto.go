package marketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	partnerapp "github.com/kioskcrm/backend/internal/application/partner"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/shopspring/decimal"
)

// CreateCampaignRequest represents a request to create a campaign
type CreateCampaignRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Channel   string          `json:"channel" binding:"max=50"`
	StartDate string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Budget    decimal.Decimal `json:"budget"`
	Status    string          `json:"status" binding:"omitempty,oneof=planned active finished"`
	Notes     string          `json:"notes" binding:"max=2000"`
}

// UpdateCampaignRequest represents a request to update a campaign.
// An empty EndDate clears it.
type UpdateCampaignRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Channel   *string          `json:"channel" binding:"omitempty,max=50"`
	StartDate *string          `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string          `json:"end_date"`
	Budget    *decimal.Decimal `json:"budget"`
	Status    *string          `json:"status" binding:"omitempty,oneof=planned active finished"`
	Notes     *string          `json:"notes" binding:"omitempty,max=2000"`
}

// CampaignResponse represents a campaign in API responses
type CampaignResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Channel   string          `json:"channel"`
	StartDate string          `json:"start_date"`
	EndDate   *string         `json:"end_date"`
	Budget    decimal.Decimal `json:"budget"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// CampaignListFilter represents filter options for the campaign list
type CampaignListFilter struct {
	common.ListQuery
	Status  string `form:"status" binding:"omitempty,oneof=planned active finished"`
	Channel string `form:"channel" binding:"omitempty,max=50"`
}

// ToCampaignResponse converts a domain Campaign
func ToCampaignResponse(c *marketing.Campaign) CampaignResponse {
	resp := CampaignResponse{
		ID:        c.ID,
		Name:      c.Name,
		Channel:   c.Channel,
		StartDate: c.StartDate.Format(common.DateLayout),
		Budget:    c.Budget,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
	if c.EndDate != nil {
		d := c.EndDate.Format(common.DateLayout)
		resp.EndDate = &d
	}
	return resp
}

// StatusCount is the number of leads in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CampaignStatsResponse counts a campaign's leads by status
type CampaignStatsResponse struct {
	CampaignID     uuid.UUID     `json:"campaign_id"`
	Total          int64         `json:"total"`
	Converted      int64         `json:"converted"`
	ConversionRate string        `json:"conversion_rate"`
	ByStatus       []StatusCount `json:"by_status"`
}

// CreateLeadRequest represents a request to create a lead
type CreateLeadRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	CompanyName string     `json:"company_name" binding:"max=200"`
	Email       string     `json:"email" binding:"omitempty,email,max=200"`
	Phone       string     `json:"phone" binding:"max=20"`
	Address     string     `json:"address" binding:"max=500"`
	RegionID    *uuid.UUID `json:"region_id"`
	AreaID      *uuid.UUID `json:"area_id"`
	Source      string     `json:"source" binding:"required,oneof=web referral event ad other"`
	Status      string     `json:"status" binding:"omitempty,oneof=new contacted qualified lost"`
	CampaignID  *uuid.UUID `json:"campaign_id"`
	Notes       string     `json:"notes" binding:"max=2000"`
}

// UpdateLeadRequest represents a request to update a lead.
// Conversion goes through the convert endpoint.
type UpdateLeadRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyName   *string    `json:"company_name" binding:"omitempty,max=200"`
	Email         *string    `json:"email" binding:"omitempty,max=200"`
	Phone         *string    `json:"phone" binding:"omitempty,max=20"`
	Address       *string    `json:"address" binding:"omitempty,max=500"`
	RegionID      *uuid.UUID `json:"region_id"`
	AreaID        *uuid.UUID `json:"area_id"`
	Source        *string    `json:"source" binding:"omitempty,oneof=web referral event ad other"`
	Status        *string    `json:"status" binding:"omitempty,oneof=new contacted qualified lost"`
	CampaignID    *uuid.UUID `json:"campaign_id"`
	ClearCampaign bool       `json:"clear_campaign"`
	Notes         *string    `json:"notes" binding:"omitempty,max=2000"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	CompanyName        string     `json:"company_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	Prefecture         string     `json:"prefecture"`
	RegionID           *uuid.UUID `json:"region_id"`
	AreaID             *uuid.UUID `json:"area_id"`
	Source             string     `json:"source"`
	Status             string     `json:"status"`
	CampaignID         *uuid.UUID `json:"campaign_id"`
	PipedrivePersonID  *int64     `json:"pipedrive_person_id"`
	PipedriveDealID    *int64     `json:"pipedrive_deal_id"`
	ConvertedPartnerID *uuid.UUID `json:"converted_partner_id"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Version            int        `json:"version"`
}

// LeadListFilter represents filter options for the lead list
type LeadListFilter struct {
	common.ListQuery
	Status     string `form:"status" binding:"omitempty,oneof=new contacted qualified converted lost"`
	Source     string `form:"source" binding:"omitempty,oneof=web referral event ad other"`
	CampaignID string `form:"campaign_id" binding:"omitempty,uuid"`
	RegionID   string `form:"region_id" binding:"omitempty,uuid"`
}

// ToLeadResponse converts a domain Lead
func ToLeadResponse(l *marketing.Lead) LeadResponse {
	return LeadResponse{
		ID:                 l.ID,
		Name:               l.Name,
		CompanyName:        l.CompanyName,
		Email:              l.Email,
		Phone:              l.Phone,
		Address:            l.Address,
		Prefecture:         l.Prefecture,
		RegionID:           l.RegionID,
		AreaID:             l.AreaID,
		Source:             string(l.Source),
		Status:             string(l.Status),
		CampaignID:         l.CampaignID,
		PipedrivePersonID:  l.PipedrivePersonID,
		PipedriveDealID:    l.PipedriveDealID,
		ConvertedPartnerID: l.ConvertedPartnerID,
		Notes:              l.Notes,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
		Version:            l.Version,
	}
}

// ConvertLeadResponse is the converted lead and the partner created from it
type ConvertLeadResponse struct {
	Lead    LeadResponse               `json:"lead"`
	Partner partnerapp.PartnerResponse `json:"partner"`
}

// LeadPipedriveSyncResponse carries the remote ids after a sync
type LeadPipedriveSyncResponse struct {
	LeadID   uuid.UUID `json:"lead_id"`
	PersonID int64     `json:"person_id"`
	DealID   int64     `json:"deal_id"`
	Created  bool      `json:"created"`
}
