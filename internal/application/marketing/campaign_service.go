package marketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/shopspring/decimal"
)

// CampaignService handles campaign business operations
type CampaignService struct {
	campaignRepo marketing.CampaignRepository
	leadRepo     marketing.LeadRepository
	location     *time.Location
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(campaignRepo marketing.CampaignRepository, leadRepo marketing.LeadRepository, loc *time.Location) *CampaignService {
	if loc == nil {
		loc = time.UTC
	}
	return &CampaignService{campaignRepo: campaignRepo, leadRepo: leadRepo, location: loc}
}

// Create creates a planned campaign
func (s *CampaignService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCampaignRequest) (*CampaignResponse, error) {
	start, err := common.ParseDate(req.StartDate, s.location)
	if err != nil {
		return nil, err
	}
	end, err := common.ParseOptionalDate(req.EndDate, s.location)
	if err != nil {
		return nil, err
	}
	c, err := marketing.NewCampaign(tenantID, req.Name, req.Channel, start, end, req.Budget)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := c.SetStatus(marketing.CampaignStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		c.SetNotes(req.Notes)
	}

	if err := s.campaignRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	response := ToCampaignResponse(c)
	return &response, nil
}

// GetByID retrieves a campaign by ID
func (s *CampaignService) GetByID(ctx context.Context, tenantID, campaignID uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByIDForTenant(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}
	response := ToCampaignResponse(c)
	return &response, nil
}

// List retrieves a page of campaigns, latest start first by default
func (s *CampaignService) List(ctx context.Context, tenantID uuid.UUID, filter CampaignListFilter) ([]CampaignResponse, int64, error) {
	domainFilter := filter.Filter("start_date", "desc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Channel != "" {
		domainFilter.Filters["channel"] = filter.Channel
	}

	campaigns, err := s.campaignRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.campaignRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		out[i] = ToCampaignResponse(&campaigns[i])
	}
	return out, total, nil
}

// Update updates a campaign
func (s *CampaignService) Update(ctx context.Context, tenantID, campaignID uuid.UUID, req UpdateCampaignRequest) (*CampaignResponse, error) {
	c, err := s.campaignRepo.FindByIDForTenant(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Channel != nil || req.StartDate != nil || req.EndDate != nil || req.Budget != nil {
		start, end := c.StartDate, c.EndDate
		if req.StartDate != nil {
			if start, err = common.ParseDate(*req.StartDate, s.location); err != nil {
				return nil, err
			}
		}
		if req.EndDate != nil {
			if end, err = common.ParseOptionalDate(*req.EndDate, s.location); err != nil {
				return nil, err
			}
		}
		budget := c.Budget
		if req.Budget != nil {
			budget = *req.Budget
		}
		if err := c.Update(common.StringOr(req.Name, c.Name), common.StringOr(req.Channel, c.Channel), start, end, budget); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := c.SetStatus(marketing.CampaignStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}

	if err := s.campaignRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	response := ToCampaignResponse(c)
	return &response, nil
}

// Delete deletes a campaign. Its leads keep their data.
func (s *CampaignService) Delete(ctx context.Context, tenantID, campaignID uuid.UUID) error {
	if _, err := s.campaignRepo.FindByIDForTenant(ctx, tenantID, campaignID); err != nil {
		return err
	}
	return s.campaignRepo.DeleteForTenant(ctx, tenantID, campaignID)
}

// Stats counts the campaign's leads by status. Every status is listed,
// including empty ones.
func (s *CampaignService) Stats(ctx context.Context, tenantID, campaignID uuid.UUID) (*CampaignStatsResponse, error) {
	if _, err := s.campaignRepo.FindByIDForTenant(ctx, tenantID, campaignID); err != nil {
		return nil, err
	}
	counts, err := s.leadRepo.CountByCampaignAndStatus(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[marketing.LeadStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] += c.Count
	}

	resp := &CampaignStatsResponse{
		CampaignID: campaignID,
		ByStatus:   make([]StatusCount, 0, len(marketing.AllLeadStatuses)),
	}
	for _, st := range marketing.AllLeadStatuses {
		n := byStatus[st]
		resp.Total += n
		resp.ByStatus = append(resp.ByStatus, StatusCount{Status: string(st), Count: n})
	}
	resp.Converted = byStatus[marketing.LeadStatusConverted]
	resp.ConversionRate = "0.0%"
	if resp.Total > 0 {
		rate := decimal.NewFromInt(resp.Converted).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(resp.Total))
		resp.ConversionRate = rate.StringFixed(1) + "%"
	}
	return resp, nil
}
