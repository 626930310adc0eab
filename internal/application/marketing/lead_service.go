package marketing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	partnerapp "github.com/kioskcrm/backend/internal/application/partner"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"go.uber.org/zap"
)

// PipedriveDeals writes persons and deals to Pipedrive
type PipedriveDeals interface {
	UpsertPerson(ctx context.Context, id *int64, person integration.PipedrivePerson) (int64, error)
	UpsertDeal(ctx context.Context, id *int64, deal integration.PipedriveDeal) (int64, error)
}

// LeadService handles lead business operations
type LeadService struct {
	leadRepo     marketing.LeadRepository
	campaignRepo marketing.CampaignRepository
	partnerRepo  partner.PartnerRepository
	locator      geoapp.Locator
	txScope      TransactionScope
	pipedrive    PipedriveDeals
	events       *event.Dispatcher
	logger       *zap.Logger
}

// LeadServiceDeps groups the collaborators of LeadService
type LeadServiceDeps struct {
	LeadRepo     marketing.LeadRepository
	CampaignRepo marketing.CampaignRepository
	PartnerRepo  partner.PartnerRepository
	Locator      geoapp.Locator
	// TxScope defaults to a NoOpTransactionScope over the repositories
	TxScope TransactionScope
	// Pipedrive may be nil when the integration is not configured
	Pipedrive PipedriveDeals
	Events    *event.Dispatcher
	Logger    *zap.Logger
}

// NewLeadService creates a new LeadService
func NewLeadService(deps LeadServiceDeps) *LeadService {
	txScope := deps.TxScope
	if txScope == nil {
		txScope = NewNoOpTransactionScope(deps.LeadRepo, deps.PartnerRepo)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{
		leadRepo:     deps.LeadRepo,
		campaignRepo: deps.CampaignRepo,
		partnerRepo:  deps.PartnerRepo,
		locator:      deps.Locator,
		txScope:      txScope,
		pipedrive:    deps.Pipedrive,
		events:       deps.Events,
		logger:       logger,
	}
}

// Create creates a lead. The address is matched to a region and area.
func (s *LeadService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLeadRequest) (*LeadResponse, error) {
	l, err := marketing.NewLead(tenantID, req.Name, req.CompanyName, marketing.LeadSource(req.Source))
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.Phone != "" {
		contact, err := valueobject.NewContact(req.Name, req.Email, req.Phone)
		if err != nil {
			return nil, err
		}
		l.SetContact(contact)
	}
	if req.Address != "" || req.RegionID != nil || req.AreaID != nil {
		if err := s.relocate(ctx, l, req.Address, req.RegionID, req.AreaID); err != nil {
			return nil, err
		}
	}
	if req.CampaignID != nil {
		if err := s.checkCampaign(ctx, tenantID, *req.CampaignID); err != nil {
			return nil, err
		}
		l.AttachCampaign(req.CampaignID)
	}
	if req.Status != "" {
		if err := l.SetStatus(marketing.LeadStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		l.SetNotes(req.Notes)
	}

	if err := s.leadRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, l)

	response := ToLeadResponse(l)
	return &response, nil
}

// GetByID retrieves a lead by ID
func (s *LeadService) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*LeadResponse, error) {
	l, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	response := ToLeadResponse(l)
	return &response, nil
}

// List retrieves a page of leads, newest first by default
func (s *LeadService) List(ctx context.Context, tenantID uuid.UUID, filter LeadListFilter) ([]LeadResponse, int64, error) {
	domainFilter := filter.Filter("created_at", "desc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}
	if filter.CampaignID != "" {
		domainFilter.Filters["campaign_id"] = filter.CampaignID
	}
	if filter.RegionID != "" {
		domainFilter.Filters["region_id"] = filter.RegionID
	}

	leads, err := s.leadRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leadRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LeadResponse, len(leads))
	for i := range leads {
		out[i] = ToLeadResponse(&leads[i])
	}
	return out, total, nil
}

// Update updates a lead
func (s *LeadService) Update(ctx context.Context, tenantID, leadID uuid.UUID, req UpdateLeadRequest) (*LeadResponse, error) {
	l, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.CompanyName != nil || req.Source != nil {
		source := l.Source
		if req.Source != nil {
			source = marketing.LeadSource(*req.Source)
		}
		if err := l.Update(common.StringOr(req.Name, l.Name), common.StringOr(req.CompanyName, l.CompanyName), source); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil {
		contact, err := valueobject.NewContact(l.Name, common.StringOr(req.Email, l.Email), common.StringOr(req.Phone, l.Phone))
		if err != nil {
			return nil, err
		}
		l.SetContact(contact)
	}
	if req.Address != nil || req.RegionID != nil || req.AreaID != nil {
		if err := s.relocate(ctx, l, common.StringOr(req.Address, l.Address), req.RegionID, req.AreaID); err != nil {
			return nil, err
		}
	}
	if req.ClearCampaign {
		l.AttachCampaign(nil)
	} else if req.CampaignID != nil {
		if err := s.checkCampaign(ctx, tenantID, *req.CampaignID); err != nil {
			return nil, err
		}
		l.AttachCampaign(req.CampaignID)
	}
	if req.Status != nil {
		if l.Status == marketing.LeadStatusConverted {
			return nil, shared.NewDomainError("INVALID_STATE", "A converted lead keeps its status")
		}
		if err := l.SetStatus(marketing.LeadStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		l.SetNotes(*req.Notes)
	}

	if err := s.leadRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, l)

	response := ToLeadResponse(l)
	return &response, nil
}

// Delete deletes a lead
func (s *LeadService) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	if _, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID); err != nil {
		return err
	}
	return s.leadRepo.DeleteForTenant(ctx, tenantID, leadID)
}

// Convert creates a customer partner from the lead and marks the lead
// converted. Both writes share one transaction.
func (s *LeadService) Convert(ctx context.Context, tenantID, leadID uuid.UUID) (*ConvertLeadResponse, error) {
	var (
		lead *marketing.Lead
		p    *partner.Partner
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lead, err = repos.LeadRepo().FindByIDForTenant(ctx, tenantID, leadID)
		if err != nil {
			return err
		}
		code, err := common.NextCode(ctx, repos.PartnerRepo().ListCodes, tenantID, shared.CodePrefixPartner, shared.DefaultCodeWidth)
		if err != nil {
			return err
		}
		p, err = partnerFromLead(lead, code)
		if err != nil {
			return err
		}
		if err := lead.Convert(p.ID); err != nil {
			return err
		}
		if err := repos.PartnerRepo().Save(ctx, p); err != nil {
			return err
		}
		return repos.LeadRepo().Save(ctx, lead)
	})
	if err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, lead, p)

	return &ConvertLeadResponse{
		Lead:    ToLeadResponse(lead),
		Partner: partnerapp.ToPartnerResponse(p),
	}, nil
}

func partnerFromLead(l *marketing.Lead, code string) (*partner.Partner, error) {
	name := l.CompanyName
	if name == "" {
		name = l.Name
	}
	p, err := partner.NewPartner(l.TenantID, code, name, partner.TypeCustomer)
	if err != nil {
		return nil, err
	}
	contact, err := valueobject.NewContact(l.Name, l.Email, l.Phone)
	if err != nil {
		return nil, err
	}
	p.SetContact(contact)
	if l.Address != "" || l.RegionID != nil {
		p.Relocate(l.Address, l.Prefecture, l.RegionID, l.AreaID)
	}
	if l.Notes != "" {
		p.SetNotes(l.Notes)
	}
	return p, nil
}

// SyncPipedrive upserts the lead as a Pipedrive person with one open deal.
// A converted lead whose partner is linked to a Pipedrive organization is
// attached to it.
func (s *LeadService) SyncPipedrive(ctx context.Context, tenantID, leadID uuid.UUID) (*LeadPipedriveSyncResponse, error) {
	if s.pipedrive == nil {
		return nil, shared.NewDomainError("INTEGRATION_NOT_CONFIGURED", "Pipedrive integration is not configured")
	}
	l, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	var orgID *int64
	if l.ConvertedPartnerID != nil {
		p, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, *l.ConvertedPartnerID)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if p != nil {
			orgID = p.PipedriveOrgID
		}
	}

	person := integration.PipedrivePerson{Name: l.Name, OrgID: orgID}
	if l.Email != "" {
		person.Email = []integration.PipedriveContact{{Value: l.Email, Primary: true, Label: "work"}}
	}
	if l.Phone != "" {
		person.Phone = []integration.PipedriveContact{{Value: l.Phone, Primary: true, Label: "work"}}
	}

	created := l.PipedrivePersonID == nil
	personID, err := s.pipedrive.UpsertPerson(ctx, l.PipedrivePersonID, person)
	if err != nil {
		return nil, s.pipedriveFailed(tenantID, leadID, "person", err)
	}
	dealID, err := s.pipedrive.UpsertDeal(ctx, l.PipedriveDealID, integration.PipedriveDeal{
		Title:    dealTitle(l),
		PersonID: &personID,
		OrgID:    orgID,
	})
	if err != nil {
		return nil, s.pipedriveFailed(tenantID, leadID, "deal", err)
	}

	l.LinkPipedrive(personID, dealID)
	if err := s.leadRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	return &LeadPipedriveSyncResponse{
		LeadID:   l.ID,
		PersonID: personID,
		DealID:   dealID,
		Created:  created,
	}, nil
}

func (s *LeadService) pipedriveFailed(tenantID, leadID uuid.UUID, what string, err error) error {
	s.logger.Warn("pipedrive lead sync failed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("lead_id", leadID.String()),
		zap.String("object", what),
		zap.Error(err))
	return fmt.Errorf("%w: %v", shared.NewDomainError("INTEGRATION_FAILED", "Pipedrive request failed"), err)
}

func dealTitle(l *marketing.Lead) string {
	name := strings.TrimSpace(l.CompanyName)
	if name == "" {
		name = l.Name
	}
	return name + " 商談"
}

func (s *LeadService) checkCampaign(ctx context.Context, tenantID, campaignID uuid.UUID) error {
	if _, err := s.campaignRepo.FindByIDForTenant(ctx, tenantID, campaignID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_CAMPAIGN", "Campaign does not exist")
		}
		return err
	}
	return nil
}

func (s *LeadService) relocate(ctx context.Context, l *marketing.Lead, address string, regionID, areaID *uuid.UUID) error {
	loc, err := s.locator.Locate(ctx, l.TenantID, geoapp.LocateInput{
		Address:  address,
		RegionID: regionID,
		AreaID:   areaID,
	})
	if err != nil {
		return err
	}
	l.Relocate(loc.Address, loc.Prefecture, loc.RegionID, loc.AreaID)
	return nil
}
