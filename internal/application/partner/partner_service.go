package partner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"go.uber.org/zap"
)

// PipedriveOrganizations writes organizations to Pipedrive
type PipedriveOrganizations interface {
	UpsertOrganization(ctx context.Context, id *int64, org integration.PipedriveOrganization) (int64, error)
}

// PartnerService handles partner business operations
type PartnerService struct {
	partnerRepo partner.PartnerRepository
	locator     geoapp.Locator
	pipedrive   PipedriveOrganizations
	events      *event.Dispatcher
	logger      *zap.Logger
}

// NewPartnerService creates a new PartnerService. pipedrive may be nil when
// the integration is not configured.
func NewPartnerService(
	partnerRepo partner.PartnerRepository,
	locator geoapp.Locator,
	pipedrive PipedriveOrganizations,
	events *event.Dispatcher,
	logger *zap.Logger,
) *PartnerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerService{
		partnerRepo: partnerRepo,
		locator:     locator,
		pipedrive:   pipedrive,
		events:      events,
		logger:      logger,
	}
}

// NextCode returns the code the next partner would receive
func (s *PartnerService) NextCode(ctx context.Context, tenantID uuid.UUID) (*common.NextCodeResponse, error) {
	code, err := common.NextCode(ctx, s.partnerRepo.ListCodes, tenantID, shared.CodePrefixPartner, shared.DefaultCodeWidth)
	if err != nil {
		return nil, err
	}
	return &common.NextCodeResponse{Code: code}, nil
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePartnerRequest) (*PartnerResponse, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		next, err := common.NextCode(ctx, s.partnerRepo.ListCodes, tenantID, shared.CodePrefixPartner, shared.DefaultCodeWidth)
		if err != nil {
			return nil, err
		}
		code = next
	} else {
		exists, err := s.partnerRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Partner with this code already exists")
		}
	}

	p, err := partner.NewPartner(tenantID, code, req.Name, partner.Type(req.Type))
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Email != "" || req.Phone != "" {
		contact, err := valueobject.NewContact(req.ContactName, req.Email, req.Phone)
		if err != nil {
			return nil, err
		}
		p.SetContact(contact)
	}
	if req.Address != "" || req.RegionID != nil || req.AreaID != nil {
		if err := s.relocate(ctx, p, req.Address, req.RegionID, req.AreaID); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		p.SetNotes(req.Notes)
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, p)

	response := ToPartnerResponse(p)
	return &response, nil
}

// GetByID retrieves a partner by ID
func (s *PartnerService) GetByID(ctx context.Context, tenantID, partnerID uuid.UUID) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}
	response := ToPartnerResponse(p)
	return &response, nil
}

// List retrieves a page of partners
func (s *PartnerService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]PartnerResponse, int64, error) {
	domainFilter := filter.Filter("code", "asc")
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.RegionID != "" {
		domainFilter.Filters["region_id"] = filter.RegionID
	}
	if filter.Prefecture != "" {
		domainFilter.Filters["prefecture"] = filter.Prefecture
	}

	partners, err := s.partnerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.partnerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPartnerResponses(partners), total, nil
}

// Update updates a partner
func (s *PartnerService) Update(ctx context.Context, tenantID, partnerID uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Type != nil {
		partnerType := p.Type
		if req.Type != nil {
			partnerType = partner.Type(*req.Type)
		}
		if err := p.Update(common.StringOr(req.Name, p.Name), partnerType); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Email != nil || req.Phone != nil {
		contact, err := valueobject.NewContact(
			common.StringOr(req.ContactName, p.ContactName),
			common.StringOr(req.Email, p.Email),
			common.StringOr(req.Phone, p.Phone),
		)
		if err != nil {
			return nil, err
		}
		p.SetContact(contact)
	}
	if req.Address != nil || req.RegionID != nil || req.AreaID != nil {
		if err := s.relocate(ctx, p, common.StringOr(req.Address, p.Address), req.RegionID, req.AreaID); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := p.SetStatus(partner.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		p.SetNotes(*req.Notes)
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// Delete deletes a partner
func (s *PartnerService) Delete(ctx context.Context, tenantID, partnerID uuid.UUID) error {
	if _, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID); err != nil {
		return err
	}
	return s.partnerRepo.DeleteForTenant(ctx, tenantID, partnerID)
}

// SyncPipedrive upserts the partner as a Pipedrive organization and stores
// the remote id
func (s *PartnerService) SyncPipedrive(ctx context.Context, tenantID, partnerID uuid.UUID) (*PipedriveSyncResponse, error) {
	if s.pipedrive == nil {
		return nil, shared.NewDomainError("INTEGRATION_NOT_CONFIGURED", "Pipedrive integration is not configured")
	}

	p, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}

	created := p.PipedriveOrgID == nil
	orgID, err := s.pipedrive.UpsertOrganization(ctx, p.PipedriveOrgID, integration.PipedriveOrganization{
		Name:    p.Name,
		Address: p.Address,
	})
	if err != nil {
		s.logger.Warn("Pipedrive organization sync failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("partner_id", partnerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shared.NewDomainError("INTEGRATION_FAILED", "Pipedrive request failed"), err)
	}

	p.LinkPipedrive(orgID)
	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, p)

	return &PipedriveSyncResponse{PartnerID: p.ID, PipedriveOrgID: orgID, Created: created}, nil
}

func (s *PartnerService) relocate(ctx context.Context, p *partner.Partner, address string, regionID, areaID *uuid.UUID) error {
	loc, err := s.locator.Locate(ctx, p.TenantID, geoapp.LocateInput{
		Address:  address,
		RegionID: regionID,
		AreaID:   areaID,
	})
	if err != nil {
		return err
	}
	p.Relocate(loc.Address, loc.Prefecture, loc.RegionID, loc.AreaID)
	return nil
}
