package organization

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
)

// CorporationService handles corporation business operations
type CorporationService struct {
	corporationRepo organization.CorporationRepository
	fcRepo          organization.FCRepository
	branchRepo      organization.BranchRepository
	events          *event.Dispatcher
}

// NewCorporationService creates a new CorporationService
func NewCorporationService(
	corporationRepo organization.CorporationRepository,
	fcRepo organization.FCRepository,
	branchRepo organization.BranchRepository,
	events *event.Dispatcher,
) *CorporationService {
	return &CorporationService{
		corporationRepo: corporationRepo,
		fcRepo:          fcRepo,
		branchRepo:      branchRepo,
		events:          events,
	}
}

// NextCode returns the code the next corporation would receive
func (s *CorporationService) NextCode(ctx context.Context, tenantID uuid.UUID) (*common.NextCodeResponse, error) {
	code, err := common.NextCode(ctx, s.corporationRepo.ListCodes, tenantID, shared.CodePrefixCorporation, shared.DefaultCodeWidth)
	if err != nil {
		return nil, err
	}
	return &common.NextCodeResponse{Code: code}, nil
}

// Create creates a new corporation under an existing FC
func (s *CorporationService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCorporationRequest) (*CorporationResponse, error) {
	if _, err := s.fcRepo.FindByIDForTenant(ctx, tenantID, req.FCID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		next, err := common.NextCode(ctx, s.corporationRepo.ListCodes, tenantID, shared.CodePrefixCorporation, shared.DefaultCodeWidth)
		if err != nil {
			return nil, err
		}
		code = next
	} else {
		exists, err := s.corporationRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Corporation with this code already exists")
		}
	}

	corp, err := organization.NewCorporation(tenantID, req.FCID, code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.RepresentativeName != "" || req.Email != "" || req.Phone != "" {
		contact, err := valueobject.NewContact(req.RepresentativeName, req.Email, req.Phone)
		if err != nil {
			return nil, err
		}
		corp.SetContact(contact)
	}
	if req.Address != "" {
		corp.SetAddress(req.Address)
	}
	if req.Notes != "" {
		corp.SetNotes(req.Notes)
	}

	if err := s.corporationRepo.Save(ctx, corp); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, corp)

	response := ToCorporationResponse(corp)
	return &response, nil
}

// GetByID retrieves a corporation by ID
func (s *CorporationService) GetByID(ctx context.Context, tenantID, corporationID uuid.UUID) (*CorporationResponse, error) {
	corp, err := s.corporationRepo.FindByIDForTenant(ctx, tenantID, corporationID)
	if err != nil {
		return nil, err
	}
	response := ToCorporationResponse(corp)
	return &response, nil
}

// List retrieves a page of corporations
func (s *CorporationService) List(ctx context.Context, tenantID uuid.UUID, filter CorporationListFilter) ([]CorporationResponse, int64, error) {
	domainFilter := filter.Filter("code", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.FCID != "" {
		domainFilter.Filters["fc_id"] = filter.FCID
	}

	corps, err := s.corporationRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.corporationRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCorporationResponses(corps), total, nil
}

// Update updates a corporation
func (s *CorporationService) Update(ctx context.Context, tenantID, corporationID uuid.UUID, req UpdateCorporationRequest) (*CorporationResponse, error) {
	corp, err := s.corporationRepo.FindByIDForTenant(ctx, tenantID, corporationID)
	if err != nil {
		return nil, err
	}

	if req.FCID != nil && *req.FCID != corp.FCID {
		if _, err := s.fcRepo.FindByIDForTenant(ctx, tenantID, *req.FCID); err != nil {
			return nil, err
		}
		if err := corp.MoveTo(*req.FCID); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := corp.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.RepresentativeName != nil || req.Email != nil || req.Phone != nil {
		contact, err := valueobject.NewContact(
			common.StringOr(req.RepresentativeName, corp.RepresentativeName),
			common.StringOr(req.Email, corp.Email),
			common.StringOr(req.Phone, corp.Phone),
		)
		if err != nil {
			return nil, err
		}
		corp.SetContact(contact)
	}
	if req.Address != nil {
		corp.SetAddress(*req.Address)
	}
	if req.Status != nil {
		if err := corp.SetStatus(organization.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		corp.SetNotes(*req.Notes)
	}

	if err := s.corporationRepo.Save(ctx, corp); err != nil {
		return nil, err
	}

	response := ToCorporationResponse(corp)
	return &response, nil
}

// Delete deletes a corporation that has no branches
func (s *CorporationService) Delete(ctx context.Context, tenantID, corporationID uuid.UUID) error {
	if _, err := s.corporationRepo.FindByIDForTenant(ctx, tenantID, corporationID); err != nil {
		return err
	}

	count, err := s.branchRepo.CountByCorporation(ctx, tenantID, corporationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Cannot delete corporation that still has branches")
	}

	return s.corporationRepo.DeleteForTenant(ctx, tenantID, corporationID)
}
