package organization

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// BranchService handles branch business operations
type BranchService struct {
	branchRepo      organization.BranchRepository
	corporationRepo organization.CorporationRepository
	locator         geoapp.Locator
	events          *event.Dispatcher
}

// NewBranchService creates a new BranchService
func NewBranchService(
	branchRepo organization.BranchRepository,
	corporationRepo organization.CorporationRepository,
	locator geoapp.Locator,
	events *event.Dispatcher,
) *BranchService {
	return &BranchService{
		branchRepo:      branchRepo,
		corporationRepo: corporationRepo,
		locator:         locator,
		events:          events,
	}
}

// NextCode returns the code the next branch would receive
func (s *BranchService) NextCode(ctx context.Context, tenantID uuid.UUID) (*common.NextCodeResponse, error) {
	code, err := common.NextCode(ctx, s.branchRepo.ListCodes, tenantID, shared.CodePrefixBranch, shared.DefaultCodeWidth)
	if err != nil {
		return nil, err
	}
	return &common.NextCodeResponse{Code: code}, nil
}

// Create creates a new branch and places it in the region/area catalog
func (s *BranchService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBranchRequest) (*BranchResponse, error) {
	if _, err := s.corporationRepo.FindByIDForTenant(ctx, tenantID, req.CorporationID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		next, err := common.NextCode(ctx, s.branchRepo.ListCodes, tenantID, shared.CodePrefixBranch, shared.DefaultCodeWidth)
		if err != nil {
			return nil, err
		}
		code = next
	} else {
		exists, err := s.branchRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch with this code already exists")
		}
	}

	branch, err := organization.NewBranch(tenantID, req.CorporationID, code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Address != "" || req.RegionID != nil || req.AreaID != nil {
		if err := s.relocate(ctx, branch, req.Address, req.RegionID, req.AreaID); err != nil {
			return nil, err
		}
	}
	if req.ManagerName != "" || req.Phone != "" {
		branch.SetContact(req.ManagerName, req.Phone)
	}
	if req.Notes != "" {
		branch.SetNotes(req.Notes)
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, branch)

	response := ToBranchResponse(branch)
	return &response, nil
}

// GetByID retrieves a branch by ID
func (s *BranchService) GetByID(ctx context.Context, tenantID, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves a page of branches
func (s *BranchService) List(ctx context.Context, tenantID uuid.UUID, filter BranchListFilter) ([]BranchResponse, int64, error) {
	domainFilter := filter.Filter("code", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CorporationID != "" {
		domainFilter.Filters["corporation_id"] = filter.CorporationID
	}
	if filter.RegionID != "" {
		domainFilter.Filters["region_id"] = filter.RegionID
	}
	if filter.AreaID != "" {
		domainFilter.Filters["area_id"] = filter.AreaID
	}
	if filter.Prefecture != "" {
		domainFilter.Filters["prefecture"] = filter.Prefecture
	}

	branches, err := s.branchRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.branchRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBranchResponses(branches), total, nil
}

// Update updates a branch. Changing the address, region or area
// re-derives the location.
func (s *BranchService) Update(ctx context.Context, tenantID, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, branchID)
	if err != nil {
		return nil, err
	}

	if req.CorporationID != nil && *req.CorporationID != branch.CorporationID {
		if _, err := s.corporationRepo.FindByIDForTenant(ctx, tenantID, *req.CorporationID); err != nil {
			return nil, err
		}
		if err := branch.MoveTo(*req.CorporationID); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := branch.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Address != nil || req.RegionID != nil || req.AreaID != nil {
		address := common.StringOr(req.Address, branch.Address)
		if err := s.relocate(ctx, branch, address, req.RegionID, req.AreaID); err != nil {
			return nil, err
		}
	}
	if req.ManagerName != nil || req.Phone != nil {
		branch.SetContact(common.StringOr(req.ManagerName, branch.ManagerName), common.StringOr(req.Phone, branch.Phone))
	}
	if req.Status != nil {
		if err := branch.SetStatus(organization.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		branch.SetNotes(*req.Notes)
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, branch)

	response := ToBranchResponse(branch)
	return &response, nil
}

// Delete deletes a branch
func (s *BranchService) Delete(ctx context.Context, tenantID, branchID uuid.UUID) error {
	if _, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, branchID); err != nil {
		return err
	}
	return s.branchRepo.DeleteForTenant(ctx, tenantID, branchID)
}

func (s *BranchService) relocate(ctx context.Context, branch *organization.Branch, address string, regionID, areaID *uuid.UUID) error {
	p, err := s.locator.Locate(ctx, branch.TenantID, geoapp.LocateInput{
		Address:  address,
		RegionID: regionID,
		AreaID:   areaID,
	})
	if err != nil {
		return err
	}
	branch.Relocate(organization.Location{
		Address:    p.Address,
		Prefecture: p.Prefecture,
		City:       p.City,
		RegionID:   p.RegionID,
		AreaID:     p.AreaID,
	})
	return nil
}
