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

// FCService handles FC business operations
type FCService struct {
	fcRepo          organization.FCRepository
	corporationRepo organization.CorporationRepository
	branchRepo      organization.BranchRepository
	events          *event.Dispatcher
}

// NewFCService creates a new FCService
func NewFCService(
	fcRepo organization.FCRepository,
	corporationRepo organization.CorporationRepository,
	branchRepo organization.BranchRepository,
	events *event.Dispatcher,
) *FCService {
	return &FCService{
		fcRepo:          fcRepo,
		corporationRepo: corporationRepo,
		branchRepo:      branchRepo,
		events:          events,
	}
}

// NextCode returns the code the next FC would receive
func (s *FCService) NextCode(ctx context.Context, tenantID uuid.UUID) (*common.NextCodeResponse, error) {
	code, err := common.NextCode(ctx, s.fcRepo.ListCodes, tenantID, shared.CodePrefixFC, shared.DefaultCodeWidth)
	if err != nil {
		return nil, err
	}
	return &common.NextCodeResponse{Code: code}, nil
}

// Create creates a new FC
func (s *FCService) Create(ctx context.Context, tenantID uuid.UUID, req CreateFCRequest) (*FCResponse, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		next, err := common.NextCode(ctx, s.fcRepo.ListCodes, tenantID, shared.CodePrefixFC, shared.DefaultCodeWidth)
		if err != nil {
			return nil, err
		}
		code = next
	} else {
		exists, err := s.fcRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "FC with this code already exists")
		}
	}

	fc, err := organization.NewFC(tenantID, code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Email != "" || req.Phone != "" {
		contact, err := valueobject.NewContact(req.ContactName, req.Email, req.Phone)
		if err != nil {
			return nil, err
		}
		fc.SetContact(contact)
	}
	if req.Address != "" {
		fc.SetAddress(req.Address)
	}
	if req.Notes != "" {
		fc.SetNotes(req.Notes)
	}

	if err := s.fcRepo.Save(ctx, fc); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, fc)

	response := ToFCResponse(fc)
	return &response, nil
}

// GetByID retrieves an FC by ID
func (s *FCService) GetByID(ctx context.Context, tenantID, fcID uuid.UUID) (*FCResponse, error) {
	fc, err := s.fcRepo.FindByIDForTenant(ctx, tenantID, fcID)
	if err != nil {
		return nil, err
	}
	response := ToFCResponse(fc)
	return &response, nil
}

// List retrieves a page of FCs
func (s *FCService) List(ctx context.Context, tenantID uuid.UUID, filter FCListFilter) ([]FCResponse, int64, error) {
	domainFilter := filter.Filter("code", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	fcs, err := s.fcRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.fcRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToFCResponses(fcs), total, nil
}

// Update updates an FC
func (s *FCService) Update(ctx context.Context, tenantID, fcID uuid.UUID, req UpdateFCRequest) (*FCResponse, error) {
	fc, err := s.fcRepo.FindByIDForTenant(ctx, tenantID, fcID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := fc.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Email != nil || req.Phone != nil {
		contact, err := valueobject.NewContact(
			common.StringOr(req.ContactName, fc.ContactName),
			common.StringOr(req.Email, fc.Email),
			common.StringOr(req.Phone, fc.Phone),
		)
		if err != nil {
			return nil, err
		}
		fc.SetContact(contact)
	}
	if req.Address != nil {
		fc.SetAddress(*req.Address)
	}
	if req.Status != nil {
		if err := fc.SetStatus(organization.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		fc.SetNotes(*req.Notes)
	}

	if err := s.fcRepo.Save(ctx, fc); err != nil {
		return nil, err
	}

	response := ToFCResponse(fc)
	return &response, nil
}

// Delete deletes an FC that has no corporations
func (s *FCService) Delete(ctx context.Context, tenantID, fcID uuid.UUID) error {
	if _, err := s.fcRepo.FindByIDForTenant(ctx, tenantID, fcID); err != nil {
		return err
	}

	count, err := s.corporationRepo.CountByFC(ctx, tenantID, fcID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Cannot delete FC that still has corporations")
	}

	return s.fcRepo.DeleteForTenant(ctx, tenantID, fcID)
}

// Tree returns the FC with its corporations and their branches
func (s *FCService) Tree(ctx context.Context, tenantID, fcID uuid.UUID) (*FCTreeResponse, error) {
	fc, err := s.fcRepo.FindByIDForTenant(ctx, tenantID, fcID)
	if err != nil {
		return nil, err
	}

	corporations, err := s.corporationRepo.FindByFC(ctx, tenantID, fcID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(corporations))
	for i := range corporations {
		ids[i] = corporations[i].ID
	}
	var branches []organization.Branch
	if len(ids) > 0 {
		branches, err = s.branchRepo.FindByCorporations(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
	}

	byCorporation := make(map[uuid.UUID][]BranchResponse, len(corporations))
	for i := range branches {
		b := &branches[i]
		byCorporation[b.CorporationID] = append(byCorporation[b.CorporationID], ToBranchResponse(b))
	}

	tree := &FCTreeResponse{
		FCResponse:   ToFCResponse(fc),
		Corporations: make([]CorporationNode, 0, len(corporations)),
	}
	for i := range corporations {
		c := &corporations[i]
		children := byCorporation[c.ID]
		if children == nil {
			children = []BranchResponse{}
		}
		tree.Corporations = append(tree.Corporations, CorporationNode{
			CorporationResponse: ToCorporationResponse(c),
			Branches:            children,
		})
	}
	return tree, nil
}
