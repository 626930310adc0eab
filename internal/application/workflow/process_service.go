package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
)

// ProcessService handles process business operations
type ProcessService struct {
	processRepo workflow.ProcessRepository
	orderRepo   workflow.OrderRepository
	userRepo    identity.UserRepository
	location    *time.Location
	now         func() time.Time
}

// NewProcessService creates a new ProcessService
func NewProcessService(
	processRepo workflow.ProcessRepository,
	orderRepo workflow.OrderRepository,
	userRepo identity.UserRepository,
	loc *time.Location,
) *ProcessService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProcessService{
		processRepo: processRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		location:    loc,
		now:         time.Now,
	}
}

// Create creates a process
func (s *ProcessService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProcessRequest) (*ProcessResponse, error) {
	p, err := workflow.NewProcess(tenantID, req.Title)
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		if err := s.checkOrder(ctx, tenantID, *req.OrderID); err != nil {
			return nil, err
		}
	}
	if req.KioskID != nil || req.OrderID != nil {
		p.Link(req.KioskID, req.OrderID)
	}
	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, tenantID, *req.AssigneeID); err != nil {
			return nil, err
		}
		p.Assign(req.AssigneeID)
	}
	if req.DueDate != "" {
		due, err := common.ParseDate(req.DueDate, s.location)
		if err != nil {
			return nil, err
		}
		p.Schedule(&due)
	}
	if req.Status != "" {
		if err := p.SetStatus(workflow.ProcessStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		p.SetNotes(req.Notes)
	}

	if err := s.processRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProcessResponse(p, s.now())
	return &response, nil
}

// GetByID retrieves a process by ID
func (s *ProcessService) GetByID(ctx context.Context, tenantID, processID uuid.UUID) (*ProcessResponse, error) {
	p, err := s.processRepo.FindByIDForTenant(ctx, tenantID, processID)
	if err != nil {
		return nil, err
	}
	response := ToProcessResponse(p, s.now())
	return &response, nil
}

// List retrieves a page of processes ordered by due date
func (s *ProcessService) List(ctx context.Context, tenantID uuid.UUID, filter ProcessListFilter) ([]ProcessResponse, int64, error) {
	domainFilter := filter.Filter("due_date", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.AssigneeID != "" {
		domainFilter.Filters["assignee_id"] = filter.AssigneeID
	}
	if filter.KioskID != "" {
		domainFilter.Filters["kiosk_id"] = filter.KioskID
	}
	if filter.OrderID != "" {
		domainFilter.Filters["order_id"] = filter.OrderID
	}

	processes, err := s.processRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.processRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	out := make([]ProcessResponse, len(processes))
	for i := range processes {
		out[i] = ToProcessResponse(&processes[i], now)
	}
	return out, total, nil
}

// Update updates a process. The status is written as given.
func (s *ProcessService) Update(ctx context.Context, tenantID, processID uuid.UUID, req UpdateProcessRequest) (*ProcessResponse, error) {
	p, err := s.processRepo.FindByIDForTenant(ctx, tenantID, processID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := p.Retitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.KioskID != nil || req.OrderID != nil {
		if req.OrderID != nil {
			if err := s.checkOrder(ctx, tenantID, *req.OrderID); err != nil {
				return nil, err
			}
		}
		kioskID, orderID := p.KioskID, p.OrderID
		if req.KioskID != nil {
			kioskID = req.KioskID
		}
		if req.OrderID != nil {
			orderID = req.OrderID
		}
		p.Link(kioskID, orderID)
	}
	if req.ClearAssignee {
		p.Assign(nil)
	} else if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, tenantID, *req.AssigneeID); err != nil {
			return nil, err
		}
		p.Assign(req.AssigneeID)
	}
	if req.DueDate != nil {
		due, err := common.ParseOptionalDate(*req.DueDate, s.location)
		if err != nil {
			return nil, err
		}
		if !sameDate(due, p.DueDate) {
			p.Schedule(due)
		}
	}
	if req.Status != nil {
		if err := p.SetStatus(workflow.ProcessStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		p.SetNotes(*req.Notes)
	}

	if err := s.processRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProcessResponse(p, s.now())
	return &response, nil
}

// Delete deletes a process
func (s *ProcessService) Delete(ctx context.Context, tenantID, processID uuid.UUID) error {
	if _, err := s.processRepo.FindByIDForTenant(ctx, tenantID, processID); err != nil {
		return err
	}
	return s.processRepo.DeleteForTenant(ctx, tenantID, processID)
}

func (s *ProcessService) checkOrder(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_ORDER", "Order does not exist")
		}
		return err
	}
	return nil
}

func (s *ProcessService) checkAssignee(ctx context.Context, tenantID, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee does not exist")
		}
		return err
	}
	return nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
