package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/application/event"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	infra "github.com/kioskcrm/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// QuotationPrinter renders quotation data to a PDF
type QuotationPrinter interface {
	Print(ctx context.Context, data infra.QuotationData) ([]byte, error)
}

// OrderService handles order business operations
type OrderService struct {
	orderRepo   workflow.OrderRepository
	partnerRepo partner.PartnerRepository
	branchRepo  organization.BranchRepository
	kioskRepo   asset.KioskRepository
	printer     QuotationPrinter
	issuer      string
	events      *event.Dispatcher
	logger      *zap.Logger
	location    *time.Location
	now         func() time.Time
}

// OrderServiceDeps groups the collaborators of OrderService
type OrderServiceDeps struct {
	OrderRepo   workflow.OrderRepository
	PartnerRepo partner.PartnerRepository
	BranchRepo  organization.BranchRepository
	KioskRepo   asset.KioskRepository
	// Printer may be nil when printing is disabled
	Printer QuotationPrinter
	// Issuer is printed as the quotation sender
	Issuer   string
	Events   *event.Dispatcher
	Logger   *zap.Logger
	Location *time.Location
}

// NewOrderService creates a new OrderService
func NewOrderService(deps OrderServiceDeps) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{
		orderRepo:   deps.OrderRepo,
		partnerRepo: deps.PartnerRepo,
		branchRepo:  deps.BranchRepo,
		kioskRepo:   deps.KioskRepo,
		printer:     deps.Printer,
		issuer:      deps.Issuer,
		events:      deps.Events,
		logger:      logger,
		location:    loc,
		now:         time.Now,
	}
}

// NextNumber returns the order number the next create would allocate
func (s *OrderService) NextNumber(ctx context.Context, tenantID uuid.UUID) (*common.NextCodeResponse, error) {
	number, err := common.NextCode(ctx, s.orderRepo.ListNumbers, tenantID, shared.CodePrefixOrder, shared.OrderCodeWidth)
	if err != nil {
		return nil, err
	}
	return &common.NextCodeResponse{Code: number}, nil
}

// Create creates an order with the next OD number
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if err := s.checkPartner(ctx, tenantID, req.PartnerID); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, tenantID, req.BranchID, req.KioskID); err != nil {
		return nil, err
	}

	number, err := common.NextCode(ctx, s.orderRepo.ListNumbers, tenantID, shared.CodePrefixOrder, shared.OrderCodeWidth)
	if err != nil {
		return nil, err
	}
	order, err := workflow.NewOrder(tenantID, number, req.PartnerID, req.ItemName, req.Quantity, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	order.OrderedAt = s.today()
	if req.OrderedAt != "" {
		at, err := common.ParseDate(req.OrderedAt, s.location)
		if err != nil {
			return nil, err
		}
		order.SetOrderedAt(at)
	}
	if req.BranchID != nil || req.KioskID != nil {
		order.Link(req.BranchID, req.KioskID)
	}
	if req.Status != "" {
		if err := order.SetStatus(workflow.OrderStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves a page of orders, newest number first by default
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := filter.Filter("order_number", "desc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PartnerID != "" {
		domainFilter.Filters["partner_id"] = filter.PartnerID
	}
	if filter.KioskID != "" {
		domainFilter.Filters["kiosk_id"] = filter.KioskID
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// Update updates an order. The status is written as given.
func (s *OrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if req.PartnerID != nil && *req.PartnerID != order.PartnerID {
		if err := s.checkPartner(ctx, tenantID, *req.PartnerID); err != nil {
			return nil, err
		}
		if err := order.SetPartner(*req.PartnerID); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil || req.KioskID != nil {
		if err := s.checkLinks(ctx, tenantID, req.BranchID, req.KioskID); err != nil {
			return nil, err
		}
		branchID, kioskID := order.BranchID, order.KioskID
		if req.BranchID != nil {
			branchID = req.BranchID
		}
		if req.KioskID != nil {
			kioskID = req.KioskID
		}
		order.Link(branchID, kioskID)
	}
	if req.ItemName != nil || req.Quantity != nil || req.UnitPrice != nil {
		item, qty, price := order.ItemName, order.Quantity, order.UnitPrice
		if req.ItemName != nil {
			item = *req.ItemName
		}
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		if req.UnitPrice != nil {
			price = *req.UnitPrice
		}
		if err := order.SetLine(item, qty, price); err != nil {
			return nil, err
		}
	}
	if req.OrderedAt != nil {
		at, err := common.ParseDate(*req.OrderedAt, s.location)
		if err != nil {
			return nil, err
		}
		order.SetOrderedAt(at)
	}
	if req.Status != nil {
		if err := order.SetStatus(workflow.OrderStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.events.Dispatch(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete deletes an order
func (s *OrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID); err != nil {
		return err
	}
	return s.orderRepo.DeleteForTenant(ctx, tenantID, orderID)
}

// Quotation renders the quotation PDF of an order, addressed to its partner
func (s *OrderService) Quotation(ctx context.Context, tenantID, orderID uuid.UUID) (*QuotationFile, error) {
	if s.printer == nil {
		return nil, shared.NewDomainError("INTEGRATION_NOT_CONFIGURED", "PDF printing is not configured")
	}
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	p, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, order.PartnerID)
	if err != nil {
		return nil, err
	}

	data := infra.NewQuotationData(order, p.Name, p.Address, s.issuer, s.today())
	pdf, err := s.printer.Print(ctx, data)
	if err != nil {
		var renderErr *infra.RenderError
		if errors.As(err, &renderErr) && renderErr.Code == infra.ErrCodeDisabled {
			return nil, shared.NewDomainError("INTEGRATION_NOT_CONFIGURED", "PDF printing is disabled")
		}
		s.logger.Warn("quotation rendering failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shared.NewDomainError("INTEGRATION_FAILED", "Failed to render quotation"), err)
	}

	return &QuotationFile{
		Filename: "quotation-" + strings.ToLower(order.OrderNumber) + ".pdf",
		PDF:      pdf,
	}, nil
}

func (s *OrderService) checkPartner(ctx context.Context, tenantID, partnerID uuid.UUID) error {
	if _, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_PARTNER", "Partner does not exist")
		}
		return err
	}
	return nil
}

func (s *OrderService) checkLinks(ctx context.Context, tenantID uuid.UUID, branchID, kioskID *uuid.UUID) error {
	if branchID != nil {
		if _, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, *branchID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_BRANCH", "Branch does not exist")
			}
			return err
		}
	}
	if kioskID != nil {
		if _, err := s.kioskRepo.FindByIDForTenant(ctx, tenantID, *kioskID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_KIOSK", "Kiosk does not exist")
			}
			return err
		}
	}
	return nil
}

func (s *OrderService) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}
