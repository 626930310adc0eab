package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
)

// DeliveryService handles delivery request business operations
type DeliveryService struct {
	deliveryRepo workflow.DeliveryRequestRepository
	orderRepo    workflow.OrderRepository
	location     *time.Location
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(deliveryRepo workflow.DeliveryRequestRepository, orderRepo workflow.OrderRepository, loc *time.Location) *DeliveryService {
	if loc == nil {
		loc = time.UTC
	}
	return &DeliveryService{deliveryRepo: deliveryRepo, orderRepo: orderRepo, location: loc}
}

// Create creates a delivery request
func (s *DeliveryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDeliveryRequest) (*DeliveryResponse, error) {
	requested, err := common.ParseDate(req.RequestedDate, s.location)
	if err != nil {
		return nil, err
	}
	d, err := workflow.NewDeliveryRequest(tenantID, req.DeliveryAddress, requested)
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		if err := s.checkOrder(ctx, tenantID, *req.OrderID); err != nil {
			return nil, err
		}
	}
	if req.OrderID != nil || req.KioskID != nil {
		d.Link(req.OrderID, req.KioskID)
	}
	if req.Carrier != "" || req.TrackingNumber != "" || req.ScheduledDate != "" {
		scheduled, err := common.ParseOptionalDate(req.ScheduledDate, s.location)
		if err != nil {
			return nil, err
		}
		d.SetShipping(req.Carrier, req.TrackingNumber, scheduled)
	}
	if req.Status != "" {
		if err := d.SetStatus(workflow.DeliveryStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		d.SetNotes(req.Notes)
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

// GetByID retrieves a delivery request by ID
func (s *DeliveryService) GetByID(ctx context.Context, tenantID, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, deliveryID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

// List retrieves a page of delivery requests ordered by requested date
func (s *DeliveryService) List(ctx context.Context, tenantID uuid.UUID, filter DeliveryListFilter) ([]DeliveryResponse, int64, error) {
	domainFilter := filter.Filter("requested_date", "asc")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.OrderID != "" {
		domainFilter.Filters["order_id"] = filter.OrderID
	}
	if filter.KioskID != "" {
		domainFilter.Filters["kiosk_id"] = filter.KioskID
	}

	deliveries, err := s.deliveryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.deliveryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DeliveryResponse, len(deliveries))
	for i := range deliveries {
		out[i] = ToDeliveryResponse(&deliveries[i])
	}
	return out, total, nil
}

// Update updates a delivery request. The status is written as given.
func (s *DeliveryService) Update(ctx context.Context, tenantID, deliveryID uuid.UUID, req UpdateDeliveryRequest) (*DeliveryResponse, error) {
	d, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, deliveryID)
	if err != nil {
		return nil, err
	}

	if req.DeliveryAddress != nil || req.RequestedDate != nil {
		requested := d.RequestedDate
		if req.RequestedDate != nil {
			if requested, err = common.ParseDate(*req.RequestedDate, s.location); err != nil {
				return nil, err
			}
		}
		if err := d.SetDestination(common.StringOr(req.DeliveryAddress, d.DeliveryAddress), requested); err != nil {
			return nil, err
		}
	}
	if req.OrderID != nil || req.KioskID != nil {
		if req.OrderID != nil {
			if err := s.checkOrder(ctx, tenantID, *req.OrderID); err != nil {
				return nil, err
			}
		}
		orderID, kioskID := d.OrderID, d.KioskID
		if req.OrderID != nil {
			orderID = req.OrderID
		}
		if req.KioskID != nil {
			kioskID = req.KioskID
		}
		d.Link(orderID, kioskID)
	}
	if req.Carrier != nil || req.TrackingNumber != nil || req.ScheduledDate != nil {
		scheduled := d.ScheduledDate
		if req.ScheduledDate != nil {
			if scheduled, err = common.ParseOptionalDate(*req.ScheduledDate, s.location); err != nil {
				return nil, err
			}
		}
		d.SetShipping(common.StringOr(req.Carrier, d.Carrier), common.StringOr(req.TrackingNumber, d.TrackingNumber), scheduled)
	}
	if req.Status != nil {
		if err := d.SetStatus(workflow.DeliveryStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		d.SetNotes(*req.Notes)
	}

	if err := s.deliveryRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

// Delete deletes a delivery request
func (s *DeliveryService) Delete(ctx context.Context, tenantID, deliveryID uuid.UUID) error {
	if _, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, deliveryID); err != nil {
		return err
	}
	return s.deliveryRepo.DeleteForTenant(ctx, tenantID, deliveryID)
}

func (s *DeliveryService) checkOrder(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewDomainError("INVALID_ORDER", "Order does not exist")
		}
		return err
	}
	return nil
}
