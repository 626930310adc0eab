package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/common"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// PricingService handles partner pricing operations
type PricingService struct {
	pricingRepo partner.PricingRepository
	partnerRepo partner.PartnerRepository
	location    *time.Location
	now         func() time.Time
}

// NewPricingService creates a new PricingService. Dates are interpreted in
// loc; nil means UTC.
func NewPricingService(pricingRepo partner.PricingRepository, partnerRepo partner.PartnerRepository, loc *time.Location) *PricingService {
	if loc == nil {
		loc = time.UTC
	}
	return &PricingService{
		pricingRepo: pricingRepo,
		partnerRepo: partnerRepo,
		location:    loc,
		now:         time.Now,
	}
}

// Create creates a pricing for an existing partner
func (s *PricingService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePricingRequest) (*PricingResponse, error) {
	if _, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, req.PartnerID); err != nil {
		return nil, err
	}

	from, err := common.ParseDate(req.ValidFrom, s.location)
	if err != nil {
		return nil, err
	}
	to, err := common.ParseOptionalDate(req.ValidTo, s.location)
	if err != nil {
		return nil, err
	}

	pricing, err := partner.NewPricing(tenantID, req.PartnerID, req.ItemCode, req.ItemName, req.UnitPrice, from, to)
	if err != nil {
		return nil, err
	}
	if req.Currency != "" {
		if err := pricing.SetCurrency(req.Currency); err != nil {
			return nil, err
		}
	}
	pricing.Notes = req.Notes

	if err := s.pricingRepo.Save(ctx, pricing); err != nil {
		return nil, err
	}

	response := ToPricingResponse(pricing)
	return &response, nil
}

// GetByID retrieves a pricing by ID
func (s *PricingService) GetByID(ctx context.Context, tenantID, pricingID uuid.UUID) (*PricingResponse, error) {
	pricing, err := s.pricingRepo.FindByIDForTenant(ctx, tenantID, pricingID)
	if err != nil {
		return nil, err
	}
	response := ToPricingResponse(pricing)
	return &response, nil
}

// ListByPartner returns every pricing of a partner
func (s *PricingService) ListByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]PricingResponse, error) {
	if _, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID); err != nil {
		return nil, err
	}
	pricings, err := s.pricingRepo.FindByPartner(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}
	return ToPricingResponses(pricings), nil
}

// Update updates a pricing
func (s *PricingService) Update(ctx context.Context, tenantID, pricingID uuid.UUID, req UpdatePricingRequest) (*PricingResponse, error) {
	pricing, err := s.pricingRepo.FindByIDForTenant(ctx, tenantID, pricingID)
	if err != nil {
		return nil, err
	}

	itemCode := common.StringOr(req.ItemCode, pricing.ItemCode)
	itemName := common.StringOr(req.ItemName, pricing.ItemName)
	unitPrice := pricing.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	from := pricing.ValidFrom
	if req.ValidFrom != nil {
		if from, err = common.ParseDate(*req.ValidFrom, s.location); err != nil {
			return nil, err
		}
	}
	to := pricing.ValidTo
	if req.ValidTo != nil {
		if to, err = common.ParseOptionalDate(*req.ValidTo, s.location); err != nil {
			return nil, err
		}
	}

	if err := pricing.Update(itemCode, itemName, unitPrice, from, to); err != nil {
		return nil, err
	}
	if req.Currency != nil {
		if err := pricing.SetCurrency(*req.Currency); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		pricing.Notes = *req.Notes
	}

	if err := s.pricingRepo.Save(ctx, pricing); err != nil {
		return nil, err
	}

	response := ToPricingResponse(pricing)
	return &response, nil
}

// Delete deletes a pricing
func (s *PricingService) Delete(ctx context.Context, tenantID, pricingID uuid.UUID) error {
	if _, err := s.pricingRepo.FindByIDForTenant(ctx, tenantID, pricingID); err != nil {
		return err
	}
	return s.pricingRepo.DeleteForTenant(ctx, tenantID, pricingID)
}

// Effective returns the pricing for a partner and item valid on the given
// date (today when empty). The latest ValidFrom wins.
func (s *PricingService) Effective(ctx context.Context, tenantID uuid.UUID, q EffectivePricingQuery) (*PricingResponse, error) {
	partnerID, err := uuid.Parse(q.PartnerID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "partner_id must be a UUID")
	}

	day := s.now().In(s.location)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location)
	if strings.TrimSpace(q.Date) != "" {
		if day, err = common.ParseDate(q.Date, s.location); err != nil {
			return nil, err
		}
	}

	pricings, err := s.pricingRepo.FindByPartnerAndItem(ctx, tenantID, partnerID, strings.TrimSpace(q.ItemCode))
	if err != nil {
		return nil, err
	}
	best := partner.SelectEffective(pricings, day)
	if best == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No pricing is effective on that date")
	}

	response := ToPricingResponse(best)
	return &response, nil
}
