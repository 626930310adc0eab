package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// PartnerRepository persists partners.
type PartnerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Partner, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Partner, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Partner, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)
	Save(ctx context.Context, p *Partner) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PricingRepository persists pricings.
type PricingRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Pricing, error)
	FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]Pricing, error)
	FindByPartnerAndItem(ctx context.Context, tenantID, partnerID uuid.UUID, itemCode string) ([]Pricing, error)
	Save(ctx context.Context, p *Pricing) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
