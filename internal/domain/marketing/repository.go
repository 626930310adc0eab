package marketing

import (
	"context"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// LeadStatusCount is one bucket of campaign statistics.
type LeadStatusCount struct {
	Status LeadStatus
	Count  int64
}

// CampaignRepository persists campaigns.
type CampaignRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Campaign, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Campaign, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, c *Campaign) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// LeadRepository persists leads.
type LeadRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lead, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lead, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	CountByCampaignAndStatus(ctx context.Context, tenantID, campaignID uuid.UUID) ([]LeadStatusCount, error)
	Save(ctx context.Context, l *Lead) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
