package geo

import (
	"context"

	"github.com/google/uuid"
)

// RegionRepository persists regions.
type RegionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Region, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Region, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Save(ctx context.Context, region *Region) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// AreaRepository persists areas.
type AreaRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Area, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Area, error)
	FindByRegion(ctx context.Context, tenantID, regionID uuid.UUID) ([]Area, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	CountByRegion(ctx context.Context, tenantID, regionID uuid.UUID) (int64, error)
	Save(ctx context.Context, area *Area) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
