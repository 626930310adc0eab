package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// FCRepository persists FCs.
type FCRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FC, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]FC, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	// ListCodes returns every code starting with prefix.
	ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)
	Save(ctx context.Context, fc *FC) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// CorporationRepository persists corporations.
type CorporationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Corporation, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Corporation, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByFC(ctx context.Context, tenantID, fcID uuid.UUID) ([]Corporation, error)
	CountByFC(ctx context.Context, tenantID, fcID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)
	Save(ctx context.Context, c *Corporation) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// BranchRepository persists branches.
type BranchRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Branch, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Branch, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByCorporations(ctx context.Context, tenantID uuid.UUID, corporationIDs []uuid.UUID) ([]Branch, error)
	CountByCorporation(ctx context.Context, tenantID, corporationID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
	ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)
	Save(ctx context.Context, b *Branch) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
