package asset

import (
	"context"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// StatusCount is one bucket of the kiosk summary.
type StatusCount struct {
	Status Status
	Count  int64
}

// RegionCount counts kiosks per region; RegionID is nil for unmatched kiosks.
type RegionCount struct {
	RegionID *uuid.UUID
	Count    int64
}

// KioskRepository persists kiosks.
type KioskRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Kiosk, error)
	FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*Kiosk, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Kiosk, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (bool, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID) ([]StatusCount, error)
	CountByRegion(ctx context.Context, tenantID uuid.UUID) ([]RegionCount, error)
	CountByBranch(ctx context.Context, tenantID, branchID uuid.UUID) (int64, error)
	Save(ctx context.Context, k *Kiosk) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ContractRepository persists the lease/sale history.
type ContractRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contract, error)
	FindByKiosk(ctx context.Context, tenantID, kioskID uuid.UUID) ([]Contract, error)
	Save(ctx context.Context, c *Contract) error
}
