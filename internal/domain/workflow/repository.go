package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// OrderRepository persists orders.
type OrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ListNumbers(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)
	Save(ctx context.Context, o *Order) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ProcessRepository persists processes.
type ProcessRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Process, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Process, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindOpenDueBefore returns open processes of every tenant due before
	// the given instant, ordered by due date.
	FindOpenDueBefore(ctx context.Context, before time.Time) ([]Process, error)
	Save(ctx context.Context, p *Process) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// DeliveryRequestRepository persists delivery requests.
type DeliveryRequestRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DeliveryRequest, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DeliveryRequest, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// FindOpenDueBefore returns open requests of every tenant whose
	// scheduled (or requested) date is before the given instant.
	FindOpenDueBefore(ctx context.Context, before time.Time) ([]DeliveryRequest, error)
	Save(ctx context.Context, d *DeliveryRequest) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
