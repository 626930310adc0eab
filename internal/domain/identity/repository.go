package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
)

// UserRepository persists users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, u *User) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
