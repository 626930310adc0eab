package geo

import (
	"context"

	"github.com/kioskcrm/backend/internal/domain/geo"
)

// TransactionScope runs region and area writes in one database transaction.
// If fn returns an error the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	RegionRepo() geo.RegionRepository
	AreaRepo() geo.AreaRepository
}

// NoOpTransactionScope runs fn against the plain repositories.
type NoOpTransactionScope struct {
	regionRepo geo.RegionRepository
	areaRepo   geo.AreaRepository
}

func NewNoOpTransactionScope(regionRepo geo.RegionRepository, areaRepo geo.AreaRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{regionRepo: regionRepo, areaRepo: areaRepo}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) RegionRepo() geo.RegionRepository { return s.regionRepo }
func (s *NoOpTransactionScope) AreaRepo() geo.AreaRepository     { return s.areaRepo }
