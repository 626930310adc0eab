package asset

import (
	"context"

	"github.com/kioskcrm/backend/internal/domain/asset"
)

// TransactionScope runs kiosk and contract writes in one database
// transaction. If fn returns an error the transaction is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	KioskRepo() asset.KioskRepository
	ContractRepo() asset.ContractRepository
}

// NoOpTransactionScope runs fn against the plain repositories.
// Used in tests and when the store has no transactions.
type NoOpTransactionScope struct {
	kioskRepo    asset.KioskRepository
	contractRepo asset.ContractRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(kioskRepo asset.KioskRepository, contractRepo asset.ContractRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{kioskRepo: kioskRepo, contractRepo: contractRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// KioskRepo returns the kiosk repository
func (s *NoOpTransactionScope) KioskRepo() asset.KioskRepository {
	return s.kioskRepo
}

// ContractRepo returns the contract repository
func (s *NoOpTransactionScope) ContractRepo() asset.ContractRepository {
	return s.contractRepo
}
