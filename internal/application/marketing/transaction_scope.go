package marketing

import (
	"context"

	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/partner"
)

// TransactionScope runs lead conversion writes in one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories bound to the current
// transaction
type TransactionalRepositories interface {
	LeadRepo() marketing.LeadRepository
	PartnerRepo() partner.PartnerRepository
}

// NoOpTransactionScope runs fn against the plain repositories
type NoOpTransactionScope struct {
	leadRepo    marketing.LeadRepository
	partnerRepo partner.PartnerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(leadRepo marketing.LeadRepository, partnerRepo partner.PartnerRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{leadRepo: leadRepo, partnerRepo: partnerRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) LeadRepo() marketing.LeadRepository { return s.leadRepo }

func (s *NoOpTransactionScope) PartnerRepo() partner.PartnerRepository { return s.partnerRepo }
