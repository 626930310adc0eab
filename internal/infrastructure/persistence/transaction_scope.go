package persistence

import (
	"context"

	appasset "github.com/kioskcrm/backend/internal/application/asset"
	appgeo "github.com/kioskcrm/backend/internal/application/geo"
	appmarketing "github.com/kioskcrm/backend/internal/application/marketing"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormKioskTransactionScope implements asset.TransactionScope using GORM
// transactions.
type GormKioskTransactionScope struct {
	db *gorm.DB
}

// NewGormKioskTransactionScope creates a new GormKioskTransactionScope.
func NewGormKioskTransactionScope(db *gorm.DB) *GormKioskTransactionScope {
	return &GormKioskTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormKioskTransactionScope) Execute(ctx context.Context, fn func(repos appasset.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormKioskRepositories{tx: tx})
	})
}

type gormKioskRepositories struct {
	tx *gorm.DB
}

func (r *gormKioskRepositories) KioskRepo() asset.KioskRepository {
	return NewGormKioskRepository(r.tx)
}

func (r *gormKioskRepositories) ContractRepo() asset.ContractRepository {
	return NewGormContractRepository(r.tx)
}

// GormLeadTransactionScope implements marketing.TransactionScope using GORM
// transactions.
type GormLeadTransactionScope struct {
	db *gorm.DB
}

// NewGormLeadTransactionScope creates a new GormLeadTransactionScope.
func NewGormLeadTransactionScope(db *gorm.DB) *GormLeadTransactionScope {
	return &GormLeadTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormLeadTransactionScope) Execute(ctx context.Context, fn func(repos appmarketing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLeadRepositories{tx: tx})
	})
}

type gormLeadRepositories struct {
	tx *gorm.DB
}

func (r *gormLeadRepositories) LeadRepo() marketing.LeadRepository {
	return NewGormLeadRepository(r.tx)
}

func (r *gormLeadRepositories) PartnerRepo() partner.PartnerRepository {
	return NewGormPartnerRepository(r.tx)
}

// GormGeoTransactionScope implements geo.TransactionScope using GORM
// transactions.
type GormGeoTransactionScope struct {
	db *gorm.DB
}

func NewGormGeoTransactionScope(db *gorm.DB) *GormGeoTransactionScope {
	return &GormGeoTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
func (s *GormGeoTransactionScope) Execute(ctx context.Context, fn func(repos appgeo.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormGeoRepositories{tx: tx})
	})
}

type gormGeoRepositories struct {
	tx *gorm.DB
}

func (r *gormGeoRepositories) RegionRepo() geo.RegionRepository {
	return NewGormRegionRepository(r.tx)
}

func (r *gormGeoRepositories) AreaRepo() geo.AreaRepository {
	return NewGormAreaRepository(r.tx)
}

var (
	_ appgeo.TransactionScope                = (*GormGeoTransactionScope)(nil)
	_ appgeo.TransactionalRepositories       = (*gormGeoRepositories)(nil)
	_ appasset.TransactionScope              = (*GormKioskTransactionScope)(nil)
	_ appasset.TransactionalRepositories     = (*gormKioskRepositories)(nil)
	_ appmarketing.TransactionScope          = (*GormLeadTransactionScope)(nil)
	_ appmarketing.TransactionalRepositories = (*gormLeadRepositories)(nil)
)
