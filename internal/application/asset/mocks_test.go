package asset

import (
	"context"

	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockKioskRepository is a mock implementation of asset.KioskRepository
type MockKioskRepository struct {
	mock.Mock
}

func (m *MockKioskRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Kiosk, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Kiosk), args.Error(1)
}

func (m *MockKioskRepository) FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*asset.Kiosk, error) {
	args := m.Called(ctx, tenantID, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Kiosk), args.Error(1)
}

func (m *MockKioskRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]asset.Kiosk, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]asset.Kiosk), args.Error(1)
}

func (m *MockKioskRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKioskRepository) ExistsBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (bool, error) {
	args := m.Called(ctx, tenantID, serial)
	return args.Bool(0), args.Error(1)
}

func (m *MockKioskRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) ([]asset.StatusCount, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]asset.StatusCount), args.Error(1)
}

func (m *MockKioskRepository) CountByRegion(ctx context.Context, tenantID uuid.UUID) ([]asset.RegionCount, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]asset.RegionCount), args.Error(1)
}

func (m *MockKioskRepository) CountByBranch(ctx context.Context, tenantID, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKioskRepository) Save(ctx context.Context, k *asset.Kiosk) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

func (m *MockKioskRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of asset.ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*asset.Contract, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByKiosk(ctx context.Context, tenantID, kioskID uuid.UUID) ([]asset.Contract, error) {
	args := m.Called(ctx, tenantID, kioskID)
	return args.Get(0).([]asset.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *asset.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockBranchRepository is a mock implementation of organization.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.Branch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]organization.Branch, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]organization.Branch), args.Error(1)
}

func (m *MockBranchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchRepository) FindByCorporations(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]organization.Branch, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]organization.Branch), args.Error(1)
}

func (m *MockBranchRepository) CountByCorporation(ctx context.Context, tenantID, corporationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, corporationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBranchRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockBranchRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBranchRepository) Save(ctx context.Context, b *organization.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBranchRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockPartnerRepository is a mock implementation of partner.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Partner, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Partner, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockGeoResolver is a mock implementation of GeoResolver
type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) Locate(ctx context.Context, tenantID uuid.UUID, in geoapp.LocateInput) (geoapp.Placement, error) {
	args := m.Called(ctx, tenantID, in)
	return args.Get(0).(geoapp.Placement), args.Error(1)
}

func (m *MockGeoResolver) Catalog(ctx context.Context, tenantID uuid.UUID) (*geo.Catalog, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Catalog), args.Error(1)
}
