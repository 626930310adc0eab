package organization

import (
	"context"

	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockFCRepository is a mock implementation of organization.FCRepository
type MockFCRepository struct {
	mock.Mock
}

func (m *MockFCRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.FC, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.FC), args.Error(1)
}

func (m *MockFCRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]organization.FC, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]organization.FC), args.Error(1)
}

func (m *MockFCRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFCRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockFCRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFCRepository) Save(ctx context.Context, fc *organization.FC) error {
	args := m.Called(ctx, fc)
	return args.Error(0)
}

func (m *MockFCRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockCorporationRepository is a mock implementation of organization.CorporationRepository
type MockCorporationRepository struct {
	mock.Mock
}

func (m *MockCorporationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*organization.Corporation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Corporation), args.Error(1)
}

func (m *MockCorporationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]organization.Corporation, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]organization.Corporation), args.Error(1)
}

func (m *MockCorporationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCorporationRepository) FindByFC(ctx context.Context, tenantID, fcID uuid.UUID) ([]organization.Corporation, error) {
	args := m.Called(ctx, tenantID, fcID)
	return args.Get(0).([]organization.Corporation), args.Error(1)
}

func (m *MockCorporationRepository) CountByFC(ctx context.Context, tenantID, fcID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, fcID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCorporationRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCorporationRepository) ListCodes(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCorporationRepository) Save(ctx context.Context, c *organization.Corporation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCorporationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
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

func (m *MockBranchRepository) FindByCorporations(ctx context.Context, tenantID uuid.UUID, corporationIDs []uuid.UUID) ([]organization.Branch, error) {
	args := m.Called(ctx, tenantID, corporationIDs)
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

// MockLocator is a mock implementation of geoapp.Locator
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(ctx context.Context, tenantID uuid.UUID, in geoapp.LocateInput) (geoapp.Placement, error) {
	args := m.Called(ctx, tenantID, in)
	return args.Get(0).(geoapp.Placement), args.Error(1)
}
