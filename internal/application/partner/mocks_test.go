package partner

import (
	"context"

	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"github.com/stretchr/testify/mock"
)

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

// MockPricingRepository is a mock implementation of partner.PricingRepository
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Pricing, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Pricing), args.Error(1)
}

func (m *MockPricingRepository) FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]partner.Pricing, error) {
	args := m.Called(ctx, tenantID, partnerID)
	return args.Get(0).([]partner.Pricing), args.Error(1)
}

func (m *MockPricingRepository) FindByPartnerAndItem(ctx context.Context, tenantID, partnerID uuid.UUID, itemCode string) ([]partner.Pricing, error) {
	args := m.Called(ctx, tenantID, partnerID, itemCode)
	return args.Get(0).([]partner.Pricing), args.Error(1)
}

func (m *MockPricingRepository) Save(ctx context.Context, p *partner.Pricing) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPricingRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
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

// MockPipedrive is a mock implementation of PipedriveOrganizations
type MockPipedrive struct {
	mock.Mock
}

func (m *MockPipedrive) UpsertOrganization(ctx context.Context, id *int64, org integration.PipedriveOrganization) (int64, error) {
	args := m.Called(ctx, id, org)
	return args.Get(0).(int64), args.Error(1)
}
