package marketing

import (
	"context"

	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"github.com/stretchr/testify/mock"
)

// MockCampaignRepository is a mock implementation of marketing.CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*marketing.Campaign, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketing.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]marketing.Campaign, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]marketing.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCampaignRepository) Save(ctx context.Context, c *marketing.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLeadRepository is a mock implementation of marketing.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*marketing.Lead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketing.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]marketing.Lead, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]marketing.Lead), args.Error(1)
}

func (m *MockLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountByCampaignAndStatus(ctx context.Context, tenantID, campaignID uuid.UUID) ([]marketing.LeadStatusCount, error) {
	args := m.Called(ctx, tenantID, campaignID)
	return args.Get(0).([]marketing.LeadStatusCount), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, l *marketing.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
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

// MockLocator is a mock implementation of geoapp.Locator
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(ctx context.Context, tenantID uuid.UUID, in geoapp.LocateInput) (geoapp.Placement, error) {
	args := m.Called(ctx, tenantID, in)
	return args.Get(0).(geoapp.Placement), args.Error(1)
}

// MockPipedrive is a mock implementation of PipedriveDeals
type MockPipedrive struct {
	mock.Mock
}

func (m *MockPipedrive) UpsertPerson(ctx context.Context, id *int64, person integration.PipedrivePerson) (int64, error) {
	args := m.Called(ctx, id, person)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPipedrive) UpsertDeal(ctx context.Context, id *int64, deal integration.PipedriveDeal) (int64, error) {
	args := m.Called(ctx, id, deal)
	return args.Get(0).(int64), args.Error(1)
}
