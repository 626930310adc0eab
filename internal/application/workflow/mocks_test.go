package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	infra "github.com/kioskcrm/backend/internal/infrastructure/printing"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of workflow.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workflow.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workflow.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]workflow.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ListNumbers(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *workflow.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockProcessRepository is a mock implementation of workflow.ProcessRepository
type MockProcessRepository struct {
	mock.Mock
}

func (m *MockProcessRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workflow.Process, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Process), args.Error(1)
}

func (m *MockProcessRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workflow.Process, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]workflow.Process), args.Error(1)
}

func (m *MockProcessRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProcessRepository) FindOpenDueBefore(ctx context.Context, before time.Time) ([]workflow.Process, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]workflow.Process), args.Error(1)
}

func (m *MockProcessRepository) Save(ctx context.Context, p *workflow.Process) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProcessRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockDeliveryRepository is a mock implementation of workflow.DeliveryRequestRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workflow.DeliveryRequest, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workflow.DeliveryRequest, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]workflow.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) FindOpenDueBefore(ctx context.Context, before time.Time) ([]workflow.DeliveryRequest, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]workflow.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, d *workflow.DeliveryRequest) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// stubPartners answers FindByIDForTenant from a map; other methods are unused.
type stubPartners struct {
	partner.PartnerRepository
	byID map[uuid.UUID]*partner.Partner
}

func (s stubPartners) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*partner.Partner, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

type stubBranches struct {
	organization.BranchRepository
}

func (stubBranches) FindByIDForTenant(context.Context, uuid.UUID, uuid.UUID) (*organization.Branch, error) {
	return nil, shared.ErrNotFound
}

type stubKiosks struct {
	asset.KioskRepository
	byID map[uuid.UUID]*asset.Kiosk
}

func (s stubKiosks) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*asset.Kiosk, error) {
	if k, ok := s.byID[id]; ok {
		return k, nil
	}
	return nil, shared.ErrNotFound
}

type stubUsers struct {
	identity.UserRepository
	byID map[uuid.UUID]*identity.User
}

func (s stubUsers) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*identity.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

// MockQuotationPrinter is a mock implementation of QuotationPrinter
type MockQuotationPrinter struct {
	mock.Mock
}

func (m *MockQuotationPrinter) Print(ctx context.Context, data infra.QuotationData) ([]byte, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
