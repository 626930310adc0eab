package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/kioskcrm/backend/internal/infrastructure/integration"
	"github.com/stretchr/testify/mock"
)

// MockProcessRepository mocks the methods the sweep uses
type MockProcessRepository struct {
	workflow.ProcessRepository
	mock.Mock
}

func (m *MockProcessRepository) FindOpenDueBefore(ctx context.Context, before time.Time) ([]workflow.Process, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workflow.Process), args.Error(1)
}

func (m *MockProcessRepository) Save(ctx context.Context, p *workflow.Process) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDeliveryRepository mocks the methods the sweep uses
type MockDeliveryRepository struct {
	workflow.DeliveryRequestRepository
	mock.Mock
}

func (m *MockDeliveryRepository) FindOpenDueBefore(ctx context.Context, before time.Time) ([]workflow.DeliveryRequest, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workflow.DeliveryRequest), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, d *workflow.DeliveryRequest) error {
	args := m.Called(ctx, d)
	return args.Error(0)
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

type stubCatalog struct {
	catalog *geo.Catalog
}

func (s stubCatalog) Catalog(context.Context, uuid.UUID) (*geo.Catalog, error) {
	return s.catalog, nil
}

// MockSlack is a mock SlackPoster
type MockSlack struct {
	mock.Mock
}

func (m *MockSlack) Post(ctx context.Context, msg integration.SlackMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockMailer is a mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, mail integration.Mail) (string, error) {
	args := m.Called(ctx, mail)
	return args.String(0), args.Error(1)
}

// MockTopic is a mock TopicPublisher
type MockTopic struct {
	mock.Mock
}

func (m *MockTopic) Publish(ctx context.Context, subject, message string) (string, error) {
	args := m.Called(ctx, subject, message)
	return args.String(0), args.Error(1)
}
