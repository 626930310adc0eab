package importapp

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/mock"
)

var testTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// memKiosks is an in-memory kiosk repository keyed by serial number
type memKiosks struct {
	asset.KioskRepository
	bySerial map[string]*asset.Kiosk
	order    []string
	failOn   string
}

func newMemKiosks(kiosks ...*asset.Kiosk) *memKiosks {
	m := &memKiosks{bySerial: map[string]*asset.Kiosk{}}
	for _, k := range kiosks {
		m.bySerial[k.SerialNumber] = k
		m.order = append(m.order, k.SerialNumber)
	}
	return m
}

func (m *memKiosks) FindBySerial(_ context.Context, _ uuid.UUID, serial string) (*asset.Kiosk, error) {
	if k, ok := m.bySerial[serial]; ok {
		return k, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memKiosks) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]asset.Kiosk, error) {
	out := make([]asset.Kiosk, 0, len(m.order))
	for _, s := range m.order {
		out = append(out, *m.bySerial[s])
	}
	return out, nil
}

func (m *memKiosks) Save(_ context.Context, k *asset.Kiosk) error {
	if m.failOn != "" && k.SerialNumber == m.failOn {
		return errors.New("disk full")
	}
	if _, ok := m.bySerial[k.SerialNumber]; !ok {
		m.order = append(m.order, k.SerialNumber)
	}
	m.bySerial[k.SerialNumber] = k
	return nil
}

// memPartners is an in-memory partner repository keyed by code
type memPartners struct {
	partner.PartnerRepository
	byCode map[string]*partner.Partner
	order  []string
	saves  int
}

func newMemPartners(partners ...*partner.Partner) *memPartners {
	m := &memPartners{byCode: map[string]*partner.Partner{}}
	for _, p := range partners {
		m.byCode[p.Code] = p
		m.order = append(m.order, p.Code)
	}
	return m
}

func (m *memPartners) FindByCode(_ context.Context, _ uuid.UUID, code string) (*partner.Partner, error) {
	if p, ok := m.byCode[code]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memPartners) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]partner.Partner, error) {
	out := make([]partner.Partner, 0, len(m.order))
	for _, c := range m.order {
		out = append(out, *m.byCode[c])
	}
	return out, nil
}

func (m *memPartners) Save(_ context.Context, p *partner.Partner) error {
	m.saves++
	if _, ok := m.byCode[p.Code]; !ok {
		m.order = append(m.order, p.Code)
	}
	m.byCode[p.Code] = p
	return nil
}

type stubBranches struct {
	organization.BranchRepository
	branches []organization.Branch
}

func (s stubBranches) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]organization.Branch, error) {
	return s.branches, nil
}

type stubLeads struct {
	marketing.LeadRepository
	leads []marketing.Lead
}

func (s stubLeads) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]marketing.Lead, error) {
	return s.leads, nil
}

// tokyoLocator places any address mentioning 東京都 in one region.
// Explicit region and area IDs win over the address.
type tokyoLocator struct {
	regionID uuid.UUID
	catalog  *geo.Catalog
}

func (l tokyoLocator) Locate(_ context.Context, _ uuid.UUID, in geoapp.LocateInput) (geoapp.Placement, error) {
	p := geoapp.Placement{Address: in.Address, Method: geo.MatchNone}
	if strings.HasPrefix(in.Address, "東京都") {
		id := l.regionID
		p.Prefecture = "東京都"
		p.RegionID = &id
		p.Method = geo.MatchByPrefecture
	}
	if in.RegionID != nil {
		p.RegionID = in.RegionID
	}
	if in.AreaID != nil {
		p.AreaID = in.AreaID
	}
	return p, nil
}

func (l tokyoLocator) Catalog(context.Context, uuid.UUID) (*geo.Catalog, error) {
	if l.catalog == nil {
		return geo.NewCatalog(nil, nil), nil
	}
	return l.catalog, nil
}

type stubCatalog struct {
	catalog *geo.Catalog
}

func (s stubCatalog) Catalog(context.Context, uuid.UUID) (*geo.Catalog, error) {
	return s.catalog, nil
}

// MockObjectStore is a mock ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ObjectKey(tenant, name string) string {
	return "exports/" + tenant + "/" + name
}

func (m *MockObjectStore) Store(ctx context.Context, key string, data []byte, contentType string) (*storage.StoredObject, error) {
	args := m.Called(ctx, key, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredObject), args.Error(1)
}
