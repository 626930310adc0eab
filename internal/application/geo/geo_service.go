package geo

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/infrastructure/cache"
	"github.com/kioskcrm/backend/internal/infrastructure/seed"
	"github.com/kioskcrm/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Locator places an address in the tenant's region/area catalog.
// Branch, partner, kiosk and lead services depend on it.
type Locator interface {
	Locate(ctx context.Context, tenantID uuid.UUID, in LocateInput) (Placement, error)
}

// LocateInput is an address with optional explicit region and area.
// Explicit IDs take precedence over the derived ones.
type LocateInput struct {
	Address  string
	RegionID *uuid.UUID
	AreaID   *uuid.UUID
}

// Placement is where an address landed
type Placement struct {
	Address    string
	Prefecture string
	City       string
	RegionID   *uuid.UUID
	AreaID     *uuid.UUID
	Method     geo.MatchMethod
}

// GeoService manages regions and areas and answers address matches
type GeoService struct {
	regionRepo geo.RegionRepository
	areaRepo   geo.AreaRepository
	txScope    TransactionScope
	cache      cache.CatalogCache
	metrics    *telemetry.BusinessMetrics
	logger     *zap.Logger
}

// GeoServiceOption configures a GeoService
type GeoServiceOption func(*GeoService)

// WithCatalogCache sets the catalog cache. The default never caches.
func WithCatalogCache(c cache.CatalogCache) GeoServiceOption {
	return func(s *GeoService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithTransactionScope makes Seed write the catalog atomically. The default
// writes through the plain repositories.
func WithTransactionScope(tx TransactionScope) GeoServiceOption {
	return func(s *GeoService) {
		if tx != nil {
			s.txScope = tx
		}
	}
}

// WithMetrics records geo matches on the given business metrics
func WithMetrics(m *telemetry.BusinessMetrics) GeoServiceOption {
	return func(s *GeoService) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) GeoServiceOption {
	return func(s *GeoService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewGeoService creates a new GeoService
func NewGeoService(regionRepo geo.RegionRepository, areaRepo geo.AreaRepository, opts ...GeoServiceOption) *GeoService {
	s := &GeoService{
		regionRepo: regionRepo,
		areaRepo:   areaRepo,
		cache:      cache.NoopCatalogCache{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.txScope == nil {
		s.txScope = NewNoOpTransactionScope(regionRepo, areaRepo)
	}
	return s
}

// Catalog returns the tenant's catalog, reading through the cache.
// Cache failures are logged and fall back to the repositories.
func (s *GeoService) Catalog(ctx context.Context, tenantID uuid.UUID) (*geo.Catalog, error) {
	snapshot, err := s.cache.Get(ctx, tenantID)
	if err != nil {
		s.logger.Warn("Catalog cache read failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
	if snapshot != nil {
		return snapshot.Catalog(), nil
	}

	regions, err := s.regionRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	areas, err := s.areaRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	snapshot = &cache.CatalogSnapshot{Regions: regions, Areas: areas}
	if err := s.cache.Set(ctx, tenantID, snapshot); err != nil {
		s.logger.Warn("Catalog cache write failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
	return snapshot.Catalog(), nil
}

// Match resolves an address against the tenant's catalog
func (s *GeoService) Match(ctx context.Context, tenantID uuid.UUID, address string) (geo.Match, error) {
	catalog, err := s.Catalog(ctx, tenantID)
	if err != nil {
		return geo.Match{}, err
	}
	m := catalog.MatchRegionArea(address)
	s.metrics.GeoMatched(ctx, string(m.Method))
	return m, nil
}

// Locate derives prefecture, city, region and area from the address, then
// applies explicit overrides. An explicit area implies its region; an
// explicit region that disagrees with an explicit area is rejected.
func (s *GeoService) Locate(ctx context.Context, tenantID uuid.UUID, in LocateInput) (Placement, error) {
	catalog, err := s.Catalog(ctx, tenantID)
	if err != nil {
		return Placement{}, err
	}

	p := Placement{Address: geo.NormalizeAddress(in.Address), Method: geo.MatchNone}
	if p.Address != "" {
		m := catalog.MatchRegionArea(in.Address)
		s.metrics.GeoMatched(ctx, string(m.Method))
		p.Prefecture = m.Prefecture
		p.City = m.City
		p.RegionID = m.RegionID()
		p.AreaID = m.AreaID()
		p.Method = m.Method
	}

	if in.AreaID != nil {
		area := findArea(catalog, *in.AreaID)
		if area == nil {
			return Placement{}, shared.NewDomainError("INVALID_AREA", "Area does not exist")
		}
		areaID, regionID := area.ID, area.RegionID
		p.AreaID = &areaID
		p.RegionID = &regionID
	}
	if in.RegionID != nil {
		if _, ok := catalog.Region(*in.RegionID); !ok {
			return Placement{}, shared.NewDomainError("INVALID_REGION", "Region does not exist")
		}
		if in.AreaID != nil && *p.RegionID != *in.RegionID {
			return Placement{}, shared.NewDomainError("INVALID_AREA", "Area does not belong to the region")
		}
		if p.RegionID == nil || *p.RegionID != *in.RegionID {
			// a derived area from another region no longer applies
			p.AreaID = nil
		}
		regionID := *in.RegionID
		p.RegionID = &regionID
	}
	return p, nil
}

func findArea(c *geo.Catalog, id uuid.UUID) *geo.Area {
	for i := range c.Areas() {
		if c.Areas()[i].ID == id {
			return &c.Areas()[i]
		}
	}
	return nil
}

// MatchAddress is Match shaped for the API
func (s *GeoService) MatchAddress(ctx context.Context, tenantID uuid.UUID, req MatchRequest) (*MatchResponse, error) {
	m, err := s.Match(ctx, tenantID, req.Address)
	if err != nil {
		return nil, err
	}
	resp := ToMatchResponse(m)
	return &resp, nil
}

// GetCatalog returns regions with their areas in match order
func (s *GeoService) GetCatalog(ctx context.Context, tenantID uuid.UUID) (*CatalogResponse, error) {
	catalog, err := s.Catalog(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	byRegion := make(map[uuid.UUID][]AreaResponse)
	for i := range catalog.Areas() {
		a := &catalog.Areas()[i]
		byRegion[a.RegionID] = append(byRegion[a.RegionID], ToAreaResponse(a))
	}

	resp := &CatalogResponse{
		Regions:     make([]CatalogRegion, 0, len(catalog.Regions())),
		Prefectures: geo.Prefectures,
	}
	for i := range catalog.Regions() {
		r := &catalog.Regions()[i]
		areas := byRegion[r.ID]
		if areas == nil {
			areas = []AreaResponse{}
		}
		resp.Regions = append(resp.Regions, CatalogRegion{
			RegionResponse: ToRegionResponse(r),
			Areas:          areas,
		})
	}
	return resp, nil
}

// ListRegions returns all regions of the tenant in match order
func (s *GeoService) ListRegions(ctx context.Context, tenantID uuid.UUID) ([]RegionResponse, error) {
	catalog, err := s.Catalog(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]RegionResponse, 0, len(catalog.Regions()))
	for i := range catalog.Regions() {
		out = append(out, ToRegionResponse(&catalog.Regions()[i]))
	}
	return out, nil
}

// GetRegion retrieves a region by ID
func (s *GeoService) GetRegion(ctx context.Context, tenantID, regionID uuid.UUID) (*RegionResponse, error) {
	region, err := s.regionRepo.FindByIDForTenant(ctx, tenantID, regionID)
	if err != nil {
		return nil, err
	}
	resp := ToRegionResponse(region)
	return &resp, nil
}

// CreateRegion creates a new region
func (s *GeoService) CreateRegion(ctx context.Context, tenantID uuid.UUID, req CreateRegionRequest) (*RegionResponse, error) {
	exists, err := s.regionRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Region with this code already exists")
	}

	region, err := geo.NewRegion(tenantID, req.Code, req.Name, req.Prefectures)
	if err != nil {
		return nil, err
	}
	region.SetOffice(req.OfficeName, req.OfficeEmail, req.SlackChannel)
	if req.SortOrder != nil {
		region.SetSortOrder(*req.SortOrder)
	}

	if err := s.regionRepo.Save(ctx, region); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenantID)

	resp := ToRegionResponse(region)
	return &resp, nil
}

// UpdateRegion updates a region
func (s *GeoService) UpdateRegion(ctx context.Context, tenantID, regionID uuid.UUID, req UpdateRegionRequest) (*RegionResponse, error) {
	region, err := s.regionRepo.FindByIDForTenant(ctx, tenantID, regionID)
	if err != nil {
		return nil, err
	}

	name := region.Name
	if req.Name != nil {
		name = *req.Name
	}
	prefs := region.Prefectures
	if req.Prefectures != nil {
		prefs = req.Prefectures
	}
	if err := region.Update(name, prefs); err != nil {
		return nil, err
	}

	officeName, officeEmail, slack := region.OfficeName, region.OfficeEmail, region.SlackChannel
	if req.OfficeName != nil {
		officeName = *req.OfficeName
	}
	if req.OfficeEmail != nil {
		officeEmail = *req.OfficeEmail
	}
	if req.SlackChannel != nil {
		slack = *req.SlackChannel
	}
	region.SetOffice(officeName, officeEmail, slack)

	if req.SortOrder != nil {
		region.SetSortOrder(*req.SortOrder)
	}

	if err := s.regionRepo.Save(ctx, region); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenantID)

	resp := ToRegionResponse(region)
	return &resp, nil
}

// DeleteRegion deletes a region that has no areas
func (s *GeoService) DeleteRegion(ctx context.Context, tenantID, regionID uuid.UUID) error {
	if _, err := s.regionRepo.FindByIDForTenant(ctx, tenantID, regionID); err != nil {
		return err
	}

	count, err := s.areaRepo.CountByRegion(ctx, tenantID, regionID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Cannot delete region that still has areas")
	}

	if err := s.regionRepo.DeleteForTenant(ctx, tenantID, regionID); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// ListAreas returns areas in match order, optionally limited to one region
func (s *GeoService) ListAreas(ctx context.Context, tenantID uuid.UUID, regionID *uuid.UUID) ([]AreaResponse, error) {
	var (
		areas []geo.Area
		err   error
	)
	if regionID != nil {
		areas, err = s.areaRepo.FindByRegion(ctx, tenantID, *regionID)
	} else {
		areas, err = s.areaRepo.FindAllForTenant(ctx, tenantID)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(areas, func(i, j int) bool {
		if areas[i].SortOrder != areas[j].SortOrder {
			return areas[i].SortOrder < areas[j].SortOrder
		}
		return areas[i].Code < areas[j].Code
	})

	out := make([]AreaResponse, 0, len(areas))
	for i := range areas {
		out = append(out, ToAreaResponse(&areas[i]))
	}
	return out, nil
}

// GetArea retrieves an area by ID
func (s *GeoService) GetArea(ctx context.Context, tenantID, areaID uuid.UUID) (*AreaResponse, error) {
	area, err := s.areaRepo.FindByIDForTenant(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}
	resp := ToAreaResponse(area)
	return &resp, nil
}

// CreateArea creates a new area inside an existing region
func (s *GeoService) CreateArea(ctx context.Context, tenantID uuid.UUID, req CreateAreaRequest) (*AreaResponse, error) {
	if _, err := s.regionRepo.FindByIDForTenant(ctx, tenantID, req.RegionID); err != nil {
		return nil, err
	}

	exists, err := s.areaRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Area with this code already exists")
	}

	area, err := geo.NewArea(tenantID, req.RegionID, req.Code, req.Name, req.Keywords)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		area.SetSortOrder(*req.SortOrder)
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenantID)

	resp := ToAreaResponse(area)
	return &resp, nil
}

// UpdateArea updates an area
func (s *GeoService) UpdateArea(ctx context.Context, tenantID, areaID uuid.UUID, req UpdateAreaRequest) (*AreaResponse, error) {
	area, err := s.areaRepo.FindByIDForTenant(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}

	regionID := area.RegionID
	if req.RegionID != nil && *req.RegionID != area.RegionID {
		if _, err := s.regionRepo.FindByIDForTenant(ctx, tenantID, *req.RegionID); err != nil {
			return nil, err
		}
		regionID = *req.RegionID
	}
	name := area.Name
	if req.Name != nil {
		name = *req.Name
	}
	keywords := area.Keywords
	if req.Keywords != nil {
		keywords = req.Keywords
	}
	if err := area.Update(regionID, name, keywords); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		area.SetSortOrder(*req.SortOrder)
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenantID)

	resp := ToAreaResponse(area)
	return &resp, nil
}

// DeleteArea deletes an area
func (s *GeoService) DeleteArea(ctx context.Context, tenantID, areaID uuid.UUID) error {
	if _, err := s.areaRepo.FindByIDForTenant(ctx, tenantID, areaID); err != nil {
		return err
	}
	if err := s.areaRepo.DeleteForTenant(ctx, tenantID, areaID); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// Seed loads the default region/area catalog for a tenant that has none.
// Regions and areas are written in one transaction: a failed seed leaves
// nothing behind and can be retried.
func (s *GeoService) Seed(ctx context.Context, tenantID uuid.UUID) (*SeedResponse, error) {
	file, err := seed.DefaultGeoCatalog()
	if err != nil {
		return nil, err
	}
	regions, areas, err := file.Build(tenantID)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.RegionRepo().CountForTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("ALREADY_EXISTS", "Tenant already has regions")
		}
		for _, r := range regions {
			if err := repos.RegionRepo().Save(ctx, r); err != nil {
				return err
			}
		}
		for _, a := range areas {
			if err := repos.AreaRepo().Save(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenantID)

	s.logger.Info("Seeded default geo catalog",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("regions", len(regions)),
		zap.Int("areas", len(areas)))

	return &SeedResponse{Regions: len(regions), Areas: len(areas)}, nil
}

func (s *GeoService) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.logger.Warn("Catalog cache invalidation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
}
