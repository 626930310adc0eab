package importapp

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	assetapp "github.com/kioskcrm/backend/internal/application/asset"
	"github.com/kioskcrm/backend/internal/application/common"
	marketingapp "github.com/kioskcrm/backend/internal/application/marketing"
	orgapp "github.com/kioskcrm/backend/internal/application/organization"
	partnerapp "github.com/kioskcrm/backend/internal/application/partner"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/marketing"
	"github.com/kioskcrm/backend/internal/domain/organization"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	csvimport "github.com/kioskcrm/backend/internal/infrastructure/import"
	"github.com/kioskcrm/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// ObjectStore uploads export files
type ObjectStore interface {
	ObjectKey(tenant, name string) string
	Store(ctx context.Context, key string, data []byte, contentType string) (*storage.StoredObject, error)
}

// CatalogReader loads a tenant's regions and areas
type CatalogReader interface {
	Catalog(ctx context.Context, tenantID uuid.UUID) (*geo.Catalog, error)
}

// ExportServiceDeps lists the collaborators of ExportService. Store is
// optional.
type ExportServiceDeps struct {
	KioskRepo   asset.KioskRepository
	PartnerRepo partner.PartnerRepository
	BranchRepo  organization.BranchRepository
	LeadRepo    marketing.LeadRepository
	Geo         CatalogReader
	Store       ObjectStore
	Location    *time.Location
	Logger      *zap.Logger
}

// ExportService renders tenant data as CSV or JSON files
type ExportService struct {
	kioskRepo   asset.KioskRepository
	partnerRepo partner.PartnerRepository
	branchRepo  organization.BranchRepository
	leadRepo    marketing.LeadRepository
	geo         CatalogReader
	store       ObjectStore
	loc         *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(deps ExportServiceDeps) *ExportService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &ExportService{
		kioskRepo:   deps.KioskRepo,
		partnerRepo: deps.PartnerRepo,
		branchRepo:  deps.BranchRepo,
		leadRepo:    deps.LeadRepo,
		geo:         deps.Geo,
		store:       deps.Store,
		loc:         deps.Location,
		logger:      deps.Logger,
		now:         time.Now,
	}
}

// Export renders resource in format
func (s *ExportService) Export(ctx context.Context, tenantID uuid.UUID, resource, format string) (*ExportFile, error) {
	f, err := csvimport.ParseFormat(format)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FORMAT", err.Error())
	}

	var table csvimport.Table
	switch resource {
	case ResourceKiosks:
		table, err = s.kioskTable(ctx, tenantID)
	case ResourcePartners:
		table, err = s.partnerTable(ctx, tenantID)
	case ResourceBranches:
		table, err = s.branchTable(ctx, tenantID)
	case ResourceLeads:
		table, err = s.leadTable(ctx, tenantID)
	default:
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Unknown export resource: "+resource)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := csvimport.Write(&buf, f, table); err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", resource, s.now().In(s.loc).Format("20060102-150405"), f.Extension()),
		ContentType: f.ContentType(),
		Rows:        len(table.Rows),
		Data:        buf.Bytes(),
	}, nil
}

// ExportToS3 renders resource and uploads it, returning a presigned link
func (s *ExportService) ExportToS3(ctx context.Context, tenantID uuid.UUID, resource, format string) (*S3ExportResponse, error) {
	if s.store == nil {
		return nil, shared.NewDomainError("INTEGRATION_NOT_CONFIGURED", "Object storage is not configured")
	}
	file, err := s.Export(ctx, tenantID, resource, format)
	if err != nil {
		return nil, err
	}

	key := s.store.ObjectKey(tenantID.String(), file.Filename)
	obj, err := s.store.Store(ctx, key, file.Data, file.ContentType)
	if err != nil {
		s.logger.Warn("Export upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shared.NewDomainError("INTEGRATION_FAILED", "Failed to upload export"), err)
	}

	f, _ := csvimport.ParseFormat(format)
	return &S3ExportResponse{
		Resource:    resource,
		Format:      string(f),
		Bucket:      obj.Bucket,
		Key:         obj.Key,
		Rows:        file.Rows,
		DownloadURL: obj.DownloadURL,
		ExpiresAt:   obj.ExpiresAt,
	}, nil
}

// fetchAll pages through a list query until a short page is returned.
func fetchAll[T any](ctx context.Context, tenantID uuid.UUID, orderBy string, list func(context.Context, uuid.UUID, shared.Filter) ([]T, error)) ([]T, error) {
	var out []T
	filter := shared.DefaultFilter()
	filter.PageSize = shared.MaxPageSize
	filter.OrderBy = orderBy
	filter.OrderDir = "asc"
	for {
		page, err := list(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < filter.PageSize {
			return out, nil
		}
		filter.Page++
	}
}

// codes resolves region and area IDs to their codes
type codes struct {
	catalog *geo.Catalog
	areas   map[uuid.UUID]string
}

func (s *ExportService) codes(ctx context.Context, tenantID uuid.UUID) codes {
	c := codes{areas: map[uuid.UUID]string{}}
	if s.geo == nil {
		return c
	}
	catalog, err := s.geo.Catalog(ctx, tenantID)
	if err != nil {
		s.logger.Warn("Catalog unavailable for export", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return c
	}
	c.catalog = catalog
	for _, a := range catalog.Areas() {
		c.areas[a.ID] = a.Code
	}
	return c
}

func (c codes) region(id *uuid.UUID) string {
	if id == nil || c.catalog == nil {
		return ""
	}
	if r, ok := c.catalog.Region(*id); ok {
		return r.Code
	}
	return ""
}

func (c codes) area(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return c.areas[*id]
}

func (s *ExportService) kioskTable(ctx context.Context, tenantID uuid.UUID) (csvimport.Table, error) {
	kiosks, err := fetchAll(ctx, tenantID, "serial_number", s.kioskRepo.FindAllForTenant)
	if err != nil {
		return csvimport.Table{}, err
	}
	partners, err := fetchAll(ctx, tenantID, "code", s.partnerRepo.FindAllForTenant)
	if err != nil {
		return csvimport.Table{}, err
	}
	partnerCodes := make(map[uuid.UUID]string, len(partners))
	for i := range partners {
		partnerCodes[partners[i].ID] = partners[i].Code
	}
	geoCodes := s.codes(ctx, tenantID)

	t := csvimport.Table{
		Headers: KioskColumns,
		Rows:    make([][]string, len(kiosks)),
		Records: assetapp.ToKioskResponses(kiosks),
	}
	for i := range kiosks {
		k := &kiosks[i]
		partnerCode := ""
		if k.PartnerID != nil {
			partnerCode = partnerCodes[*k.PartnerID]
		}
		t.Rows[i] = []string{
			k.SerialNumber,
			k.ModelName,
			string(k.Status),
			partnerCode,
			k.InstallAddress,
			k.Prefecture,
			k.City,
			geoCodes.region(k.RegionID),
			geoCodes.area(k.AreaID),
			formatDate(k.InstalledAt),
			k.ListPrice.String(),
			k.MonthlyFee.String(),
			k.Notes,
		}
	}
	return t, nil
}

func (s *ExportService) partnerTable(ctx context.Context, tenantID uuid.UUID) (csvimport.Table, error) {
	partners, err := fetchAll(ctx, tenantID, "code", s.partnerRepo.FindAllForTenant)
	if err != nil {
		return csvimport.Table{}, err
	}
	geoCodes := s.codes(ctx, tenantID)

	t := csvimport.Table{
		Headers: []string{"code", "name", "type", "status", "contact_name", "email", "phone", "address", "prefecture", "region_code", "area_code", "pipedrive_org_id", "notes"},
		Rows:    make([][]string, len(partners)),
		Records: partnerapp.ToPartnerResponses(partners),
	}
	for i := range partners {
		p := &partners[i]
		orgID := ""
		if p.PipedriveOrgID != nil {
			orgID = strconv.FormatInt(*p.PipedriveOrgID, 10)
		}
		t.Rows[i] = []string{
			p.Code, p.Name, string(p.Type), string(p.Status),
			p.ContactName, p.Email, p.Phone,
			p.Address, p.Prefecture, geoCodes.region(p.RegionID), geoCodes.area(p.AreaID),
			orgID, p.Notes,
		}
	}
	return t, nil
}

func (s *ExportService) branchTable(ctx context.Context, tenantID uuid.UUID) (csvimport.Table, error) {
	branches, err := fetchAll(ctx, tenantID, "code", s.branchRepo.FindAllForTenant)
	if err != nil {
		return csvimport.Table{}, err
	}
	geoCodes := s.codes(ctx, tenantID)

	t := csvimport.Table{
		Headers: []string{"code", "name", "corporation_id", "status", "address", "prefecture", "city", "region_code", "area_code", "phone", "manager_name", "notes"},
		Rows:    make([][]string, len(branches)),
		Records: orgapp.ToBranchResponses(branches),
	}
	for i := range branches {
		b := &branches[i]
		t.Rows[i] = []string{
			b.Code, b.Name, b.CorporationID.String(), string(b.Status),
			b.Address, b.Prefecture, b.City, geoCodes.region(b.RegionID), geoCodes.area(b.AreaID),
			b.Phone, b.ManagerName, b.Notes,
		}
	}
	return t, nil
}

func (s *ExportService) leadTable(ctx context.Context, tenantID uuid.UUID) (csvimport.Table, error) {
	leads, err := fetchAll(ctx, tenantID, "created_at", s.leadRepo.FindAllForTenant)
	if err != nil {
		return csvimport.Table{}, err
	}
	geoCodes := s.codes(ctx, tenantID)

	records := make([]marketingapp.LeadResponse, len(leads))
	t := csvimport.Table{
		Headers: []string{"name", "company_name", "email", "phone", "address", "prefecture", "region_code", "source", "status", "campaign_id", "created_at", "notes"},
		Rows:    make([][]string, len(leads)),
		Records: records,
	}
	for i := range leads {
		l := &leads[i]
		records[i] = marketingapp.ToLeadResponse(l)
		campaign := ""
		if l.CampaignID != nil {
			campaign = l.CampaignID.String()
		}
		t.Rows[i] = []string{
			l.Name, l.CompanyName, l.Email, l.Phone,
			l.Address, l.Prefecture, geoCodes.region(l.RegionID),
			string(l.Source), string(l.Status), campaign,
			l.CreatedAt.In(s.loc).Format("2006-01-02 15:04"), l.Notes,
		}
	}
	return t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(common.DateLayout)
}
