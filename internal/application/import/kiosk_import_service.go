package importapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/asset"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	csvimport "github.com/kioskcrm/backend/internal/infrastructure/import"
	"github.com/kioskcrm/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// KioskColumns is the kiosk CSV layout shared by export and import
var KioskColumns = []string{
	"serial_number", "model_name", "status", "partner_code",
	"install_address", "prefecture", "city", "region_code", "area_code",
	"installed_at", "list_price", "monthly_fee", "notes",
}

// maxImportErrors caps the row errors returned to the caller
const maxImportErrors = 200

// KioskLocator places install addresses and exposes the tenant catalog so
// region_code and area_code columns can override the address match.
type KioskLocator interface {
	geoapp.Locator
	Catalog(ctx context.Context, tenantID uuid.UUID) (*geo.Catalog, error)
}

// KioskImportService upserts kiosks from CSV by serial number
type KioskImportService struct {
	kioskRepo   asset.KioskRepository
	partnerRepo partner.PartnerRepository
	locator     KioskLocator
	events      *event.Dispatcher
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
	loc         *time.Location
}

// NewKioskImportService creates a new KioskImportService
func NewKioskImportService(
	kioskRepo asset.KioskRepository,
	partnerRepo partner.PartnerRepository,
	locator KioskLocator,
	events *event.Dispatcher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
	loc *time.Location,
) *KioskImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &KioskImportService{
		kioskRepo:   kioskRepo,
		partnerRepo: partnerRepo,
		locator:     locator,
		events:      events,
		metrics:     metrics,
		logger:      logger,
		loc:         loc,
	}
}

// ValidationRules returns the column rules for the kiosk CSV
func (s *KioskImportService) ValidationRules() []csvimport.FieldRule {
	zero := decimal.Zero
	return []csvimport.FieldRule{
		csvimport.Field("serial_number").Required().MaxLength(64).Unique().Build(),
		csvimport.Field("model_name").Required().MaxLength(100).Build(),
		csvimport.Field("status").OneOf("in_stock", "installed", "leased", "sold", "maintenance", "retired").Build(),
		csvimport.Field("partner_code").MaxLength(20).Build(),
		csvimport.Field("install_address").MaxLength(500).Build(),
		csvimport.Field("region_code").MaxLength(20).Build(),
		csvimport.Field("area_code").MaxLength(20).Build(),
		csvimport.Field("installed_at").Date().Build(),
		csvimport.Field("list_price").Decimal().MinValue(zero).Build(),
		csvimport.Field("monthly_fee").Decimal().MinValue(zero).Build(),
		csvimport.Field("notes").MaxLength(2000).Build(),
	}
}

// Import reads a CSV in the given encoding ("utf-8" or "shift_jis") and
// upserts each valid row. Rows that fail validation or saving are reported
// and skipped; the remaining rows are still imported.
func (s *KioskImportService) Import(ctx context.Context, tenantID uuid.UUID, r io.Reader, encoding string) (*ImportResult, error) {
	enc, err := csvimport.ParseEncoding(encoding)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ENCODING", err.Error())
	}
	parser, err := csvimport.NewCSVParser(r, csvimport.WithEncoding(enc))
	if err != nil {
		return nil, fileError(err)
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, fileError(err)
	}

	errs := csvimport.NewErrorCollection(maxImportErrors)
	validator := csvimport.NewFieldValidator(s.ValidationRules(), errs)
	if missing := parser.MissingHeaders(validator.RequiredColumns()); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "Missing required columns: "+strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, fileError(err)
	}

	result := &ImportResult{Total: len(rows)}
	partnerIDs := map[string]*uuid.UUID{}
	codes := &geoCodes{}
	for _, row := range rows {
		if !validator.ValidateRow(row) {
			result.Failed++
			continue
		}
		created, rowErr := s.upsertRow(ctx, tenantID, row, partnerIDs, codes)
		if rowErr != nil {
			errs.Add(*rowErr)
			result.Failed++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	result.collect(errs)

	s.metrics.ImportRows(ctx, ResourceKiosks, result.Created+result.Updated, true)
	s.metrics.ImportRows(ctx, ResourceKiosks, result.Failed, false)
	s.logger.Info("Kiosk import finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *KioskImportService) upsertRow(ctx context.Context, tenantID uuid.UUID, row *csvimport.Row, partnerIDs map[string]*uuid.UUID, codes *geoCodes) (bool, *csvimport.RowError) {
	line := row.LineNumber
	serial := strings.ToUpper(row.Get("serial_number"))

	created := false
	kiosk, err := s.kioskRepo.FindBySerial(ctx, tenantID, serial)
	switch {
	case err == nil:
		if err := kiosk.SetModel(row.Get("model_name")); err != nil {
			return false, domainRowError(line, "model_name", err)
		}
	case shared.IsNotFound(err):
		kiosk, err = asset.NewKiosk(tenantID, serial, row.Get("model_name"))
		if err != nil {
			return false, domainRowError(line, "serial_number", err)
		}
		created = true
	default:
		return false, saveError(line, err)
	}

	if v := row.Get("list_price"); v != "" || row.Get("monthly_fee") != "" {
		listPrice := parseDecimalOr(v, kiosk.ListPrice)
		monthlyFee := parseDecimalOr(row.Get("monthly_fee"), kiosk.MonthlyFee)
		if err := kiosk.SetPricing(listPrice, monthlyFee); err != nil {
			return false, domainRowError(line, "list_price", err)
		}
	}

	if code := strings.ToUpper(row.Get("partner_code")); code != "" {
		partnerID, ok := partnerIDs[code]
		if !ok {
			p, err := s.partnerRepo.FindByCode(ctx, tenantID, code)
			if err != nil && !shared.IsNotFound(err) {
				return false, saveError(line, err)
			}
			if p != nil && err == nil {
				id := p.ID
				partnerID = &id
			}
			partnerIDs[code] = partnerID
		}
		if partnerID == nil {
			re := csvimport.NewRowError(line, "partner_code", csvimport.ErrCodeImportInvalidValue, "unknown partner code")
			re.Value = code
			return false, &re
		}
		kiosk.Assign(kiosk.BranchID, partnerID)
	}

	regionID, areaID, rowErr := s.resolveCodes(ctx, tenantID, row, codes)
	if rowErr != nil {
		return false, rowErr
	}
	address := row.Get("install_address")
	override := regionID != nil || areaID != nil
	if address == "" && override {
		address = kiosk.InstallAddress
	}
	if address != "" || override {
		p, err := s.locator.Locate(ctx, tenantID, geoapp.LocateInput{Address: address, RegionID: regionID, AreaID: areaID})
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				return false, domainRowError(line, "area_code", err)
			}
			return false, saveError(line, err)
		}
		placement := asset.Placement{
			Address:    p.Address,
			Prefecture: p.Prefecture,
			City:       p.City,
			RegionID:   p.RegionID,
			AreaID:     p.AreaID,
		}
		if v := row.Get("installed_at"); v != "" {
			at, _ := csvimport.ParseDate(v)
			kiosk.Install(placement, time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, s.loc))
		} else {
			kiosk.Place(placement)
		}
	}

	if status := row.Get("status"); status != "" {
		if err := kiosk.SetStatus(asset.Status(status)); err != nil {
			return false, domainRowError(line, "status", err)
		}
	}
	if notes := row.Get("notes"); notes != "" {
		kiosk.SetNotes(notes)
	}

	if err := s.kioskRepo.Save(ctx, kiosk); err != nil {
		s.logger.Warn("Kiosk import row failed", zap.Int("row", line), zap.String("serial_number", serial), zap.Error(err))
		return false, saveError(line, err)
	}
	s.events.Dispatch(ctx, kiosk)
	return created, nil
}

// geoCodes maps region and area codes to IDs for one import run. The
// catalog is read on the first row that carries a code.
type geoCodes struct {
	loaded  bool
	regions map[string]uuid.UUID
	areas   []geo.Area
}

func (c *geoCodes) load(ctx context.Context, locator KioskLocator, tenantID uuid.UUID) error {
	if c.loaded {
		return nil
	}
	catalog, err := locator.Catalog(ctx, tenantID)
	if err != nil {
		return err
	}
	c.regions = map[string]uuid.UUID{}
	if catalog != nil {
		for _, r := range catalog.Regions() {
			c.regions[r.Code] = r.ID
		}
		c.areas = catalog.Areas()
	}
	c.loaded = true
	return nil
}

// resolveCodes turns the row's region_code and area_code into IDs. An area
// code is looked up within the row's region when one is given; otherwise it
// must be unique across the catalog.
func (s *KioskImportService) resolveCodes(ctx context.Context, tenantID uuid.UUID, row *csvimport.Row, codes *geoCodes) (*uuid.UUID, *uuid.UUID, *csvimport.RowError) {
	line := row.LineNumber
	regionCode := strings.ToUpper(row.Get("region_code"))
	areaCode := strings.ToUpper(row.Get("area_code"))
	if regionCode == "" && areaCode == "" {
		return nil, nil, nil
	}
	if err := codes.load(ctx, s.locator, tenantID); err != nil {
		return nil, nil, saveError(line, err)
	}

	var regionID *uuid.UUID
	if regionCode != "" {
		id, ok := codes.regions[regionCode]
		if !ok {
			re := csvimport.NewRowError(line, "region_code", csvimport.ErrCodeImportInvalidValue, "unknown region code")
			re.Value = regionCode
			return nil, nil, &re
		}
		regionID = &id
	}
	if areaCode == "" {
		return regionID, nil, nil
	}

	var matches []geo.Area
	for _, a := range codes.areas {
		if a.Code == areaCode && (regionID == nil || a.RegionID == *regionID) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		re := csvimport.NewRowError(line, "area_code", csvimport.ErrCodeImportInvalidValue, "unknown area code")
		re.Value = areaCode
		return nil, nil, &re
	case 1:
	default:
		re := csvimport.NewRowError(line, "area_code", csvimport.ErrCodeImportInvalidValue, "area code matches several regions; set region_code")
		re.Value = areaCode
		return nil, nil, &re
	}
	areaID := matches[0].ID
	if regionID == nil {
		rid := matches[0].RegionID
		regionID = &rid
	}
	return regionID, &areaID, nil
}

func parseDecimalOr(v string, fallback decimal.Decimal) decimal.Decimal {
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fallback
	}
	return d
}

func domainRowError(line int, column string, err error) *csvimport.RowError {
	code := csvimport.ErrCodeImportInvalidValue
	var de *shared.DomainError
	if errors.As(err, &de) {
		code = de.Code
	}
	re := csvimport.NewRowError(line, column, code, err.Error())
	return &re
}

func saveError(line int, err error) *csvimport.RowError {
	re := csvimport.NewRowError(line, "", csvimport.ErrCodeImportSave, err.Error())
	return &re
}

// fileError maps parser failures on the whole file to a client error
func fileError(err error) error {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrMissingHeader),
		errors.Is(err, csvimport.ErrInvalidEncoding):
		return shared.NewDomainError("INVALID_FILE", err.Error())
	}
	return fmt.Errorf("failed to read import file: %w", err)
}
