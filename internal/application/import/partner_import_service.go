package importapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/application/event"
	geoapp "github.com/kioskcrm/backend/internal/application/geo"
	"github.com/kioskcrm/backend/internal/domain/partner"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/kioskcrm/backend/internal/domain/shared/valueobject"
	csvimport "github.com/kioskcrm/backend/internal/infrastructure/import"
	"github.com/kioskcrm/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PartnerImportRecord is one element of the partner import array
type PartnerImportRecord struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// PartnerImportService upserts partners from a JSON document by code
type PartnerImportService struct {
	partnerRepo partner.PartnerRepository
	locator     geoapp.Locator
	events      *event.Dispatcher
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// NewPartnerImportService creates a new PartnerImportService
func NewPartnerImportService(
	partnerRepo partner.PartnerRepository,
	locator geoapp.Locator,
	events *event.Dispatcher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *PartnerImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerImportService{
		partnerRepo: partnerRepo,
		locator:     locator,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// Import validates document against the partner schema. A document with
// schema violations is rejected as a whole and nothing is written; the
// violations are returned as row errors. Otherwise each record is upserted
// and per-record failures are reported.
func (s *PartnerImportService) Import(ctx context.Context, tenantID uuid.UUID, document []byte) (*ImportResult, error) {
	violations, err := csvimport.ValidateJSON(csvimport.SchemaPartners, document)
	if err != nil {
		if errors.Is(err, csvimport.ErrInvalidJSON) {
			return nil, shared.NewDomainError("INVALID_FILE", err.Error())
		}
		return nil, err
	}

	var records []PartnerImportRecord
	if len(violations) == 0 {
		if err := json.Unmarshal(document, &records); err != nil {
			return nil, shared.NewDomainError("INVALID_FILE", "Document must be an array of partner records")
		}
	}

	errs := csvimport.NewErrorCollection(maxImportErrors)
	if len(violations) > 0 {
		var raw []json.RawMessage
		_ = json.Unmarshal(document, &raw)
		failedRows := map[int]struct{}{}
		for _, v := range violations {
			errs.Add(v)
			if v.Row > 0 {
				failedRows[v.Row] = struct{}{}
			}
		}
		result := &ImportResult{Total: len(raw), Failed: len(failedRows)}
		result.collect(errs)
		return result, nil
	}

	result := &ImportResult{Total: len(records)}
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		row := i + 1
		code := strings.ToUpper(strings.TrimSpace(rec.Code))
		if first, dup := seen[code]; dup {
			errs.Add(csvimport.RowError{Row: row, Column: "code", Code: csvimport.ErrCodeImportDuplicateInFile,
				Message: fmt.Sprintf("duplicate code (first seen in row %d)", first), Value: code})
			result.Failed++
			continue
		}
		seen[code] = row

		created, rowErr := s.upsert(ctx, tenantID, row, code, rec)
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

	s.metrics.ImportRows(ctx, ResourcePartners, result.Created+result.Updated, true)
	s.metrics.ImportRows(ctx, ResourcePartners, result.Failed, false)
	s.logger.Info("Partner import finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *PartnerImportService) upsert(ctx context.Context, tenantID uuid.UUID, row int, code string, rec PartnerImportRecord) (bool, *csvimport.RowError) {
	created := false
	p, err := s.partnerRepo.FindByCode(ctx, tenantID, code)
	switch {
	case err == nil:
		if err := p.Update(rec.Name, partner.Type(rec.Type)); err != nil {
			return false, domainRowError(row, "name", err)
		}
	case shared.IsNotFound(err):
		p, err = partner.NewPartner(tenantID, code, rec.Name, partner.Type(rec.Type))
		if err != nil {
			return false, domainRowError(row, "code", err)
		}
		created = true
	default:
		return false, saveError(row, err)
	}

	contact, err := valueobject.NewContact(rec.ContactName, rec.Email, rec.Phone)
	if err != nil {
		return false, domainRowError(row, "contact", err)
	}
	p.SetContact(contact)

	if address := strings.TrimSpace(rec.Address); address != "" {
		loc, err := s.locator.Locate(ctx, tenantID, geoapp.LocateInput{Address: address})
		if err != nil {
			return false, saveError(row, err)
		}
		p.Relocate(loc.Address, loc.Prefecture, loc.RegionID, loc.AreaID)
	}
	if rec.Status != "" {
		if err := p.SetStatus(partner.Status(rec.Status)); err != nil {
			return false, domainRowError(row, "status", err)
		}
	}
	if rec.Notes != "" {
		p.SetNotes(rec.Notes)
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		s.logger.Warn("Partner import row failed", zap.Int("row", row), zap.String("code", code), zap.Error(err))
		return false, saveError(row, err)
	}
	s.events.Dispatch(ctx, p)
	return created, nil
}
